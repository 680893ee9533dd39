package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"receptari/internal/chat"
	"receptari/internal/chatbot"
	"receptari/internal/middleware"
	"receptari/internal/recipe"
	"receptari/pkg/config"
	"receptari/pkg/database"
	"receptari/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	repo := recipe.NewRepo(db)

	// Boot-time ingest. A failed load is an operator warning, not a crash:
	// the prior snapshot stays, or the built-in sample data goes in so every
	// route keeps answering.
	loaderCfg := loaderConfig(cfg.CSV)
	if n, err := repo.Reload(context.Background(), loaderCfg); err != nil {
		log.Warn("csv load failed", zap.String("path", cfg.CSV.Path), zap.Error(err))
		if total, countErr := repo.Count(context.Background()); countErr != nil || total == 0 {
			if fbErr := repo.InstallFallback(context.Background()); fbErr != nil {
				log.Fatal("install fallback dataset failed", zap.Error(fbErr))
			}
			log.Warn("serving built-in sample dataset")
		}
	} else {
		log.Info("recipes loaded", zap.Int("count", n), zap.String("path", cfg.CSV.Path))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	corsCfg := cors.DefaultConfig()
	if cfg.Server.AllowAllOrigins {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-ID")
	router.Use(cors.New(corsCfg))

	bot := chatbot.New(repo)
	hub := chat.NewHub(cfg.Chat.HistorySize)

	router.GET("/", statusHandler(repo))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})
	router.GET("/ready", readyHandler(db, hub))

	recipeHandler := recipe.NewHandler(repo)
	recipeHandler.RegisterRoutes(router.Group("/recipes"))
	router.GET("/categories", recipe.CategoriesHandler())

	chatbot.NewHandler(bot).RegisterRoutes(router)
	router.GET("/ws", chat.WSHandler(hub, bot, log))
	router.GET("/ws/history", chat.HistoryHandler(hub))

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP API server listening", zap.String("addr", cfg.Server.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

func loaderConfig(csv config.CSVConfig) recipe.LoaderConfig {
	cols := recipe.DefaultColumnMapping()
	if m := csv.Columns; len(m) > 0 {
		apply := func(dst *string, key string) {
			if v, ok := m[key]; ok && v != "" {
				*dst = v
			}
		}
		apply(&cols.ID, "id")
		apply(&cols.Name, "name")
		apply(&cols.Category, "category")
		apply(&cols.Ingredients, "ingredients")
		apply(&cols.Steps, "steps")
		apply(&cols.ImageURL, "image_url")
		apply(&cols.Duration, "duration")
		apply(&cols.Servings, "servings")
		apply(&cols.Calories, "calories")
		apply(&cols.Difficulty, "difficulty")
	}
	return recipe.LoaderConfig{
		Path:      csv.Path,
		Delimiter: csv.DelimiterRune(),
		Columns:   cols,
	}
}

func statusHandler(repo *recipe.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := repo.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "status failed"})
			return
		}
		status := "Servidor receptari actiu. OK."
		if fallback, err := repo.UsingFallback(c.Request.Context()); err == nil && fallback {
			status += " WARNING: servint dades de mostra."
		}
		c.JSON(http.StatusOK, gin.H{
			"status":       status,
			"recipe_count": total,
			"instructions": "Useu /recipes, /recipes/category/<clau> o /chatbot",
		})
	}
}

func readyHandler(db *sql.DB, hub *chat.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":       "not_ready",
				"db_error":     err.Error(),
				"chat_clients": stats.Clients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":       "ready",
			"db":           "ok",
			"chat_clients": stats.Clients,
		})
	}
}
