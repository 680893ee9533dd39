package chatbot

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{Bot: bot}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/chatbot", h.respond)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) respond(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	resp, err := h.Bot.Respond(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
