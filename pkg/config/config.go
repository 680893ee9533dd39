package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the service reads at boot. Values come from
// config.yaml when present, overridden by RECEPTARI_* environment variables
// (a .env file is honored).
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CSV    CSVConfig    `mapstructure:"csv"`
	Chat   ChatConfig   `mapstructure:"chat"`

	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	AllowAllOrigins bool   `mapstructure:"allow_all_origins"`
}

// CSVConfig describes the ingest source: path, delimiter and the external
// column names for each internal field.
type CSVConfig struct {
	Path      string            `mapstructure:"path"`
	Delimiter string            `mapstructure:"delimiter"`
	Columns   map[string]string `mapstructure:"columns"`
}

type ChatConfig struct {
	HistorySize int `mapstructure:"history_size"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_all_origins", true)
	v.SetDefault("csv.path", "data/recetas.csv")
	v.SetDefault("csv.delimiter", "|")
	v.SetDefault("chat.history_size", 50)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("RECEPTARI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DelimiterRune returns the configured CSV delimiter as a rune, defaulting
// to the pipe the source dataset uses.
func (c CSVConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return '|'
}
