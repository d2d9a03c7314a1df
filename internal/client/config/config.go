// Package config загружает конфигурацию клиента из окружения.
package config

import (
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// ServerURL адрес Remote Collection Service
	ServerURL string `env:"COINKEEPER_SERVER_URL" env-default:"http://localhost:8080"`

	// Backend локальное хранилище: sqlite или bolt
	Backend string `env:"COINKEEPER_BACKEND" env-default:"sqlite"`

	// DBPath путь к файлу локальной базы
	DBPath string `env:"COINKEEPER_DB_PATH" env-default:"coinkeeper_client.db"`

	// AuthDBPath путь к файлу сессии (всегда BoltDB)
	AuthDBPath string `env:"COINKEEPER_AUTH_DB_PATH" env-default:"coinkeeper_auth.db"`
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading from environment variables")
	}

	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("failed to read config from environment", "error", err)
		os.Exit(1)
	}

	return &cfg
}
