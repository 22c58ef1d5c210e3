package env

import (
	"os"

	"github.com/savezra/whatsapp-bot/internal/config"
)

const (
	portEnvName   = "PORT"
	appEnvEnvName = "APP_ENV"
)

type serverConfig struct {
	port string
	env  string
}

func NewServerConfig() (config.ServerConfig, error) {
	port := os.Getenv(portEnvName)
	if port == "" {
		port = "3000"
	}

	appEnv := os.Getenv(appEnvEnvName)
	if appEnv == "" {
		appEnv = "development"
	}

	return &serverConfig{
		port: port,
		env:  appEnv,
	}, nil
}

func (cfg *serverConfig) Port() string {
	return cfg.port
}

func (cfg *serverConfig) Env() string {
	return cfg.env
}
