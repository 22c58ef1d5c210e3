package config

import (
	"github.com/joho/godotenv"
)

type ServerConfig interface {
	Port() string
	Env() string
}

type PGConfig interface {
	DSN() string
}

type WhatsAppConfig interface {
	PhoneNumberID() string
	AccessToken() string
	VerifyToken() string
	APIVersion() string
}

type AIConfig interface {
	Provider() string
	APIKey() string
	Model() string
	BaseURL() string
}

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}
