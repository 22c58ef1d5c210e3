package env

import (
	"errors"
	"os"

	"github.com/savezra/whatsapp-bot/internal/config"
)

const (
	waPhoneNumberIDEnvName = "WHATSAPP_PHONE_NUMBER_ID"
	waAccessTokenEnvName   = "WHATSAPP_ACCESS_TOKEN"
	waVerifyTokenEnvName   = "WHATSAPP_VERIFY_TOKEN"
	waAPIVersionEnvName    = "WHATSAPP_API_VERSION"
)

type whatsAppConfig struct {
	phoneNumberID string
	accessToken   string
	verifyToken   string
	apiVersion    string
}

func NewWhatsAppConfig() (config.WhatsAppConfig, error) {
	phoneNumberID := os.Getenv(waPhoneNumberIDEnvName)
	accessToken := os.Getenv(waAccessTokenEnvName)
	verifyToken := os.Getenv(waVerifyTokenEnvName)

	if phoneNumberID == "" || accessToken == "" || verifyToken == "" {
		return nil, errors.New("WHATSAPP_PHONE_NUMBER_ID, WHATSAPP_ACCESS_TOKEN, WHATSAPP_VERIFY_TOKEN are required")
	}

	apiVersion := os.Getenv(waAPIVersionEnvName)
	if apiVersion == "" {
		apiVersion = "v20.0"
	}

	return &whatsAppConfig{
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		verifyToken:   verifyToken,
		apiVersion:    apiVersion,
	}, nil
}

func (cfg *whatsAppConfig) PhoneNumberID() string {
	return cfg.phoneNumberID
}

func (cfg *whatsAppConfig) AccessToken() string {
	return cfg.accessToken
}

func (cfg *whatsAppConfig) VerifyToken() string {
	return cfg.verifyToken
}

func (cfg *whatsAppConfig) APIVersion() string {
	return cfg.apiVersion
}
