package config

import (
	"os"
)

const (
	appNameVar    = "APP_NAME"
	folderEnvVar  = "IDP_DATA_FOLDER"
	passphraseVar = "IDP_STORAGE_PASSPHRASE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "IdP Client")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetStoragePassphrase returns the passphrase used to encrypt persisted tokens.
func (EnvVars) GetStoragePassphrase() string {
	return GetEnv(passphraseVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
