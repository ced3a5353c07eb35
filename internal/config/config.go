package config

type Config interface {
	EnvConfig
	ClientConfig
	HTTPConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Client
	HTTP
}

func New() Config {
	return mainConfig{}
}
