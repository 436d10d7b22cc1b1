package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from environment
// variables, with an optional .env file for local development.
type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	StoreBackend string `mapstructure:"STORE_BACKEND"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`

	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`

	DefaultUserID string `mapstructure:"DEFAULT_USER_ID"`
	DefaultTopic  string `mapstructure:"DEFAULT_TOPIC"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Store backends selectable via STORE_BACKEND.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("STORE_BACKEND", StoreMongo)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "portagees")
	viper.SetDefault("DATABASE_PATH", "/data/portagees.db")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	viper.SetDefault("DEFAULT_USER_ID", "default_user")
	viper.SetDefault("DEFAULT_TOPIC", "Portuguese language")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
