package config

import (
	"server/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Environment          string
	ServerPort           int
	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_DB_PATH", "data/server.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
		log.Info("No config file found, using environment and defaults")
	}

	config := Config{
		Environment:          viper.GetString("ENVIRONMENT"),
		ServerPort:           viper.GetInt("SERVER_PORT"),
		DatabaseDbPath:       viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("DATABASE_CACHE_PORT"),
	}

	return config, nil
}
