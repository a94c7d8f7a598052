package configs

import (
	"errors"
	"time"

	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		SECRET string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
	Prices struct {
		BaseURL     string        `mapstructure:"base-url"`
		CacheTTL    time.Duration `mapstructure:"cache-ttl"`
		CacheSizeMB int           `mapstructure:"cache-size-mb"`
	} `mapstructure:"prices"`
	Admin struct {
		BootstrapEmail string `mapstructure:"bootstrap-email"`
	} `mapstructure:"admin"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("prices.base-url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("prices.cache-ttl", 5*time.Minute)
	viper.SetDefault("prices.cache-size-mb", 1)

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
