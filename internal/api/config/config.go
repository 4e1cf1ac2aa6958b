package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("mongo.url", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "mapdrop")
	viper.SetDefault("mongo.op_timeout", 3)
	viper.SetDefault("storage.driver", "local")
	viper.SetDefault("storage.upload_dir", "./uploads")
	viper.SetDefault("storage.public_base", "/uploads")
	viper.SetDefault("upload.max_size_bytes", 32<<20)
	viper.SetDefault("retention.local_hour", 3)
	viper.SetDefault("retention.cron_spec", "@hourly")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
