// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Host                 string `mapstructure:"HOST"`
	Port                 string `mapstructure:"PORT"`
	DataDir              string `mapstructure:"DATA_DIR"`
	ImageDir             string `mapstructure:"IMAGE_DIR"`
	DBFile               string `mapstructure:"DB_FILE"`
	BodyLimitMB          int    `mapstructure:"BODY_LIMIT_MB"`
	AvatarMaxSizeMB      int    `mapstructure:"AVATAR_MAX_SIZE_MB"`
	AvatarTimeoutSeconds int    `mapstructure:"AVATAR_TIMEOUT_SECONDS"`
	Env                  string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("IMAGE_DIR", "images")
	viper.SetDefault("DB_FILE", "blog.db")
	viper.SetDefault("BODY_LIMIT_MB", 10)
	viper.SetDefault("AVATAR_MAX_SIZE_MB", 5)
	viper.SetDefault("AVATAR_TIMEOUT_SECONDS", 10)
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DataDir == "" {
		return errors.New("DATA_DIR is required")
	}
	if c.ImageDir == "" {
		return errors.New("IMAGE_DIR is required")
	}
	if c.DBFile == "" {
		return errors.New("DB_FILE is required")
	}
	if c.BodyLimitMB <= 0 {
		return errors.New("BODY_LIMIT_MB must be positive")
	}
	if c.AvatarMaxSizeMB <= 0 {
		return errors.New("AVATAR_MAX_SIZE_MB must be positive")
	}
	if c.AvatarTimeoutSeconds <= 0 {
		return errors.New("AVATAR_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// ImageDirPath returns the absolute-ish path of the image blob directory.
func (c *Config) ImageDirPath() string {
	return filepath.Join(c.DataDir, c.ImageDir)
}

// DBPath returns the path of the sqlite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// AvatarMaxBytes returns the avatar download cap in bytes.
func (c *Config) AvatarMaxBytes() int64 {
	return int64(c.AvatarMaxSizeMB) * 1024 * 1024
}

// AvatarTimeout returns the avatar download wall-clock limit.
func (c *Config) AvatarTimeout() time.Duration {
	return time.Duration(c.AvatarTimeoutSeconds) * time.Second
}
