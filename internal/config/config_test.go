package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Host:                 "0.0.0.0",
		Port:                 "3000",
		DataDir:              "./data",
		ImageDir:             "images",
		DBFile:               "blog.db",
		BodyLimitMB:          10,
		AvatarMaxSizeMB:      5,
		AvatarTimeoutSeconds: 10,
		Env:                  "test",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"Missing image dir", func(c *Config) { c.ImageDir = "" }, true},
		{"Missing db file", func(c *Config) { c.DBFile = "" }, true},
		{"Zero body limit", func(c *Config) { c.BodyLimitMB = 0 }, true},
		{"Negative avatar size", func(c *Config) { c.AvatarMaxSizeMB = -1 }, true},
		{"Zero avatar timeout", func(c *Config) { c.AvatarTimeoutSeconds = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	c := validConfig()
	c.DataDir = "/var/lib/plume"

	assert.Equal(t, filepath.Join("/var/lib/plume", "images"), c.ImageDirPath())
	assert.Equal(t, filepath.Join("/var/lib/plume", "blog.db"), c.DBPath())
	assert.Equal(t, int64(5*1024*1024), c.AvatarMaxBytes())
}
