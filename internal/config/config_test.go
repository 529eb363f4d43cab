package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret:      "secure-secret-at-least-32-chars-long",
			JWTExpiryHours: 24,
			Port:           "8090",
			DBPassword:     "secure-password",
			DBSSLMode:      "require",
			Env:            "development",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero JWT expiry", func(c *Config) { c.JWTExpiryHours = 0 }, true},
		{"negative JWT expiry", func(c *Config) { c.JWTExpiryHours = -1 }, true},
		{"production with default JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"production with short JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"production with default DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"prod alias checks too", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = ""
		}, true},
		{"valid production config", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
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

func TestConfig_UploadDir(t *testing.T) {
	c := &Config{PublicDir: "public"}
	assert.Equal(t, "public/uploads/images", c.UploadDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8090", c.Port)
	assert.Equal(t, 24, c.JWTExpiryHours)
	assert.Equal(t, "public", c.PublicDir)
	assert.False(t, c.TracingEnabled)
}
