package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "BookOceanDB", cfg.Mongo.Database)
	assert.Equal(t, "books", cfg.Mongo.BooksCollection)
	assert.Equal(t, "borrowed", cfg.Mongo.LoansCollection)
	assert.Equal(t, 6*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, "token", cfg.JWT.CookieName)
	assert.True(t, cfg.App.AuthRequireForMutations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("PORT", "8081")
	t.Setenv("AUTH_REQUIRE_FOR_MUTATIONS", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("JWT_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "8081", cfg.App.Port)
	assert.False(t, cfg.App.AuthRequireForMutations)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.SessionTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid memory store", mutate: func(c *Config) { c.Store.Driver = StoreMemory }},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "cassandra" }, wantErr: true},
		{name: "zero session ttl", mutate: func(c *Config) { c.JWT.SessionTTL = 0 }, wantErr: true},
		{
			name: "default secret in production",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.JWT.Secret = defaultJWTSecret
			},
			wantErr: true,
		},
		{
			name: "secure cookie with any origin",
			mutate: func(c *Config) {
				c.JWT.CookieSecure = true
				c.App.CORSOrigins = []string{"*"}
			},
			wantErr: true,
		},
		{
			name:    "secure cookie without origins",
			mutate:  func(c *Config) { c.JWT.CookieSecure = true },
			wantErr: true,
		},
		{
			name: "secure cookie with named origins",
			mutate: func(c *Config) {
				c.JWT.CookieSecure = true
				c.App.CORSOrigins = []string{"https://app.bookocean.test"}
			},
		},
		{
			name: "production with secret",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.JWT.Secret = "s3cr3t"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				App:   AppConfig{Environment: "development"},
				Store: StoreConfig{Driver: StoreMongo},
				JWT:   JWTConfig{Secret: "x", SessionTTL: time.Hour, CookieName: "token"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowsAnyOrigin(t *testing.T) {
	assert.True(t, AllowsAnyOrigin(nil))
	assert.True(t, AllowsAnyOrigin([]string{"http://a.test", "*"}))
	assert.False(t, AllowsAnyOrigin([]string{"http://a.test"}))
}
