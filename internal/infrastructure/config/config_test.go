package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "busstore-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "Bus Store", cfg.Store.Name)
	assert.Equal(t, "BRL", cfg.Store.Currency)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "busstore", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "https://api.mercadopago.com", cfg.Payment.BaseURL)
	assert.Equal(t, "https://viacep.com.br", cfg.Postal.BaseURL)
	assert.Equal(t, 5, cfg.HTTP.AuthRateLimitRequests)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		require.Error(t, cfg.validate())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		require.Error(t, cfg.validate())
	})

	t.Run("production requires admin email and payment token", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.SSLMode = "require"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin_email")

		cfg.Store.AdminEmail = "admin@busstore.com"
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access_token")

		cfg.Payment.AccessToken = "APP_USR-test"
		require.NoError(t, cfg.validate())
	})
}

func TestStoreConfigIsAdmin(t *testing.T) {
	store := StoreConfig{AdminEmail: "admin@busstore.com"}

	assert.True(t, store.IsAdmin("admin@busstore.com"))
	assert.True(t, store.IsAdmin("Admin@BusStore.com"))
	assert.False(t, store.IsAdmin("ana@example.com"))
	assert.False(t, StoreConfig{}.IsAdmin("admin@busstore.com"))
	assert.False(t, StoreConfig{}.IsAdmin(""))
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "db", Port: 5432, User: "postgres", Password: "pw", DBName: "busstore", SSLMode: "disable",
	}.DSN()
	assert.Equal(t, "host=db port=5432 user=postgres password=pw dbname=busstore sslmode=disable", dsn)
}
