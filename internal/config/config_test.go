package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.IsProduction())
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com, https://www.example.com ,")
	cfg := Load()
	assert.Equal(t, []string{"https://shop.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
}

func TestHasTokenSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "r")
	cfg := Load()
	assert.False(t, cfg.HasTokenSecrets(), "activation secret missing")

	t.Setenv("ACTIVATION_LINK_SECRET", "l")
	cfg = Load()
	assert.True(t, cfg.HasTokenSecrets())
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", " Production ")
	assert.True(t, Load().IsProduction())
}
