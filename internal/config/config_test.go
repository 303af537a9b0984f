package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_DIR", "API_PREFIX", "LOG_LEVEL", "CORS_ORIGINS",
		"METRICS_ENABLED", "METRICS_TOKEN", "CART_WRITE_LIMIT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, "3001", c.Port)
	assert.Equal(t, "/api", c.APIPrefix)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.True(t, c.MetricsEnabled)
	assert.Equal(t, 0, c.CartWriteLimit)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, filepath.Join("data", "products.json"), c.ProductsPath())
	assert.Equal(t, filepath.Join("data", "cart.json"), c.CartPath())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/var/lib/store")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://shop.example ,")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CART_WRITE_LIMIT", "30")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "/v1", c.APIPrefix)
	assert.Equal(t, []string{"http://localhost:5173", "https://shop.example"}, c.CORSOrigins)
	assert.False(t, c.MetricsEnabled)
	assert.Equal(t, 30, c.CartWriteLimit)
	assert.Equal(t, 3*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "/var/lib/store/cart.json", c.CartPath())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CART_WRITE_LIMIT", "-4")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("METRICS_ENABLED", "maybe")

	c := Load()
	assert.Equal(t, 0, c.CartWriteLimit)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.True(t, c.MetricsEnabled)
}
