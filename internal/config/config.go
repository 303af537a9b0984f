package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	productsFile = "products.json"
	cartFile     = "cart.json"
)

type Config struct {
	Port      string
	DataDir   string
	APIPrefix string
	LogLevel  string

	CORSOrigins []string

	MetricsEnabled bool
	MetricsToken   string

	// CartWriteLimit is cart mutations per client IP per minute; 0 disables.
	CartWriteLimit  int
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "3001"),
		DataDir:         getEnv("DATA_DIR", "data"),
		APIPrefix:       normalizePrefix(getEnv("API_PREFIX", "/api")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		CartWriteLimit:  getEnvInt("CART_WRITE_LIMIT", 0),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func (c Config) ProductsPath() string { return filepath.Join(c.DataDir, productsFile) }
func (c Config) CartPath() string     { return filepath.Join(c.DataDir, cartFile) }

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
