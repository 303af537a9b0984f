package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/internal/storefront"
	"Storefront/pkg/kit"
)

func main() {
	service := "storefront"
	cfg := config.Load()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("create data dir", zap.String("dir", cfg.DataDir), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	products, err := catalog.Open(cfg.ProductsPath())
	if err != nil {
		log.Fatal("open catalog", zap.String("path", cfg.ProductsPath()), zap.Error(err))
	}

	items, err := cart.Open(cfg.CartPath(), products, cart.WithMetrics(cart.NewMetrics(reg)))
	if err != nil {
		log.Fatal("open cart", zap.String("path", cfg.CartPath()), zap.Error(err))
	}

	h := storefront.NewHandler(
		storefront.Deps{
			Catalog:        products,
			Cart:           items,
			APIPrefix:      cfg.APIPrefix,
			CartWriteLimit: cfg.CartWriteLimit,
		},
		storefront.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
			CORSOrigins:    cfg.CORSOrigins,
		},
	)

	log.Info("data initialized",
		zap.String("products", cfg.ProductsPath()),
		zap.String("cart", cfg.CartPath()),
		zap.String("api_prefix", cfg.APIPrefix),
	)

	if err := kit.RunHTTPServer(context.Background(), ":"+cfg.Port, h, log, cfg.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
