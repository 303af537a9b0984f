// Package storefront assembles the catalog and cart APIs into one HTTP
// handler with the shared middleware stack.
package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	CORSOrigins []string
}

type Deps struct {
	Catalog catalog.Store
	Cart    cart.Store

	// APIPrefix is where /products and /cart live, e.g. "/api". Empty mounts
	// them at the root.
	APIPrefix string

	// CartWriteLimit is cart mutations per client IP per minute; 0 disables.
	CartWriteLimit int
}

const (
	readyTimeout    = 1 * time.Second
	cartLimitWindow = time.Minute
)

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: httpDeps.Log}
	cartSrv := &cart.Server{
		Store:      deps.Cart,
		Log:        httpDeps.Log,
		WriteLimit: kit.NewIPRateLimiter(deps.CartWriteLimit, cartLimitWindow).Middleware,
	}

	mountAPI := func(api chi.Router) {
		api.Mount("/products", catalogSrv.Routes())
		api.Mount("/cart", cartSrv.Routes())
	}
	if deps.APIPrefix == "" {
		mountAPI(r)
	} else {
		r.Route(deps.APIPrefix, mountAPI)
	}

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(kit.CORS(origins))
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		if deps.MetricsEnabled {
			deps.Log.Warn("metrics enabled but Registry is nil")
		}
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Catalog.Ping(ctx); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}

		if err := deps.Cart.Ping(ctx); err != nil {
			log.Warn("readyz failed: cart", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "cart not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
