package router

import (
	"database/sql"
	"net/http"

	_ "pet-grooming-manager/docs"

	mem "pet-grooming-manager/internal/adapters/storage/memory"
	pg "pet-grooming-manager/internal/adapters/storage/postgres"
	"pet-grooming-manager/internal/domain/reports"
	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/middleware"
	"pet-grooming-manager/internal/platform/logger"
	"pet-grooming-manager/internal/platform/metrics"
	"pet-grooming-manager/internal/ports/auth"
	"pet-grooming-manager/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Store tiene prioridad; si no viene y hay DB usa Postgres, si no in-memory.
	Store shop.Repository
	DB    *sql.DB

	Logger   logger.Logger
	Notifier notify.Notifier
	Metrics  *metrics.Metrics // nil = sin /metrics
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	store := opts.Store
	if store == nil {
		if opts.DB != nil {
			store = pg.NewStore(opts.DB)
		} else {
			store = mem.NewStore()
		}
	}

	shopSvc := shop.NewService(store,
		shop.WithNotifier(opts.Notifier),
		shop.WithLogger(opts.Logger),
	)
	reportsSvc := reports.NewService(store)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		shop.RegisterRoutes(r, shopSvc)
		reports.RegisterRoutes(r, reportsSvc)
	})

	return r
}
