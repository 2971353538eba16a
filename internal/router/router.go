package router

import (
	"net/http"
	"time"

	mem "zoo-admin/internal/adapters/storage/memory"
	_ "zoo-admin/internal/docs"
	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/backup"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/middleware"
	"zoo-admin/internal/platform/logger"
	"zoo-admin/internal/platform/metrics"
	"zoo-admin/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
)

// Store es lo que necesita el router de cualquier adapter de storage
// (memory, postgres, sqlite).
type Store interface {
	Animals() animals.Repository
	Enclosures() enclosures.Repository
	Categories() categories.Repository
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, in-memory.
	Store Store

	Logger  logger.Logger    // nil => Nop
	Metrics *metrics.Metrics // nil => sin /metrics
	Tracer  trace.Tracer     // nil => sin spans

	// Zona horaria del zoo para la hora "actual" de la vista de estado.
	Location *time.Location
	// Reloj; solo para tests.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(opts.Tracer))
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log, opts.Metrics))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics.Enabled() {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}

	// Services por módulo
	enclosuresSvc := enclosures.NewService(store.Enclosures())
	categoriesSvc := categories.NewService(store.Categories())

	animalOpts := []animals.Option{
		animals.WithLocation(opts.Location),
		animals.WithClock(opts.Now),
	}
	if opts.Metrics.Enabled() {
		animalOpts = append(animalOpts, animals.WithStatusRecorder(opts.Metrics))
	}
	animalsSvc := animals.NewService(store.Animals(), enclosuresSvc, categoriesSvc, animalOpts...)

	// Rutas por módulo
	enclosures.RegisterRoutes(r, enclosuresSvc, log.With(map[string]any{"module": "enclosures"}))
	categories.RegisterRoutes(r, categoriesSvc, log.With(map[string]any{"module": "categories"}))
	animals.RegisterRoutes(r, animalsSvc, log.With(map[string]any{"module": "animals"}))
	backup.RegisterRoutes(r, backup.NewService(animalsSvc, enclosuresSvc, categoriesSvc, opts.Now), log.With(map[string]any{"module": "backup"}))

	return r
}
