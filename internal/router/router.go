package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "maintenance-inspections/docs"
	mem "maintenance-inspections/internal/adapters/storage/memory"
	pg "maintenance-inspections/internal/adapters/storage/postgres"
	"maintenance-inspections/internal/domain/maintenance"
	"maintenance-inspections/internal/middleware"
	"maintenance-inspections/internal/platform/eventbus"
	"maintenance-inspections/internal/platform/logger"
	"maintenance-inspections/internal/ports/auth"
	"maintenance-inspections/internal/ports/roles"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres (ya migrada). Si no, in-memory.
	DB *sql.DB

	// Opcional: directorio de admins además del rol en el token.
	Roles roles.Directory

	Logger logger.Logger

	// Opcional: si no viene se crea uno. Quien lo pasa se encarga de Wait().
	Bus *eventbus.Bus

	// Reloj inyectable (tests).
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var repo maintenance.Repository
	if opts.DB != nil {
		repo = pg.NewMaintenanceRepo(opts.DB)
	} else {
		repo = mem.NewMaintenanceRepo()
	}

	bus := opts.Bus
	if bus == nil {
		bus = eventbus.New(log)
	}
	bus.Subscribe(maintenance.StatusChangedEvent, maintenance.AuditListener(log))

	svcOpts := []maintenance.Option{
		maintenance.WithLogger(log),
		maintenance.WithPublisher(bus),
	}
	if opts.Now != nil {
		svcOpts = append(svcOpts, maintenance.WithClock(opts.Now))
	}
	svc := maintenance.NewService(repo, svcOpts...)

	maintenance.RegisterRoutes(r, svc, opts.Roles, log)

	return r
}
