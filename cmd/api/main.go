// @title Maintenance Inspections API
// @version 1.0
// @description Workflow and authorization engine for maintenance events, sub-events and inspections.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maintenance-inspections/internal/adapters/auth/iam"
	"maintenance-inspections/internal/adapters/auth/jwtverifier"
	rolesadapter "maintenance-inspections/internal/adapters/roles"
	pg "maintenance-inspections/internal/adapters/storage/postgres"
	"maintenance-inspections/internal/platform/config"
	"maintenance-inspections/internal/platform/eventbus"
	"maintenance-inspections/internal/platform/httpclient"
	"maintenance-inspections/internal/platform/logger"
	"maintenance-inspections/internal/ports/auth"
	"maintenance-inspections/internal/ports/roles"
	"maintenance-inspections/internal/router"

	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	dir, closeRoles, err := buildRoles(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRoles()

	bus := eventbus.New(log)
	defer bus.Wait()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			DB:           db,
			Roles:        dir,
			Logger:       log,
			Bus:          bus,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "auth_mode": string(cfg.Auth.Mode), "postgres": db != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openDB: sin DB_DSN se trabaja en memoria.
func openDB(ctx context.Context, cfg config.Config, log logger.Logger) (*sql.DB, error) {
	if cfg.Postgres.DSN == "" {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
		return nil, nil
	}

	db, err := pg.Open(cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func buildVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		return jwtverifier.New(cfg.Auth.JWTSecret)
	case config.AuthModeIAM:
		client, err := httpclient.New(httpclient.Config{BaseURL: cfg.Auth.IAMURL, APIKey: cfg.Auth.IAMAPIKey})
		if err != nil {
			return nil, err
		}
		if !client.IsConfigured() {
			return nil, errors.New("AUTH_MODE=iam requires IAM_BASE_URL")
		}
		return iam.NewVerifier(client), nil
	default:
		// modo dev: X-Debug-User-ID / X-Debug-Roles
		return nil, nil
	}
}

// buildRoles arma el directorio de admins: lista estática + servicio remoto
// (con cache en Redis si hay REDIS_ADDRESS).
func buildRoles(ctx context.Context, cfg config.Config, log logger.Logger) (roles.Directory, func(), error) {
	noop := func() {}
	dirs := []roles.Directory{rolesadapter.NewStaticDirectory(cfg.Roles.AdminUserIDs)}

	if cfg.Roles.BaseURL == "" {
		return rolesadapter.Any(dirs...), noop, nil
	}

	client, err := httpclient.New(httpclient.Config{BaseURL: cfg.Roles.BaseURL, APIKey: cfg.Roles.APIKey})
	if err != nil {
		return nil, noop, err
	}
	var remote roles.Directory = rolesadapter.NewRemoteDirectory(client)

	if cfg.Redis.Address == "" {
		return rolesadapter.Any(append(dirs, remote)...), noop, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Sin cache se sigue funcionando; CachedDirectory cae al upstream.
		log.Warn("redis not reachable, role cache degraded", map[string]any{"address": cfg.Redis.Address, "error": err})
	}

	remote = rolesadapter.NewCachedDirectory(remote, rolesadapter.NewRedisCache(rdb), cfg.Roles.CacheTTL, log)
	return rolesadapter.Any(append(dirs, remote)...), func() { _ = rdb.Close() }, nil
}
