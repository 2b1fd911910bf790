package router

import (
	"context"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/linkshort/internal/application"
	"github.com/oksasatya/linkshort/internal/container"
	"github.com/oksasatya/linkshort/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/linkshort/internal/infrastructure/postgres"
	"github.com/oksasatya/linkshort/internal/infrastructure/search"
	"github.com/oksasatya/linkshort/internal/infrastructure/storage"
	handlers "github.com/oksasatya/linkshort/internal/interface/http"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
	"github.com/oksasatya/linkshort/internal/router/modules"
	"github.com/oksasatya/linkshort/pkg/helpers"
	"github.com/oksasatya/linkshort/pkg/mailer"
)

type AuthDeps struct {
	Service *application.AuthService
	Handler *handlers.AuthHandler
}

type ShortenerDeps struct {
	Service *application.ShortenerService
	Handler *handlers.URLHandler
}

func buildAuthDeps() AuthDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	opts := []application.AuthOption{application.WithAuthMetrics(container.GetMetrics())}
	if rdb := container.GetRedis(); rdb != nil {
		opts = append(opts, application.WithRevoker(cache.NewTokenRevocations(rdb)))
	}
	if pub := container.GetRabbitPub(); pub != nil {
		opts = append(opts, application.WithWelcomeMailer(mailer.NewOutbox(pub, cfg)))
	}

	service := application.NewAuthService(
		pginfra.NewUserRepository(container.GetPGPool()),
		container.GetJWT(),
		logger,
		opts...,
	)
	return AuthDeps{Service: service, Handler: handlers.NewAuthHandler(service, logger)}
}

func buildShortenerDeps() ShortenerDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	opts := []application.ShortenerOption{
		application.WithShortenerMetrics(container.GetMetrics()),
		application.WithMaxAttempts(cfg.AliasMaxAttempts),
	}
	if rdb := container.GetRedis(); rdb != nil {
		opts = append(opts, application.WithLinkCache(cache.NewLinkCache(rdb, cfg.LinkCacheTTL)))
	}
	if es := container.GetES(); es != nil {
		opts = append(opts, application.WithLinkIndexer(search.NewLinkIndex(es, cfg.ESLinksIndex)))
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		opts = append(opts, application.WithLinkExporter(storage.NewGCSLinkExporter(gcs, cfg.GCSBucket, cfg.BaseURL)))
	}

	service := application.NewShortenerService(
		pginfra.NewShortURLRepository(container.GetPGPool()),
		nil,
		cfg.BaseURL,
		logger,
		opts...,
	)
	return ShortenerDeps{Service: service, Handler: handlers.NewURLHandler(service, logger)}
}

func buildHealthChecks() map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup, before RegisterAll.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	authDeps := buildAuthDeps()
	shortDeps := buildShortenerDeps()

	// identity is resolved for every route; guards are per module
	r.Use(middleware.AttachIdentity(authDeps.Service, logger))

	r.Add(modules.NewAuthModule(authDeps.Handler))
	r.Add(modules.NewURLModule(shortDeps.Handler))

	ops := modules.NewOpsModule(handlers.NewHealthHandler(buildHealthChecks(), logger), nil, cfg.MetricsPrivateOnly)
	if reg := container.GetPromRegistry(); cfg.MetricsEnabled && reg != nil {
		ops.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}
	r.AddRoot(ops)
	r.AddRoot(modules.NewRedirectModule(shortDeps.Handler))
}
