package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/config"
	"github.com/oksasatya/linkshort/internal/container"
	pginfra "github.com/oksasatya/linkshort/internal/infrastructure/postgres"
	"github.com/oksasatya/linkshort/internal/infrastructure/search"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
	"github.com/oksasatya/linkshort/internal/router"
	"github.com/oksasatya/linkshort/pkg/helpers"
	"github.com/oksasatya/linkshort/pkg/metrics"
	"github.com/oksasatya/linkshort/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Postgres is the only hard dependency.
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	container.SetMetrics(reg, metrics.New(reg))

	closers := initOptionalBackends(ctx, cfg, logger)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(cfg.CORSOrigins()))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.RequestLogger(logger))
	}

	// Registry: auto-register modules using container
	registry := router.NewRegistry(r)
	router.InitModules(registry)
	registry.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "base_url": cfg.BaseURL}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}

// initOptionalBackends connects Redis, Elasticsearch, GCS and RabbitMQ when configured.
// A backend that fails to connect is logged and left out; the service degrades instead of exiting.
func initOptionalBackends(ctx context.Context, cfg *config.Config, logger *logrus.Logger) []func() {
	var closers []func()

	if cfg.RedisEnabled {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			helpers.LogError(logger, "redis unavailable; logout revocation and link cache disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
		} else {
			container.SetRedis(rdb)
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}

	if cfg.ESEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			err = search.NewLinkIndex(es, cfg.ESLinksIndex).EnsureIndex(ctx)
		}
		if err != nil {
			helpers.LogError(logger, "elasticsearch unavailable; link search disabled", err, nil)
		} else {
			container.SetES(es)
		}
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err == nil {
			if err = helpers.CheckBucket(ctx, gcs, cfg.GCSBucket); err != nil {
				_ = gcs.Close()
			}
		}
		if err != nil {
			helpers.LogError(logger, "gcs unavailable; link export disabled", err, logrus.Fields{"bucket": cfg.GCSBucket})
		} else {
			container.SetGCS(gcs)
			closers = append(closers, func() { _ = gcs.Close() })
		}
	}

	if cfg.RabbitMQEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; welcome emails disabled", err, nil)
		} else {
			container.SetRabbitPub(pub)
			closers = append(closers, pub.Close)
		}
	}

	helpers.LogInfo(logger, "optional backends initialised", logrus.Fields{
		"redis":    container.GetRedis() != nil,
		"search":   container.GetES() != nil,
		"export":   container.GetGCS() != nil,
		"mail_out": container.GetRabbitPub() != nil,
	})
	return closers
}
