package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/config"
	pginfra "github.com/oksasatya/linkshort/internal/infrastructure/postgres"
	"github.com/oksasatya/linkshort/pkg/helpers"
)

// seed creates (or refreshes) a demo account and one sample link so a fresh stack has something to click.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN()})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	email := getenv("SEED_EMAIL", "demo@linkshort.local")
	password := getenv("SEED_PASSWORD", "password123")
	name := getenv("SEED_NAME", "Demo User")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	var id string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (lower(email)) DO UPDATE SET password_hash = EXCLUDED.password_hash, name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	logger.WithFields(logrus.Fields{"user_id": id, "email": email}).Info("seeded user")

	alias, err := helpers.NanoIDGenerator{}.NewAlias()
	if err != nil {
		logger.WithError(err).Fatal("failed to generate alias")
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO short_urls (alias, target_url, owner_id) VALUES ($1, $2, $3)
	`, alias, "https://go.dev/doc/", id); err != nil {
		logger.WithError(err).Fatal("failed to seed short url")
	}
	fmt.Printf("login with %s / %s, sample link %s/%s\n", email, password, cfg.BaseURL, alias)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
