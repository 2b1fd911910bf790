package application

import (
	"context"
	"time"

	"github.com/oksasatya/linkshort/internal/domain/entity"
)

// TokenRevoker records logged-out token ids. Implemented by cache.TokenRevocations.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// WelcomeMailer is notified after a successful registration. Implemented by mailer.Outbox.
type WelcomeMailer interface {
	Welcome(ctx context.Context, name, email string) error
}

// LinkCache caches alias -> target lookups. Implemented by cache.LinkCache.
type LinkCache interface {
	Get(ctx context.Context, alias string) (string, bool, error)
	Set(ctx context.Context, alias, target string) error
}

// LinkIndexer mirrors links into a search engine. Implemented by search.LinkIndex.
type LinkIndexer interface {
	Index(ctx context.Context, s entity.ShortURL) error
	Search(ctx context.Context, ownerID, q string, size int) ([]entity.ShortURL, error)
}

// LinkExporter writes a snapshot of an owner's links somewhere durable and returns its URL.
// Implemented by storage.LinkExporter.
type LinkExporter interface {
	Export(ctx context.Context, ownerID string, links []entity.ShortURL) (string, error)
}
