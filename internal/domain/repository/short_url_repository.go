package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/linkshort/internal/domain/entity"
)

// ErrAliasTaken is returned by Create when the alias unique constraint rejects the insert.
var ErrAliasTaken = errors.New("alias already exists")

// ShortURLRepository stores alias records. Create is the only write and must be atomic:
// the unique index on alias decides collisions, never a prior lookup.
type ShortURLRepository interface {
	Create(ctx context.Context, s *entity.ShortURL) error
	GetByAlias(ctx context.Context, alias string) (*entity.ShortURL, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.ShortURL, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
