package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	"github.com/oksasatya/linkshort/internal/domain/repository"
)

type ShortURLRepository struct {
	pool *pgxpool.Pool
}

func NewShortURLRepository(pool *pgxpool.Pool) *ShortURLRepository {
	return &ShortURLRepository{pool: pool}
}

// Create performs a single INSERT; a clash on short_urls_alias_key surfaces as ErrAliasTaken
// so the caller can draw a new alias.
func (r *ShortURLRepository) Create(ctx context.Context, s *entity.ShortURL) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO short_urls (alias, target_url, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, s.Alias, s.TargetURL, s.OwnerID)

	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		if isUniqueViolation(err, "short_urls_alias_key") {
			return repository.ErrAliasTaken
		}
		return fmt.Errorf("insert short url: %w", err)
	}
	return nil
}

func (r *ShortURLRepository) GetByAlias(ctx context.Context, alias string) (*entity.ShortURL, error) {
	s := &entity.ShortURL{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, alias, target_url, owner_id, created_at
		FROM short_urls
		WHERE alias = $1
	`, alias)
	if err := row.Scan(&s.ID, &s.Alias, &s.TargetURL, &s.OwnerID, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select short url: %w", err)
	}
	return s, nil
}

func (r *ShortURLRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.ShortURL, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, alias, target_url, owner_id, created_at
		FROM short_urls
		WHERE owner_id = $1
		ORDER BY created_at DESC, alias
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list short urls: %w", err)
	}
	defer rows.Close()

	out := make([]entity.ShortURL, 0, limit)
	for rows.Next() {
		var s entity.ShortURL
		if err := rows.Scan(&s.ID, &s.Alias, &s.TargetURL, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan short url: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate short urls: %w", err)
	}
	return out, nil
}

func (r *ShortURLRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM short_urls WHERE owner_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count short urls: %w", err)
	}
	return n, nil
}

var _ repository.ShortURLRepository = (*ShortURLRepository)(nil)
