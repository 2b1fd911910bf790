package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	repo "github.com/oksasatya/linkshort/internal/domain/repository"
	"github.com/oksasatya/linkshort/pkg/apperror"
	"github.com/oksasatya/linkshort/pkg/helpers"
	"github.com/oksasatya/linkshort/pkg/metrics"
)

const (
	DefaultMaxAliasAttempts = 5
	DefaultPageSize         = 20
	MaxPageSize             = 100
	exportBatchSize         = 500
)

type ShortenerService struct {
	Links       repo.ShortURLRepository
	Aliases     helpers.AliasGenerator
	BaseURL     string
	MaxAttempts int
	Logger      *logrus.Logger

	Cache    LinkCache
	Index    LinkIndexer
	Exporter LinkExporter
	Metrics  *metrics.Metrics
}

type ShortenerOption func(*ShortenerService)

func WithLinkCache(c LinkCache) ShortenerOption { return func(s *ShortenerService) { s.Cache = c } }

func WithLinkIndexer(x LinkIndexer) ShortenerOption {
	return func(s *ShortenerService) { s.Index = x }
}

func WithLinkExporter(e LinkExporter) ShortenerOption {
	return func(s *ShortenerService) { s.Exporter = e }
}

func WithShortenerMetrics(m *metrics.Metrics) ShortenerOption {
	return func(s *ShortenerService) { s.Metrics = m }
}

func WithMaxAttempts(n int) ShortenerOption {
	return func(s *ShortenerService) {
		if n > 0 {
			s.MaxAttempts = n
		}
	}
}

func NewShortenerService(links repo.ShortURLRepository, aliases helpers.AliasGenerator, baseURL string, logger *logrus.Logger, opts ...ShortenerOption) *ShortenerService {
	if aliases == nil {
		aliases = helpers.NanoIDGenerator{}
	}
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	s := &ShortenerService{
		Links:       links,
		Aliases:     aliases,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		MaxAttempts: DefaultMaxAliasAttempts,
		Logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LinkView is the public representation of a short link.
type LinkView struct {
	Alias     string    `json:"alias"`
	ShortURL  string    `json:"short_url"`
	TargetURL string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type LinkPage struct {
	Items  []LinkView `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Shorten registers a new alias for longURL owned by the caller. Each successful call
// performs exactly one insert; identical URLs get distinct aliases.
func (s *ShortenerService) Shorten(ctx context.Context, identity *entity.Identity, longURL string) (*LinkView, error) {
	if identity == nil {
		return nil, apperror.Authentication(msgAuthRequired, nil)
	}
	target, err := validateTargetURL(longURL)
	if err != nil {
		return nil, err
	}

	log := s.Logger.WithField("user_id", identity.UserID)
	var lastErr error
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		alias, err := s.Aliases.NewAlias()
		if err != nil {
			return nil, apperror.Internal("generate alias", err)
		}
		link := &entity.ShortURL{Alias: alias, TargetURL: target, OwnerID: identity.UserID}
		err = s.Links.Create(ctx, link)
		if errors.Is(err, repo.ErrAliasTaken) {
			lastErr = err
			s.Metrics.IncAliasCollisions()
			log.WithFields(logrus.Fields{"alias": alias, "attempt": attempt}).Warn("alias collision, retrying")
			continue
		}
		if err != nil {
			return nil, apperror.Internal("save short url", err)
		}

		s.Metrics.IncLinksCreated()
		s.afterCreate(ctx, link)
		view := s.view(*link)
		return &view, nil
	}

	s.Metrics.IncAliasExhausted()
	log.WithField("attempts", s.MaxAttempts).Error("alias generation exhausted")
	return nil, apperror.Exhausted("could not allocate a unique alias", lastErr)
}

// afterCreate feeds the optional read models. Failures are logged, never returned:
// the row is already committed.
func (s *ShortenerService) afterCreate(ctx context.Context, link *entity.ShortURL) {
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, link.Alias, link.TargetURL); err != nil {
			s.Logger.WithError(err).WithField("alias", link.Alias).Warn("link cache set failed")
		}
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, *link); err != nil {
			s.Logger.WithError(err).WithField("alias", link.Alias).Warn("link index failed")
		}
	}
}

// Resolve returns the target URL registered for alias.
func (s *ShortenerService) Resolve(ctx context.Context, alias string) (string, error) {
	if !helpers.IsAlias(alias) {
		s.Metrics.ObserveRedirect("not_found")
		return "", apperror.NotFound("short url not found")
	}

	if s.Cache != nil {
		target, ok, err := s.Cache.Get(ctx, alias)
		switch {
		case err != nil:
			s.Metrics.ObserveCache("error")
			s.Logger.WithError(err).WithField("alias", alias).Warn("link cache get failed")
		case ok:
			s.Metrics.ObserveCache("hit")
			s.Metrics.ObserveRedirect("found")
			return target, nil
		default:
			s.Metrics.ObserveCache("miss")
		}
	}

	link, err := s.Links.GetByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Metrics.ObserveRedirect("not_found")
			return "", apperror.NotFound("short url not found")
		}
		s.Metrics.ObserveRedirect("error")
		return "", apperror.Internal("lookup short url", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, alias, link.TargetURL); err != nil {
			s.Logger.WithError(err).WithField("alias", alias).Warn("link cache set failed")
		}
	}
	s.Metrics.ObserveRedirect("found")
	return link.TargetURL, nil
}

// ListByOwner pages through the caller's links, newest first.
func (s *ShortenerService) ListByOwner(ctx context.Context, identity *entity.Identity, limit, offset int) (*LinkPage, error) {
	if identity == nil {
		return nil, apperror.Authentication(msgAuthRequired, nil)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	links, err := s.Links.ListByOwner(ctx, identity.UserID, limit, offset)
	if err != nil {
		return nil, apperror.Internal("list short urls", err)
	}
	total, err := s.Links.CountByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, apperror.Internal("count short urls", err)
	}
	return &LinkPage{Items: s.views(links), Total: total, Limit: limit, Offset: offset}, nil
}

// Search finds the caller's links whose target or alias matches q.
func (s *ShortenerService) Search(ctx context.Context, identity *entity.Identity, q string, size int) ([]LinkView, error) {
	if identity == nil {
		return nil, apperror.Authentication(msgAuthRequired, nil)
	}
	if s.Index == nil {
		return nil, apperror.Unavailable("search is not configured")
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("q is required")
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	links, err := s.Index.Search(ctx, identity.UserID, q, size)
	if err != nil {
		return nil, apperror.Internal("search short urls", err)
	}
	return s.views(links), nil
}

// Export snapshots all of the caller's links and returns where the snapshot was written.
func (s *ShortenerService) Export(ctx context.Context, identity *entity.Identity) (string, error) {
	if identity == nil {
		return "", apperror.Authentication(msgAuthRequired, nil)
	}
	if s.Exporter == nil {
		return "", apperror.Unavailable("export is not configured")
	}
	var all []entity.ShortURL
	for offset := 0; ; offset += exportBatchSize {
		batch, err := s.Links.ListByOwner(ctx, identity.UserID, exportBatchSize, offset)
		if err != nil {
			return "", apperror.Internal("list short urls", err)
		}
		all = append(all, batch...)
		if len(batch) < exportBatchSize {
			break
		}
	}
	loc, err := s.Exporter.Export(ctx, identity.UserID, all)
	if err != nil {
		return "", apperror.Internal("export short urls", err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": identity.UserID, "links": len(all)}).Info("links exported")
	return loc, nil
}

func (s *ShortenerService) ShortURL(alias string) string {
	return s.BaseURL + "/" + alias
}

func (s *ShortenerService) view(l entity.ShortURL) LinkView {
	return LinkView{Alias: l.Alias, ShortURL: s.ShortURL(l.Alias), TargetURL: l.TargetURL, CreatedAt: l.CreatedAt}
}

func (s *ShortenerService) views(links []entity.ShortURL) []LinkView {
	out := make([]LinkView, 0, len(links))
	for _, l := range links {
		out = append(out, s.view(l))
	}
	return out
}

// validateTargetURL accepts any absolute URI except script-bearing schemes.
func validateTargetURL(raw string) (string, error) {
	target, err := helpers.CheckTargetURL(raw)
	if err != nil {
		return "", apperror.Validation(err.Error())
	}
	return target, nil
}
