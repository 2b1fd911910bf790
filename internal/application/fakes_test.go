package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	repo "github.com/oksasatya/linkshort/internal/domain/repository"
	"github.com/oksasatya/linkshort/pkg/helpers"
)

// memUsers enforces email uniqueness at insert time, like the users_email_key index.
type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]string
	err     error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*entity.User{}, byEmail: map[string]string{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrEmailTaken
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	id, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

// memLinks enforces alias uniqueness at insert time, like short_urls_alias_key.
type memLinks struct {
	mu      sync.Mutex
	byAlias map[string]entity.ShortURL
	writes  int
	err     error
}

func newMemLinks() *memLinks {
	return &memLinks{byAlias: map[string]entity.ShortURL{}}
}

func (m *memLinks) Create(_ context.Context, s *entity.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byAlias[s.Alias]; ok {
		return repo.ErrAliasTaken
	}
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	m.byAlias[s.Alias] = *s
	m.writes++
	return nil
}

func (m *memLinks) GetByAlias(_ context.Context, alias string) (*entity.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.byAlias[alias]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &s, nil
}

func (m *memLinks) owned(ownerID string) []entity.ShortURL {
	var out []entity.ShortURL
	for _, s := range m.byAlias {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Alias < out[j].Alias
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *memLinks) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]entity.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	all := m.owned(ownerID)
	if offset >= len(all) {
		return []entity.ShortURL{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memLinks) CountByOwner(_ context.Context, ownerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return len(m.owned(ownerID)), nil
}

func (m *memLinks) seed(aliases ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range aliases {
		m.byAlias[a] = entity.ShortURL{Alias: a, TargetURL: "https://taken.example", OwnerID: "someone"}
	}
}

// scriptedAliases hands out queued aliases first, then falls back to nanoid.
type scriptedAliases struct {
	mu    sync.Mutex
	queue []string
	calls int
	err   error
}

func (g *scriptedAliases) NewAlias() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if len(g.queue) > 0 {
		a := g.queue[0]
		g.queue = g.queue[1:]
		return a, nil
	}
	return helpers.NanoIDGenerator{}.NewAlias()
}

// constantAliases always returns the same alias.
type constantAliases string

func (c constantAliases) NewAlias() (string, error) { return string(c), nil }

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemRevoker() *memRevoker { return &memRevoker{revoked: map[string]time.Time{}} }

func (r *memRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[jti] = until
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[jti]
	return ok, nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Welcome(_ context.Context, _ string, email string) error {
	m.sent = append(m.sent, email)
	return m.err
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
	setErr  error
}

func newMemCache() *memCache { return &memCache{entries: map[string]string{}} }

func (c *memCache) Get(_ context.Context, alias string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.entries[alias]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, alias, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[alias] = target
	return nil
}

type memIndex struct {
	mu      sync.Mutex
	docs    []entity.ShortURL
	lastQ   string
	lastOwn string
	err     error
}

func (x *memIndex) Index(_ context.Context, s entity.ShortURL) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	x.docs = append(x.docs, s)
	return nil
}

func (x *memIndex) Search(_ context.Context, ownerID, q string, size int) ([]entity.ShortURL, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lastQ, x.lastOwn = q, ownerID
	if x.err != nil {
		return nil, x.err
	}
	var out []entity.ShortURL
	for _, d := range x.docs {
		if d.OwnerID == ownerID && len(out) < size {
			out = append(out, d)
		}
	}
	return out, nil
}

type memExporter struct {
	owner string
	links []entity.ShortURL
	err   error
}

func (e *memExporter) Export(_ context.Context, ownerID string, links []entity.ShortURL) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.owner, e.links = ownerID, links
	return "https://storage.googleapis.com/exports/" + ownerID + ".csv", nil
}

var errStorage = errors.New("connection reset by peer")
