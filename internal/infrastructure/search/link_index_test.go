package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/linkshort/internal/domain/entity"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *LinkIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// go-elasticsearch v8 refuses to talk to servers that do not identify as Elasticsearch.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewLinkIndex(es, "short_urls")
}

func TestLinkIndexIndex(t *testing.T) {
	var gotPath string
	var gotDoc linkDoc
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotDoc)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	err := x.Index(t.Context(), entity.ShortURL{Alias: "abc", TargetURL: "https://example.com", OwnerID: "u1", CreatedAt: created})
	require.NoError(t, err)

	assert.Equal(t, "/short_urls/_doc/abc", gotPath)
	assert.Equal(t, "https://example.com", gotDoc.TargetURL)
	assert.Equal(t, "u1", gotDoc.OwnerID)
	assert.True(t, created.Equal(gotDoc.CreatedAt))
}

func TestLinkIndexSearchFiltersByOwner(t *testing.T) {
	var body string
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"alias":"abc","target_url":"https://example.com/docs","owner_id":"u1","created_at":"2026-01-01T00:00:00Z"}}]}}`))
	})

	got, err := x.Search(t.Context(), "u1", "docs", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].Alias)
	assert.Equal(t, "https://example.com/docs", got[0].TargetURL)
	assert.True(t, strings.Contains(body, `"owner_id":"u1"`), body)
	assert.True(t, strings.Contains(body, `"query":"docs"`), body)
}

func TestLinkIndexSearchError(t *testing.T) {
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})
	_, err := x.Search(t.Context(), "u1", "docs", 10)
	assert.Error(t, err)
}
