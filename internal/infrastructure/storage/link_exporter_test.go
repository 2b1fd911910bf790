package storage

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/linkshort/internal/domain/entity"
)

func TestLinkExporterWritesCSV(t *testing.T) {
	var gotPath, gotType string
	var rows [][]string
	exp := NewLinkExporter(func(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
		gotPath, gotType = objectPath, contentType
		var err error
		rows, err = csv.NewReader(r).ReadAll()
		return "https://storage.googleapis.com/bucket/" + objectPath, err
	}, "https://sho.rt")
	exp.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	created := time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)
	url, err := exp.Export(context.Background(), "owner-1", []entity.ShortURL{
		{Alias: "abc", TargetURL: "https://example.com/a,b", CreatedAt: created},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "exports/owner-1/20261016T120000Z-"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".csv"))
	assert.Equal(t, "text/csv", gotType)
	assert.Equal(t, "https://storage.googleapis.com/bucket/"+gotPath, url)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alias", "short_url", "target_url", "created_at"}, rows[0])
	assert.Equal(t, []string{"abc", "https://sho.rt/abc", "https://example.com/a,b", "2026-10-01T08:30:00Z"}, rows[1])
}
