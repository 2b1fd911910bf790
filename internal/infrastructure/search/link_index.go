package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/linkshort/internal/domain/entity"
)

const linkMapping = `{
  "mappings": {
    "properties": {
      "alias":      {"type": "keyword"},
      "target_url": {"type": "text"},
      "owner_id":   {"type": "keyword"},
      "created_at": {"type": "date"}
    }
  }
}`

type linkDoc struct {
	Alias     string    `json:"alias"`
	TargetURL string    `json:"target_url"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkIndex mirrors short links into Elasticsearch so owners can search their targets.
// Postgres stays the source of truth.
type LinkIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewLinkIndex(es *elasticsearch.Client, index string) *LinkIndex {
	return &LinkIndex{es: es, index: index}
}

// EnsureIndex creates the index with its mapping if it does not exist yet.
func (x *LinkIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}
	res, err = x.es.Indices.Create(x.index,
		x.es.Indices.Create.WithContext(ctx),
		x.es.Indices.Create.WithBody(strings.NewReader(linkMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", x.index, res.Status())
	}
	return nil
}

func (x *LinkIndex) Index(ctx context.Context, s entity.ShortURL) error {
	b, err := json.Marshal(linkDoc{Alias: s.Alias, TargetURL: s.TargetURL, OwnerID: s.OwnerID, CreatedAt: s.CreatedAt})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: s.Alias, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index %s: %s", s.Alias, res.Status())
	}
	return nil
}

// Search matches q against target URLs and aliases, restricted to ownerID.
func (x *LinkIndex) Search(ctx context.Context, ownerID, q string, size int) ([]entity.ShortURL, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  q,
							"fields": []string{"target_url", "alias^2"},
						},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"owner_id": ownerID}},
				},
			},
		},
		"size": size,
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", x.index, res.Status())
	}
	return decodeHits(res.Body)
}

func decodeHits(body io.Reader) ([]entity.ShortURL, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				Source linkDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.ShortURL, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.ShortURL{
			Alias:     h.Source.Alias,
			TargetURL: h.Source.TargetURL,
			OwnerID:   h.Source.OwnerID,
			CreatedAt: h.Source.CreatedAt,
		})
	}
	return out, nil
}
