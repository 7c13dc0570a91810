package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/mitchellh/mapstructure"

	inventoryEntity "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/entity/inventory"
)

// SearchService queries the optional Elasticsearch index of ledger entries.
// The relational store stays the source of truth; the index only serves the
// free-text search endpoint and is populated best-effort after commits.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "inventory_transaction"
	}
	if host == "" {
		return &SearchService{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}
	return &SearchService{client: client, index: index}
}

// Enabled reports whether a client is configured.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// TransactionHit is one search result decoded from an ES hit source.
type TransactionHit struct {
	TransactionID uint   `json:"transaction_id" mapstructure:"transaction_id"`
	Type          string `json:"type" mapstructure:"type"`
	Quantity      int    `json:"quantity" mapstructure:"quantity"`
	ProductID     uint   `json:"product_id" mapstructure:"product_id"`
	WarehouseID   uint   `json:"warehouse_id" mapstructure:"warehouse_id"`
	ReferenceID   string `json:"reference_id" mapstructure:"reference_id"`
	CreatedAt     string `json:"created_at" mapstructure:"created_at"`
}

// Search runs a free-text query over reference ids and entry types.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]TransactionHit, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  query,
				"fields": []string{"reference_id^2", "type"},
			},
		},
		"sort": []map[string]interface{}{
			{"created_at": map[string]string{"order": "desc"}},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	hits := make([]TransactionHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		var hit TransactionHit
		if err := mapstructure.Decode(h.Source, &hit); err != nil {
			continue
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// IndexAsync pushes entries into the index in the background. Failures are
// logged and ignored; the ledger in the DB is authoritative.
func (s *SearchService) IndexAsync(entries []inventoryEntity.Transaction) {
	if s.client == nil || len(entries) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, entry := range entries {
			doc := map[string]interface{}{
				"transaction_id": entry.TransactionID,
				"type":           entry.Type,
				"quantity":       entry.Quantity,
				"product_id":     entry.ProductID,
				"warehouse_id":   entry.WarehouseID,
				"reference_id":   entry.ReferenceID,
				"created_at":     entry.CreatedAt.Format(time.RFC3339),
			}
			raw, err := json.Marshal(doc)
			if err != nil {
				continue
			}
			res, err := s.client.Index(
				s.index,
				strings.NewReader(string(raw)),
				s.client.Index.WithDocumentID(fmt.Sprintf("%d", entry.TransactionID)),
				s.client.Index.WithContext(ctx),
			)
			if err != nil {
				log.Printf("search index: %v", err)
				continue
			}
			res.Body.Close()
		}
	}()
}
