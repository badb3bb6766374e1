package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"club-signup/internal/common/config"
	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/models"
)

// ElasticsearchStore maps a collection to the index <prefix><collection> and
// each document to an index document with the same ID.
type ElasticsearchStore struct {
	client      *elasticsearch.Client
	indexPrefix string
	refresh     string
}

// NewElasticsearchStore creates a store on top of an existing client.
func NewElasticsearchStore(client *elasticsearch.Client, indexPrefix, refresh string) *ElasticsearchStore {
	return &ElasticsearchStore{
		client:      client,
		indexPrefix: strings.ToLower(indexPrefix),
		refresh:     refresh,
	}
}

// NewElasticsearchClient builds a client from config.
func NewElasticsearchClient(cfg config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return es, nil
}

// IndexFor returns the index a collection is stored in.
func (s *ElasticsearchStore) IndexFor(collection string) string {
	return s.indexPrefix + strings.ToLower(collection)
}

func (s *ElasticsearchStore) Create(ctx context.Context, collection, id string, app models.Application) error {
	body, err := json.Marshal(app)
	if err != nil {
		return apperrors.NewDocumentWriteFailedError(collection, id, err)
	}

	opts := []func(*esapi.CreateRequest){
		s.client.Create.WithContext(ctx),
	}
	if s.refresh != "" {
		opts = append(opts, s.client.Create.WithRefresh(s.refresh))
	}

	res, err := s.client.Create(s.IndexFor(collection), id, bytes.NewReader(body), opts...)
	if err != nil {
		return writeError(ctx, collection, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusConflict {
		return apperrors.NewDocumentExistsError(collection, id)
	}
	if res.IsError() {
		return apperrors.NewDocumentWriteFailedError(collection, id,
			fmt.Errorf("elasticsearch create error: %s", res.String()))
	}
	return nil
}

// Ping tests the Elasticsearch connection
func (s *ElasticsearchStore) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// Close is a no-op; the client holds no resources beyond its transport.
func (s *ElasticsearchStore) Close() error { return nil }
