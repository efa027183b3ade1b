// internal/assistant/retrieval/esindex.go
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
)

// ElasticsearchIndex stores and searches document chunk vectors with kNN.
type ElasticsearchIndex struct {
	client       *elasticsearch.Client
	indexName    string
	queryTimeout time.Duration
	logger       logger.Logger
}

func NewElasticsearchIndex(client *elasticsearch.Client, indexName string, queryTimeout time.Duration, log logger.Logger) *ElasticsearchIndex {
	return &ElasticsearchIndex{
		client:       client,
		indexName:    indexName,
		queryTimeout: queryTimeout,
		logger:       log,
	}
}

// EnsureIndex creates the chunk index with a dense_vector mapping if it does
// not exist yet.
func (e *ElasticsearchIndex) EnsureIndex(ctx context.Context, dims int) error {
	existsRes, err := esapi.IndicesExistsRequest{Index: []string{e.indexName}}.Do(ctx, e.client)
	if err != nil {
		return apperrors.NewDatabaseConnectionError(err)
	}
	defer existsRes.Body.Close()
	if existsRes.StatusCode == 200 {
		return nil
	}

	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"content": map[string]interface{}{
					"type": "text",
				},
				"document_id": map[string]interface{}{
					"type": "keyword",
				},
				"embedding": map[string]interface{}{
					"type":       "dense_vector",
					"dims":       dims,
					"index":      true,
					"similarity": "cosine",
				},
			},
		},
	}

	body, _ := json.Marshal(mapping)
	res, err := esapi.IndicesCreateRequest{
		Index: e.indexName,
		Body:  bytes.NewReader(body),
	}.Do(ctx, e.client)
	if err != nil {
		return apperrors.NewDatabaseConnectionError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewQueryExecutionError(fmt.Errorf("create index %s: %s", e.indexName, res.String()))
	}
	return nil
}

// IndexChunks writes embedded chunks for a document in one bulk request.
// Chunk ids are deterministic so re-ingesting the same document overwrites
// rather than duplicates.
func (e *ElasticsearchIndex) IndexChunks(ctx context.Context, documentID string, chunks []string, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	var buf bytes.Buffer
	for i, chunk := range chunks {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": e.indexName,
				"_id":    fmt.Sprintf("%s_chunk_%d", documentID, i),
			},
		}
		doc := map[string]interface{}{
			"content":     chunk,
			"document_id": documentID,
			"embedding":   vectors[i],
		}
		metaLine, _ := json.Marshal(meta)
		docLine, _ := json.Marshal(doc)
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(docLine)
		buf.WriteByte('\n')
	}

	res, err := esapi.BulkRequest{
		Body:    &buf,
		Refresh: "true",
	}.Do(ctx, e.client)
	if err != nil {
		return apperrors.NewQueryExecutionError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewQueryExecutionError(fmt.Errorf("bulk index: %s", res.String()))
	}

	e.logger.Info("indexed document chunks", map[string]interface{}{
		"document_id": documentID,
		"chunks":      len(chunks),
	})
	return nil
}

// Query runs a kNN search filtered to one document and returns the matches.
func (e *ElasticsearchIndex) Query(ctx context.Context, vector []float32, documentID string, topK int) ([]Match, error) {
	ctx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	queryBody := buildKNNQuery(vector, documentID, topK)
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{e.indexName},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewIndexQueryTimeoutError(err)
		}
		return nil, apperrors.NewIndexQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewIndexQueryFailedError(fmt.Errorf("search: %s", res.String()))
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source struct {
					Content    string `json:"content"`
					DocumentID string `json:"document_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, apperrors.NewIndexQueryFailedError(err)
	}

	matches := make([]Match, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		matches = append(matches, Match{
			ID:         hit.ID,
			Score:      hit.Score,
			Content:    hit.Source.Content,
			DocumentID: hit.Source.DocumentID,
		})
	}
	return matches, nil
}

// buildKNNQuery builds the vector search request body scoped to one document.
func buildKNNQuery(vector []float32, documentID string, topK int) map[string]interface{} {
	return map[string]interface{}{
		"knn": map[string]interface{}{
			"field":          "embedding",
			"query_vector":   vector,
			"k":              topK,
			"num_candidates": topK * 10,
			"filter": map[string]interface{}{
				"term": map[string]interface{}{
					"document_id": documentID,
				},
			},
		},
		"size":    topK,
		"_source": []string{"content", "document_id"},
	}
}
