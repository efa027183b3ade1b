// Package retrieval answers loan-eligibility questions from an indexed
// document using vector search plus grounded generation.
package retrieval

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
)

// Match is one scored chunk returned by the vector index.
type Match struct {
	ID         string
	Score      float64
	Content    string
	DocumentID string
}

// Index performs a similarity search over indexed document chunks.
type Index interface {
	Query(ctx context.Context, vector []float32, documentID string, topK int) ([]Match, error)
}

// DocumentIDFromFile derives a stable id from the document's content, so a
// changed file gets a fresh index namespace.
func DocumentIDFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	checksum := sha256.Sum256(data)
	return fmt.Sprintf("doc_%x", checksum[:8]), nil
}
