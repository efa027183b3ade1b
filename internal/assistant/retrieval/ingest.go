// internal/assistant/retrieval/ingest.go
package retrieval

import (
	"context"
	"os"
	"strings"

	"banking-assistant/internal/common/genai"
	"banking-assistant/internal/common/logger"
)

const maxChunkSize = 1200

// Ingestor loads the source document, chunks it, embeds the chunks and writes
// them to the index under the document's content-derived id.
type Ingestor struct {
	embedder genai.Embedder
	index    *ElasticsearchIndex
	logger   logger.Logger
}

func NewIngestor(embedder genai.Embedder, index *ElasticsearchIndex, log logger.Logger) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		index:    index,
		logger:   log,
	}
}

// Ingest indexes the document at path and returns its document id. Chunk ids
// are derived from the id, so ingesting an unchanged file is idempotent.
func (i *Ingestor) Ingest(ctx context.Context, path string) (string, error) {
	documentID, err := DocumentIDFromFile(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	chunks := ChunkText(string(data), maxChunkSize)
	if len(chunks) == 0 {
		i.logger.Warn("document produced no chunks", map[string]interface{}{"path": path})
		return documentID, nil
	}

	vectors, err := i.embedder.Embed(ctx, chunks)
	if err != nil {
		return "", err
	}

	if err := i.index.EnsureIndex(ctx, len(vectors[0])); err != nil {
		return "", err
	}
	if err := i.index.IndexChunks(ctx, documentID, chunks, vectors); err != nil {
		return "", err
	}

	return documentID, nil
}

// ChunkText splits text on paragraph boundaries, packing paragraphs together
// up to maxSize. A single oversized paragraph becomes its own chunk.
func ChunkText(text string, maxSize int) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para)+2 > maxSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
