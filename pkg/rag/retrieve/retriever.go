// FILE: pkg/rag/retrieve/retriever.go
// PURPOSE: Hybrid keyword+vector retrieval with quality post-filtering

package retrieve

import (
	"context"
	"sort"
	"strings"

	"ai-docassist-be/internal/pkg/logger"
	"ai-docassist-be/pkg/embedding"
	"ai-docassist-be/pkg/search"
)

const (
	// DefaultTopK is how many candidates one retrieval call asks for
	DefaultTopK = 15

	// minContentLength drops placeholder/empty documents
	minContentLength = 100
)

// Folder-path markers for documents that should never reach an answer
var folderDenylist = []string{"superseded", "superceded", "archive", "trash", "photos"}

var selectFields = "id,content,filename,folder,project_name"

// Retriever issues one hybrid retrieval call and cleans up the result set.
// An embedding failure degrades to keyword-only ranking instead of aborting.
type Retriever struct {
	embedder embedding.EmbeddingProvider
	index    search.Service
	log      logger.ILogger
}

func NewRetriever(embedder embedding.EmbeddingProvider, index search.Service, log logger.ILogger) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		log:      log,
	}
}

// Retrieve runs a hybrid query scoped by the optional filter. A transport
// failure on the index call is returned to the caller; "no results" is an
// empty slice, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query, filterExpr string, topK int) ([]search.Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	req := search.Request{
		Search:                query,
		Filter:                filterExpr,
		QueryType:             "semantic",
		SemanticConfiguration: "default",
		Top:                   topK,
		Select:                selectFields,
	}

	if vector := r.embedQuery(query); len(vector) > 0 {
		req.VectorQueries = []search.VectorQuery{{
			Kind:   "vector",
			Vector: vector,
			Fields: "content_vector",
			K:      topK,
		}}
	}

	results, err := r.index.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	filtered := applyQualityFilters(results)
	sortByRelevance(filtered)
	return filtered, nil
}

// embedQuery generates the query vector, returning nil on any failure
func (r *Retriever) embedQuery(query string) []float32 {
	res, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		r.log.Warn("retrieve", "embedding failed, degrading to keyword-only search", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return res.Embedding.Values
}

// applyQualityFilters drops placeholder documents and denylisted folders
func applyQualityFilters(results []search.Result) []search.Result {
	filtered := make([]search.Result, 0, len(results))

	for _, res := range results {
		if len(strings.TrimSpace(res.Content)) < minContentLength {
			continue
		}
		if isDenylisted(res.Folder) {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered
}

func isDenylisted(folder string) bool {
	lower := strings.ToLower(folder)
	for _, marker := range folderDenylist {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// sortByRelevance orders by reranker score, falling back to keyword score
// for results the semantic ranker did not score
func sortByRelevance(results []search.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return effectiveScore(results[i]) > effectiveScore(results[j])
	})
}

func effectiveScore(r search.Result) float64 {
	if r.RerankerScore > 0 {
		return r.RerankerScore
	}
	return r.Score
}
