package search

// Request describes a single hybrid query against the document index.
// Keyword text, vector queries, and an optional OData filter are combined
// server-side; semantic ranking reorders the fused result set.
type Request struct {
	Search                string        `json:"search"`
	VectorQueries         []VectorQuery `json:"vectorQueries,omitempty"`
	Filter                string        `json:"filter,omitempty"`
	QueryType             string        `json:"queryType,omitempty"`
	SemanticConfiguration string        `json:"semanticConfiguration,omitempty"`
	Top                   int           `json:"top,omitempty"`
	Select                string        `json:"select,omitempty"`
	HighlightFields       string        `json:"highlight,omitempty"`
}

type VectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

// Result is one retrieved document chunk with its relevance signals.
type Result struct {
	ID            string              `json:"id"`
	Content       string              `json:"content"`
	Filename      string              `json:"filename"`
	Folder        string              `json:"folder"`
	ProjectName   string              `json:"project_name"`
	BlobURL       string              `json:"blob_url,omitempty"`
	Score         float64             `json:"@search.score"`
	RerankerScore float64             `json:"@search.rerankerScore"`
	Highlights    map[string][]string `json:"@search.highlights,omitempty"`
}

type searchResponse struct {
	Value []Result `json:"value"`
}
