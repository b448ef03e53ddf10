package dto

type AskRequest struct {
	SessionId string `json:"session_id" validate:"required,max=100"`
	Query     string `json:"query" validate:"required,max=2000"`
}

type SourceDTO struct {
	Title       string  `json:"title"`
	Folder      string  `json:"folder"`
	ProjectName string  `json:"project_name,omitempty"`
	Relevance   float64 `json:"relevance"`
	Excerpt     string  `json:"excerpt"`
}

// RAGResponse is the unit returned to the caller for every query,
// including the uniform error path
type RAGResponse struct {
	Answer              string      `json:"answer"`
	Sources             []SourceDTO `json:"sources"`
	Intent              string      `json:"intent"`
	FilterUsed          string      `json:"filter_used,omitempty"`
	TotalDocumentsFound int         `json:"total_documents_found"`
	RetrievalStrategy   string      `json:"retrieval_strategy"`
	Confidence          float64     `json:"confidence"`
}

type AskResponse struct {
	SessionId string       `json:"session_id"`
	Result    *RAGResponse `json:"result"`
}

// QueryAuditMessage is the payload published on the audit topic after
// every processed query
type QueryAuditMessage struct {
	SessionId      string      `json:"session_id"`
	Query          string      `json:"query"`
	Intent         string      `json:"intent"`
	FilterUsed     string      `json:"filter_used"`
	DocumentsFound int         `json:"documents_found"`
	Confidence     float64     `json:"confidence"`
	DurationMs     int64       `json:"duration_ms"`
	Sources        []SourceDTO `json:"sources"`
	ErrorKind      string      `json:"error_kind,omitempty"`
}

type HistoryTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GetHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Turns     []HistoryTurnDTO `json:"turns"`
}
