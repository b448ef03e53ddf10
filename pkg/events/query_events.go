package events

import "time"

const (
	QueryCompletedType = "QUERY_COMPLETED"
	QueryFailedType    = "QUERY_FAILED"
)

// NewQueryCompletedEvent records a fully processed query for the audit trail
func NewQueryCompletedEvent(sessionID, query, intent, filterUsed string, documentsFound int, confidence float64, durationMs int64) Event {
	return BaseEvent{
		Type: QueryCompletedType,
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"query":           query,
			"intent":          intent,
			"filter_used":     filterUsed,
			"documents_found": documentsFound,
			"confidence":      confidence,
			"duration_ms":     durationMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewQueryFailedEvent records a query that hit the uniform error path
func NewQueryFailedEvent(sessionID, query, errorKind string) Event {
	return BaseEvent{
		Type: QueryFailedType,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"query":      query,
			"error_kind": errorKind,
		},
		OccurredAt: time.Now(),
	}
}
