// FILE: internal/service/assistant_service.go
// PURPOSE: Orchestrate classify -> extract -> filter -> retrieve -> synthesize for one query

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-docassist-be/internal/constant"
	"ai-docassist-be/internal/dto"
	"ai-docassist-be/internal/pkg/logger"
	"ai-docassist-be/internal/repository/memory"
	"ai-docassist-be/pkg/llm"
	"ai-docassist-be/pkg/rag/answer"
	"ai-docassist-be/pkg/rag/filter"
	"ai-docassist-be/pkg/rag/intent"
	"ai-docassist-be/pkg/rag/metadata"
	"ai-docassist-be/pkg/rag/retrieve"
)

const (
	strategyHybridSemantic = "hybrid_semantic"
	strategyNone           = "none"
)

type IAssistantService interface {
	ProcessQuery(ctx context.Context, sessionID, query string) *dto.RAGResponse
	GetHistory(sessionID string) []llm.Message
}

// AnswerStore caches finished responses keyed by query and filter
type AnswerStore interface {
	Get(ctx context.Context, query, filterExpr string) (*dto.RAGResponse, bool)
	Set(ctx context.Context, query, filterExpr string, response *dto.RAGResponse)
}

type assistantService struct {
	classifier  intent.Resolver
	retriever   *retrieve.Retriever
	synthesizer *answer.Synthesizer
	store       *memory.ConversationStore
	answerCache AnswerStore
	pubSub      *gochannel.GoChannel
	topicName   string
	log         logger.ILogger

	// nowYear is injectable so relative time ranges are deterministic in tests
	nowYear func() int
}

func NewAssistantService(
	classifier intent.Resolver,
	retriever *retrieve.Retriever,
	synthesizer *answer.Synthesizer,
	store *memory.ConversationStore,
	answerCache AnswerStore,
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		classifier:  classifier,
		retriever:   retriever,
		synthesizer: synthesizer,
		store:       store,
		answerCache: answerCache,
		pubSub:      pubSub,
		topicName:   topicName,
		log:         log,
		nowYear:     func() int { return time.Now().Year() },
	}
}

// ProcessQuery runs the full pipeline for one query. It always returns a
// well-formed response; component failures degrade per their own contracts
// and anything unexpected maps to the uniform error response.
func (s *assistantService) ProcessQuery(ctx context.Context, sessionID, query string) (response *dto.RAGResponse) {
	started := time.Now()

	defer func() {
		errKind := ""
		if r := recover(); r != nil {
			s.log.Error("assistant", "query processing panicked", map[string]interface{}{
				"session_id": sessionID,
				"panic":      r,
			})
			errKind = "processing"
			response = errorResponse(errKind)
		}
		if response != nil {
			s.store.Append(sessionID, query, response.Answer)
			s.publishAudit(sessionID, query, response, time.Since(started).Milliseconds(), errKind)
		}
	}()

	detected := s.classifier.Classify(ctx, query)

	if detected == intent.IntentSimpleTest {
		return &dto.RAGResponse{
			Answer:            constant.SimpleTestAnswer,
			Sources:           []dto.SourceDTO{},
			Intent:            string(detected),
			RetrievalStrategy: strategyNone,
			Confidence:        1,
		}
	}

	meta := metadata.Extract(query, s.nowYear())
	filterExpr := filter.Build(detected, meta, query)

	history := s.store.Get(sessionID)

	// Cached answers are only safe for fresh sessions. A follow-up depends
	// on history the cache key cannot see, so serving or storing one would
	// leak a different conversation's context.
	if len(history) == 0 {
		if cached, found := s.answerCache.Get(ctx, query, filterExpr); found {
			s.log.Debug("assistant", "answer cache hit", map[string]interface{}{"session_id": sessionID})
			return cached
		}
	}

	searchText := intent.ExpandForSearch(intent.Normalize(query), detected)

	results, err := s.retriever.Retrieve(ctx, searchText, filterExpr, retrieve.DefaultTopK)
	if err != nil {
		// Index unreachable reads as zero results, not a hard error
		s.log.Error("assistant", "retrieval failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		results = nil
	}

	synth := s.synthesizer.Synthesize(ctx, query, results, history)

	sources := make([]dto.SourceDTO, 0, len(synth.Sources))
	for _, src := range synth.Sources {
		sources = append(sources, dto.SourceDTO{
			Title:       src.Title,
			Folder:      src.Folder,
			ProjectName: src.ProjectName,
			Relevance:   src.Relevance,
			Excerpt:     src.Excerpt,
		})
	}

	response = &dto.RAGResponse{
		Answer:              synth.Answer,
		Sources:             sources,
		Intent:              string(detected),
		FilterUsed:          filterExpr,
		TotalDocumentsFound: len(results),
		RetrievalStrategy:   strategyHybridSemantic,
		Confidence:          synth.Confidence,
	}

	if len(history) == 0 && len(results) > 0 && synth.Confidence > 0 {
		s.answerCache.Set(ctx, query, filterExpr, response)
	}

	return response
}

func (s *assistantService) GetHistory(sessionID string) []llm.Message {
	return s.store.Get(sessionID)
}

// publishAudit hands the completed query to the audit consumer. Publish
// failures are logged and swallowed so auditing never affects the caller.
func (s *assistantService) publishAudit(sessionID, query string, response *dto.RAGResponse, durationMs int64, errKind string) {
	if s.pubSub == nil {
		return
	}

	payload, err := json.Marshal(dto.QueryAuditMessage{
		SessionId:      sessionID,
		Query:          query,
		Intent:         response.Intent,
		FilterUsed:     response.FilterUsed,
		DocumentsFound: response.TotalDocumentsFound,
		Confidence:     response.Confidence,
		DurationMs:     durationMs,
		Sources:        response.Sources,
		ErrorKind:      errKind,
	})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.log.Warn("assistant", "audit publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func errorResponse(kind string) *dto.RAGResponse {
	return &dto.RAGResponse{
		Answer:            fmt.Sprintf(constant.ProcessingErrorAnswer, kind),
		Sources:           []dto.SourceDTO{},
		Intent:            string(intent.IntentError),
		RetrievalStrategy: strategyNone,
		Confidence:        0,
	}
}
