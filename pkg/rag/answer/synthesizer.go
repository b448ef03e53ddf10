// FILE: pkg/rag/answer/synthesizer.go
// PURPOSE: Build a bounded context window and synthesize a cited answer

package answer

import (
	"context"
	"fmt"
	"strings"

	"ai-docassist-be/internal/constant"
	"ai-docassist-be/internal/pkg/logger"
	"ai-docassist-be/pkg/llm"
	"ai-docassist-be/pkg/search"
)

const (
	// Per-source and cumulative character budgets for the context window
	sourceCharBudget  = 1200
	contextCharBudget = 8000

	// History and citation caps
	maxHistoryTurns  = 3
	maxSources       = 5
	excerptCharLimit = 200
)

// Source is one cited document in a synthesized answer
type Source struct {
	Title       string  `json:"title"`
	Folder      string  `json:"folder"`
	ProjectName string  `json:"project_name,omitempty"`
	Relevance   float64 `json:"relevance"`
	Excerpt     string  `json:"excerpt"`
}

// Result is the synthesizer output. Confidence is 0 only when synthesis
// itself failed and the answer is the fixed apology.
type Result struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// Synthesizer asks the LLM for a single cohesive answer grounded in the
// retrieved passages
type Synthesizer struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, log logger.ILogger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		log:      log,
	}
}

// Synthesize produces an answer with at most 5 cited sources. It never
// returns an error: an LLM failure yields the fixed apology with empty
// sources, and an empty result set yields the fixed no-results answer.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []search.Result, history []llm.Message) *Result {
	if len(results) == 0 {
		return &Result{
			Answer:     constant.NoResultsAnswer,
			Sources:    []Source{},
			Confidence: 0.3,
		}
	}

	docContext := buildDocumentContext(results)
	historyContext := buildHistoryContext(history)

	userPrompt := fmt.Sprintf(constant.AnswerSynthesisUserPrompt, historyContext, docContext, query)

	messages := []llm.Message{
		{Role: "system", Content: constant.AnswerSynthesisSystemPrompt},
		{Role: "user", Content: userPrompt},
	}

	response, err := s.provider.Chat(ctx, messages,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(1500),
	)
	if err != nil {
		s.log.Error("answer", "synthesis failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &Result{
			Answer:     constant.SynthesisApologyMessage,
			Sources:    []Source{},
			Confidence: 0,
		}
	}

	return &Result{
		Answer:     extractAnswerSection(response),
		Sources:    formatSources(results),
		Confidence: estimateConfidence(results),
	}
}

// buildDocumentContext formats results as labeled source blocks in rank order.
// Each block is truncated to its own budget; once the cumulative budget is
// reached, lower-ranked sources are dropped entirely.
func buildDocumentContext(results []search.Result) string {
	var sb strings.Builder

	for i, res := range results {
		content := strings.TrimSpace(res.Content)
		if len(content) > sourceCharBudget {
			content = content[:sourceCharBudget] + "..."
		}

		block := fmt.Sprintf("Source %d: %s (%s)\n%s\n\n", i+1, res.Filename, res.Folder, content)
		if sb.Len()+len(block) > contextCharBudget {
			break
		}
		sb.WriteString(block)
	}

	return strings.TrimSpace(sb.String())
}

// buildHistoryContext renders the most recent turns as role-labeled lines
func buildHistoryContext(history []llm.Message) string {
	if len(history) == 0 {
		return "(no prior conversation)"
	}

	start := len(history) - maxHistoryTurns
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	for _, msg := range history[start:] {
		role := "User"
		if msg.Role == "assistant" {
			role = "Assistant"
		}
		content := msg.Content
		if len(content) > 300 {
			content = content[:300] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", role, content))
	}
	return strings.TrimSpace(sb.String())
}

// extractAnswerSection pulls the ANSWER: body out of the structured response,
// dropping the model's own SOURCES: section since citations are built from
// the actual result set
func extractAnswerSection(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "ANSWER:"); idx >= 0 {
		response = response[idx+len("ANSWER:"):]
	}
	if idx := strings.Index(response, "SOURCES:"); idx >= 0 {
		response = response[:idx]
	}

	return strings.TrimSpace(response)
}

func formatSources(results []search.Result) []Source {
	sources := make([]Source, 0, maxSources)

	for _, res := range results {
		if len(sources) == maxSources {
			break
		}
		excerpt := strings.TrimSpace(res.Content)
		if len(excerpt) > excerptCharLimit {
			excerpt = excerpt[:excerptCharLimit] + "..."
		}
		sources = append(sources, Source{
			Title:       res.Filename,
			Folder:      res.Folder,
			ProjectName: res.ProjectName,
			Relevance:   relevanceOf(res),
			Excerpt:     excerpt,
		})
	}
	return sources
}

func relevanceOf(res search.Result) float64 {
	if res.RerankerScore > 0 {
		return res.RerankerScore
	}
	return res.Score
}

// estimateConfidence maps the top reranker score (0-4 scale) onto 0..1,
// falling back to a fixed medium value for keyword-only rankings
func estimateConfidence(results []search.Result) float64 {
	top := results[0]
	if top.RerankerScore > 0 {
		c := top.RerankerScore / 4.0
		if c > 1 {
			c = 1
		}
		return c
	}
	return 0.5
}
