// FILE: pkg/rag/intent/classifier.go
// PURPOSE: Classify a query into a knowledge-domain intent

package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"ai-docassist-be/internal/constant"
	"ai-docassist-be/internal/pkg/logger"
	"ai-docassist-be/pkg/llm"
)

// Intent is the knowledge-domain category a query is classified into
type Intent string

const (
	IntentPolicy           Intent = "Policy"
	IntentProcedure        Intent = "Procedure"
	IntentStandards        Intent = "Standards"
	IntentProject          Intent = "Project"
	IntentClient           Intent = "Client"
	IntentGeneralKnowledge Intent = "GeneralKnowledge"
	IntentSimpleTest       Intent = "SimpleTest"

	// IntentError marks the uniform error response, never a classification result
	IntentError Intent = "error"
)

var knownIntents = map[Intent]bool{
	IntentPolicy:           true,
	IntentProcedure:        true,
	IntentStandards:        true,
	IntentProject:          true,
	IntentClient:           true,
	IntentGeneralKnowledge: true,
	IntentSimpleTest:       true,
}

// Greeting/test tokens that short-circuit classification without an LLM call
var simpleTokens = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true,
	"test": true, "testing": true, "ping": true,
	"ok": true, "okay": true, "thanks": true, "thank you": true,
	"yes": true, "no": true, "bye": true,
}

// Resolver is the classification capability. Alternate strategies
// (pattern-based, LLM-based) sit behind it and are selected at wiring time.
type Resolver interface {
	Classify(ctx context.Context, query string) Intent
}

// Classifier maps queries to intents. A lexical pre-filter handles trivial
// inputs; everything else goes to the LLM with a fixed instruction.
type Classifier struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

var _ Resolver = &Classifier{}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		provider: provider,
		log:      log,
	}
}

type classificationResult struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify returns the intent for a query. On any LLM failure or an
// unrecognized category token it falls back to GeneralKnowledge so an
// unknown category never propagates downstream.
func (c *Classifier) Classify(ctx context.Context, query string) Intent {
	if isSimpleQuery(query) {
		return IntentSimpleTest
	}

	prompt := fmt.Sprintf(constant.IntentClassificationPrompt, query)

	response, err := c.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(150),
	)
	if err != nil {
		c.log.Warn("intent", "classification failed, defaulting to general knowledge", map[string]interface{}{
			"error": err.Error(),
		})
		return IntentGeneralKnowledge
	}

	result, err := parseClassificationResponse(response)
	if err != nil {
		c.log.Warn("intent", "unparseable classification response", map[string]interface{}{
			"response": truncateForLog(response),
		})
		return IntentGeneralKnowledge
	}

	candidate := Intent(result.Intent)
	if !knownIntents[candidate] {
		c.log.Warn("intent", "unknown category from classifier", map[string]interface{}{
			"category": result.Intent,
		})
		return IntentGeneralKnowledge
	}

	c.log.Debug("intent", "classified query", map[string]interface{}{
		"intent":     result.Intent,
		"confidence": result.Confidence,
	})

	return candidate
}

// isSimpleQuery is the lexical pre-filter: very short input, greeting/test
// tokens, and punctuation-only strings never need retrieval.
func isSimpleQuery(query string) bool {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if len(normalized) <= 3 {
		return true
	}
	if simpleTokens[normalized] {
		return true
	}

	hasLetterOrDigit := false
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasLetterOrDigit = true
			break
		}
	}
	return !hasLetterOrDigit
}

// parseClassificationResponse extracts the JSON object from an LLM response
// that may be wrapped in markdown fences or surrounding text
func parseClassificationResponse(response string) (*classificationResult, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		response = response[jsonStart : jsonEnd+1]
	}

	var result classificationResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func truncateForLog(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
