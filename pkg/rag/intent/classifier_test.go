package intent

import (
	"context"
	"errors"
	"testing"

	"ai-docassist-be/pkg/llm"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestClassifySimpleQueriesSkipLLM(t *testing.T) {
	queries := []string{"", "hi", "test", "ok", "?!.", "   hello   "}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			fake := &fakeLLM{response: `{"intent": "Policy", "confidence": 0.9, "reasoning": "x"}`}
			c := NewClassifier(fake, nopLogger{})

			got := c.Classify(context.Background(), q)
			if got != IntentSimpleTest {
				t.Errorf("Classify(%q) = %s, want SimpleTest", q, got)
			}
			if fake.calls != 0 {
				t.Errorf("Classify(%q) made %d LLM calls, want 0", q, fake.calls)
			}
		})
	}
}

func TestClassifyValidCategories(t *testing.T) {
	tests := []struct {
		response string
		want     Intent
	}{
		{`{"intent": "Policy", "confidence": 0.9, "reasoning": "policy question"}`, IntentPolicy},
		{`{"intent": "Project", "confidence": 0.85, "reasoning": "project reference"}`, IntentProject},
		{`{"intent": "Standards", "confidence": 0.8, "reasoning": "NZS reference"}`, IntentStandards},
		{"```json\n{\"intent\": \"Procedure\", \"confidence\": 0.7, \"reasoning\": \"how-to\"}\n```", IntentProcedure},
	}

	for _, tt := range tests {
		fake := &fakeLLM{response: tt.response}
		c := NewClassifier(fake, nopLogger{})

		got := c.Classify(context.Background(), "what is the wind load standard for canopies")
		if got != tt.want {
			t.Errorf("Classify with response %q = %s, want %s", tt.response, got, tt.want)
		}
		if fake.calls != 1 {
			t.Errorf("expected exactly 1 LLM call, got %d", fake.calls)
		}
	}
}

func TestClassifyUnknownCategoryFallsBack(t *testing.T) {
	fake := &fakeLLM{response: `{"intent": "Blueprint", "confidence": 0.9, "reasoning": "??"}`}
	c := NewClassifier(fake, nopLogger{})

	if got := c.Classify(context.Background(), "what about the blueprints"); got != IntentGeneralKnowledge {
		t.Errorf("unknown category mapped to %s, want GeneralKnowledge", got)
	}
}

func TestClassifyGarbageResponseFallsBack(t *testing.T) {
	fake := &fakeLLM{response: "I think this is probably about policies."}
	c := NewClassifier(fake, nopLogger{})

	if got := c.Classify(context.Background(), "leave policy details"); got != IntentGeneralKnowledge {
		t.Errorf("garbage response mapped to %s, want GeneralKnowledge", got)
	}
}

func TestClassifyLLMFailureFallsBack(t *testing.T) {
	fake := &fakeLLM{err: errors.New("connection refused")}
	c := NewClassifier(fake, nopLogger{})

	if got := c.Classify(context.Background(), "what standards apply to retaining walls"); got != IntentGeneralKnowledge {
		t.Errorf("LLM failure mapped to %s, want GeneralKnowledge", got)
	}
}
