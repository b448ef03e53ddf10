package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-docassist-be/internal/constant"
	"ai-docassist-be/internal/dto"
	"ai-docassist-be/internal/pkg/cache"
	"ai-docassist-be/internal/repository/memory"
	"ai-docassist-be/pkg/embedding"
	"ai-docassist-be/pkg/llm"
	"ai-docassist-be/pkg/rag/answer"
	"ai-docassist-be/pkg/rag/intent"
	"ai-docassist-be/pkg/rag/retrieve"
	"ai-docassist-be/pkg/search"
)

type fakeLLM struct {
	response    string
	err         error
	calls       int
	lastHistory []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.lastHistory = history
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeIndex struct {
	results []search.Result
	err     error
}

func (f *fakeIndex) Search(ctx context.Context, req search.Request) ([]search.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func policyDoc(filename string) search.Result {
	return search.Result{
		Filename:      filename,
		Folder:        "Health and Safety/Wellbeing",
		Content:       strings.Repeat("Staff may work from home up to two days per week. ", 10),
		Score:         6.0,
		RerankerScore: 3.0,
	}
}

// newTestService wires the real pipeline components around fake collaborators
func newTestService(classifierLLM, synthLLM *fakeLLM, index *fakeIndex) (*assistantService, *memory.ConversationStore) {
	log := nopLogger{}
	store := memory.NewConversationStore()

	svc := NewAssistantService(
		intent.NewClassifier(classifierLLM, log),
		retrieve.NewRetriever(fakeEmbedder{}, index, log),
		answer.NewSynthesizer(synthLLM, log),
		store,
		cache.NewAnswerCache(nil, time.Minute, log),
		nil,
		"QUERY_AUDIT",
		log,
	).(*assistantService)

	svc.nowYear = func() int { return 2025 }
	return svc, store
}

func TestProcessQuerySimpleTestSkipsPipeline(t *testing.T) {
	classifierLLM := &fakeLLM{}
	synthLLM := &fakeLLM{}
	svc, _ := newTestService(classifierLLM, synthLLM, &fakeIndex{})

	resp := svc.ProcessQuery(context.Background(), "s1", "hi")

	if resp.Answer != constant.SimpleTestAnswer {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.Intent != "SimpleTest" {
		t.Errorf("intent = %s", resp.Intent)
	}
	if classifierLLM.calls != 0 || synthLLM.calls != 0 {
		t.Errorf("LLM calls = %d/%d, want 0/0", classifierLLM.calls, synthLLM.calls)
	}
}

func TestProcessQueryProjectYearRange(t *testing.T) {
	classifierLLM := &fakeLLM{response: `{"intent": "Project", "confidence": 0.9, "reasoning": "project listing"}`}
	synthLLM := &fakeLLM{response: "ANSWER:\nRecent projects include the harbour upgrade."}
	index := &fakeIndex{results: []search.Result{policyDoc("projects-2024.pdf")}}
	svc, _ := newTestService(classifierLLM, synthLLM, index)

	resp := svc.ProcessQuery(context.Background(), "s1", "give me project numbers from the past 4 years")

	if resp.Intent != "Project" {
		t.Errorf("intent = %s", resp.Intent)
	}
	if n := strings.Count(resp.FilterUsed, "folder ge"); n != 5 {
		t.Errorf("clause count = %d, want 5\nfilter: %s", n, resp.FilterUsed)
	}
	if n := strings.Count(resp.FilterUsed, " or "); n != 4 {
		t.Errorf("OR count = %d, want 4", n)
	}
	if !strings.Contains(resp.FilterUsed, "Projects/221/") || !strings.Contains(resp.FilterUsed, "Projects/225/") {
		t.Errorf("range endpoints missing: %s", resp.FilterUsed)
	}
}

func TestProcessQueryPolicy(t *testing.T) {
	classifierLLM := &fakeLLM{response: `{"intent": "Policy", "confidence": 0.95, "reasoning": "wellness policy"}`}
	synthLLM := &fakeLLM{response: "ANSWER:\nStaff may work from home up to two days per week.\n\nSOURCES:\nwellness.pdf (Health and Safety/Wellbeing)"}
	index := &fakeIndex{results: []search.Result{policyDoc("wellness.pdf")}}
	svc, store := newTestService(classifierLLM, synthLLM, index)

	resp := svc.ProcessQuery(context.Background(), "s1", "what's our wellness policy")

	if resp.Intent != "Policy" {
		t.Errorf("intent = %s", resp.Intent)
	}
	if !strings.Contains(resp.FilterUsed, "Health and Safety") {
		t.Errorf("filter not scoped to policy folders: %s", resp.FilterUsed)
	}
	if len(resp.Sources) == 0 {
		t.Error("expected sources")
	}
	if resp.TotalDocumentsFound != 1 {
		t.Errorf("documents found = %d", resp.TotalDocumentsFound)
	}

	// Session recorded the turn
	turns := store.Get("s1")
	if len(turns) != 2 || turns[0].Content != "what's our wellness policy" {
		t.Errorf("session turns = %+v", turns)
	}
}

func TestProcessQueryRetrievalFailureStaysWellFormed(t *testing.T) {
	classifierLLM := &fakeLLM{response: `{"intent": "Policy", "confidence": 0.95, "reasoning": "wellness policy"}`}
	synthLLM := &fakeLLM{response: "ANSWER:\nshould not be used"}
	index := &fakeIndex{err: errors.New("index unreachable")}
	svc, _ := newTestService(classifierLLM, synthLLM, index)

	resp := svc.ProcessQuery(context.Background(), "s1", "what's our wellness policy")

	if resp == nil {
		t.Fatal("response must always be well-formed")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("sources = %+v, want empty", resp.Sources)
	}
	if resp.Answer != constant.NoResultsAnswer {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.Intent != "Policy" {
		t.Errorf("intent = %s, classification should survive retrieval failure", resp.Intent)
	}
}

type fakeAnswerStore struct {
	entries map[string]*dto.RAGResponse
	gets    int
	sets    int
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{entries: map[string]*dto.RAGResponse{}}
}

func (f *fakeAnswerStore) Get(ctx context.Context, query, filterExpr string) (*dto.RAGResponse, bool) {
	f.gets++
	r, ok := f.entries[query+"|"+filterExpr]
	return r, ok
}

func (f *fakeAnswerStore) Set(ctx context.Context, query, filterExpr string, response *dto.RAGResponse) {
	f.sets++
	f.entries[query+"|"+filterExpr] = response
}

func TestProcessQueryFollowUpSkipsAnswerCache(t *testing.T) {
	classifierLLM := &fakeLLM{response: `{"intent": "Project", "confidence": 0.9, "reasoning": "project question"}`}
	synthLLM := &fakeLLM{response: "ANSWER:\nProject 224002 has a budget of $1.2M."}
	index := &fakeIndex{results: []search.Result{policyDoc("budget.pdf")}}
	svc, _ := newTestService(classifierLLM, synthLLM, index)

	store := newFakeAnswerStore()
	svc.answerCache = store

	svc.ProcessQuery(context.Background(), "s1", "tell me about project 224002")
	if store.gets != 1 || store.sets != 1 {
		t.Fatalf("fresh-session query gets/sets = %d/%d, want 1/1", store.gets, store.sets)
	}

	// The follow-up resolves against s1's history; its answer must not be
	// served to or stored for any other session
	followUp := "what's the budget for this project?"
	svc.ProcessQuery(context.Background(), "s1", followUp)
	if store.gets != 1 || store.sets != 1 {
		t.Errorf("follow-up touched the cache: gets/sets = %d/%d, want 1/1", store.gets, store.sets)
	}
	for key := range store.entries {
		if strings.HasPrefix(key, followUp+"|") {
			t.Errorf("follow-up answer was cached under %q", key)
		}
	}

	// A different session asking the same words gets a fresh synthesis
	synthCallsBefore := synthLLM.calls
	svc.ProcessQuery(context.Background(), "s2", followUp)
	if synthLLM.calls != synthCallsBefore+1 {
		t.Error("second session should synthesize fresh, not reuse another session's answer")
	}
}

func TestProcessQueryFollowUpUsesSessionHistory(t *testing.T) {
	classifierLLM := &fakeLLM{response: `{"intent": "Project", "confidence": 0.9, "reasoning": "project question"}`}
	synthLLM := &fakeLLM{response: "ANSWER:\nProject 224002 has a budget of $1.2M."}
	index := &fakeIndex{results: []search.Result{policyDoc("budget.pdf")}}
	svc, _ := newTestService(classifierLLM, synthLLM, index)

	svc.ProcessQuery(context.Background(), "s1", "tell me about project 224002")
	svc.ProcessQuery(context.Background(), "s1", "what's the budget for this project?")

	prompt := synthLLM.lastHistory[1].Content
	if !strings.Contains(prompt, "224002") {
		t.Error("prior turn naming 224002 missing from synthesis prompt")
	}
}
