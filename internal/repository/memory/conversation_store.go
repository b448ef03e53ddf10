package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"

	"ai-docassist-be/internal/constant"
	"ai-docassist-be/pkg/llm"
)

// maxTurns bounds a session to 10 question/answer pairs
const maxTurns = 20

// ConversationStore holds per-session sliding windows of prior turns.
// Sessions are created lazily on first use and live for the process
// lifetime. Each session carries its own mutex so concurrent queries on
// different session ids never contend.
type ConversationStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

type conversationSession struct {
	mu    sync.Mutex
	turns []llm.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// session returns the session for an id, creating it if missing
func (s *ConversationStore) session(sessionID string) *conversationSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if x, found := s.cache.Get(sessionID); found {
		return x.(*conversationSession)
	}
	sess := &conversationSession{}
	s.cache.Set(sessionID, sess, cache.NoExpiration)
	return sess
}

// Get returns a copy of the session's turns, oldest first
func (s *ConversationStore) Get(sessionID string) []llm.Message {
	sess := s.session(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	turns := make([]llm.Message, len(sess.turns))
	copy(turns, sess.turns)
	return turns
}

// Append records one question/answer pair, evicting the oldest turns
// once the window exceeds its bound
func (s *ConversationStore) Append(sessionID, question, answer string) {
	sess := s.session(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns,
		llm.Message{Role: constant.ChatMessageRoleUser, Content: question},
		llm.Message{Role: constant.ChatMessageRoleAssistant, Content: answer},
	)
	if len(sess.turns) > maxTurns {
		sess.turns = sess.turns[len(sess.turns)-maxTurns:]
	}
}
