package convo

import (
	"context"
	"sync"
	"time"

	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
)

// Store owns ConversationSession records. Implementations must fail
// closed: unknown and expired ids both read as absent.
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	End(ctx context.Context, id string) error
	SetFocusObject(ctx context.Context, id string, obj vision.DetectedObject) error
	SetFocusEntity(ctx context.Context, id string, ent temporal.Entity) error
	AppendHistory(ctx context.Context, id string, role Role, text string) error
}

// MemoryStore keeps sessions in a process-local table. All
// read-check-mutate sequences run under one mutex so concurrent
// follow-up and expiry checks cannot lose updates. Expired entries are
// never swept, only lazily invalidated on read; acceptable for
// short-lived, low-volume deployments.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = shared.NewID("conv_")
	}
	now := time.Now()
	sess.Active = true
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	if sess.History == nil {
		sess.History = []Turn{}
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	snapshot := *sess
	return &snapshot, nil
}

// lookup must be called with the mutex held. Expiry is sticky: the
// first read past the deadline marks the record inactive so every
// later read with the same id is also absent.
func (s *MemoryStore) lookup(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok || !sess.Active {
		return nil, shared.ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		sess.Active = false
		return nil, shared.ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) End(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || !sess.Active {
		return shared.ErrNotFound
	}
	sess.Active = false
	return nil
}

func (s *MemoryStore) SetFocusObject(_ context.Context, id string, obj vision.DetectedObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.FocusObject = &obj
	return nil
}

func (s *MemoryStore) SetFocusEntity(_ context.Context, id string, ent temporal.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.FocusEntity = &ent
	return nil
}

// AppendHistory is a no-op for unknown or expired sessions: history is
// advisory and losing a turn must never fail a request.
func (s *MemoryStore) AppendHistory(_ context.Context, id string, role Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil
	}
	sess.History = append(sess.History, Turn{Role: role, Text: text})
	return nil
}
