package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tiletally/tiletally-go/internal/model"
	"github.com/tiletally/tiletally-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Sessions are stored as serialized snapshots so that, like the Redis
// backend, readers never observe a caller's later mutations.
type Storage struct {
	mu       sync.RWMutex
	sessions map[model.SessionID][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = data
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, model.ErrSessionCorrupt
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

// CorruptSession overwrites a stored session with an undecodable blob.
// Test helper for exercising the corrupt-load path.
func (s *Storage) CorruptSession(id model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = []byte("{not json")
}
