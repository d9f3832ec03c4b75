package storage

import (
	"context"

	"github.com/tiletally/tiletally-go/internal/model"
)

// Storage defines the interface for session persistence.
//
// Each session is written as a full-state snapshot: the last write
// wins, there are no partial updates. A backend that finds a stored
// blob it cannot decode returns model.ErrSessionCorrupt so callers can
// substitute defaults instead of failing.
type Storage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
}
