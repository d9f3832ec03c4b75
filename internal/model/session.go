package model

import "time"

// SessionID uniquely identifies a scoring session
type SessionID string

// PlayerID uniquely identifies a player within a session
type PlayerID string

// TurnID uniquely identifies a recorded turn
type TurnID string

// Stage represents the current phase of a session
type Stage string

const (
	StageSetup  Stage = "setup"  // Choosing player count
	StageNaming Stage = "naming" // Assigning names and avatars
	StagePlay   Stage = "play"   // Recording turns
)

// Default values applied when a field is missing from a loaded session
const (
	DefaultPlayerCount = 2
	MinPlayerCount     = 2
	MaxPlayerCount     = 8
)

// Player is a participant in a session.
// Total is a cache of the turn-log fold for this player; it is
// recomputed after every mutation and is never authoritative.
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar"`
	Total  int      `json:"total"`
}

// Turn is a single scoring entry. Turns are immutable once created;
// the log is append-only except for undo-last and reset.
type Turn struct {
	ID        TurnID    `json:"id"`
	PlayerID  PlayerID  `json:"player_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the full state of one scoring session. It is persisted
// as a single snapshot after every mutation.
type Session struct {
	ID           SessionID `json:"id"`
	Stage        Stage     `json:"stage"`
	PlayerCount  int       `json:"player_count"`
	Players      []Player  `json:"players"`
	Turns        []Turn    `json:"turns"`
	CurrentIndex int       `json:"current_player_index"`
	PendingInput string    `json:"pending_input,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a session with default state
func NewSession(id SessionID, now time.Time) *Session {
	return &Session{
		ID:          id,
		Stage:       StageSetup,
		PlayerCount: DefaultPlayerCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CurrentPlayer returns the player whose turn is next, or nil if the
// roster is empty
func (s *Session) CurrentPlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return &s.Players[s.CurrentIndex%len(s.Players)]
}

// FindPlayer returns the player with the given ID, or nil if not found.
// Turns may reference players no longer in the roster; callers treat a
// nil result as a blank display, never a failure.
func (s *Session) FindPlayer(id PlayerID) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// LastTurn returns the most recently recorded turn, or nil if the log
// is empty
func (s *Session) LastTurn() *Turn {
	if len(s.Turns) == 0 {
		return nil
	}
	return &s.Turns[len(s.Turns)-1]
}

// Normalize repairs a session loaded from storage so that every field
// holds a valid value: zero stage falls back to setup, player count is
// clamped into range, and the current index is brought back into
// [0, roster size). Totals are recomputed from the turn log rather
// than trusted from the stored cache.
func (s *Session) Normalize() {
	switch s.Stage {
	case StageSetup, StageNaming, StagePlay:
	default:
		s.Stage = StageSetup
	}

	if s.PlayerCount < MinPlayerCount {
		s.PlayerCount = DefaultPlayerCount
	}
	if s.PlayerCount > MaxPlayerCount {
		s.PlayerCount = MaxPlayerCount
	}

	if len(s.Players) == 0 {
		s.CurrentIndex = 0
	} else if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Players) {
		s.CurrentIndex = ((s.CurrentIndex % len(s.Players)) + len(s.Players)) % len(s.Players)
	}

	s.SyncTotals()
}

// SyncTotals recomputes every player's cached Total from the turn log
func (s *Session) SyncTotals() {
	totals := ComputeTotals(s.Players, s.Turns)
	for i := range s.Players {
		s.Players[i].Total = totals[s.Players[i].ID]
	}
}

// ComputeTotals folds the turn log into a mapping from player ID to
// the sum of that player's points. Turns referencing players outside
// the roster are skipped.
func ComputeTotals(players []Player, turns []Turn) map[PlayerID]int {
	totals := make(map[PlayerID]int, len(players))
	for _, p := range players {
		totals[p.ID] = 0
	}
	for _, t := range turns {
		if _, ok := totals[t.PlayerID]; ok {
			totals[t.PlayerID] += t.Points
		}
	}
	return totals
}
