package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/tiletally/tiletally-go/internal/dependencies/clock"
	"github.com/tiletally/tiletally-go/internal/dependencies/random"
	"github.com/tiletally/tiletally-go/internal/model"
	"github.com/tiletally/tiletally-go/internal/storage"
)

const (
	idAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	sessionIDLength = 8
	playerIDLength  = 8
	turnIDLength    = 12
)

// Controller owns the session state machine: every operation loads the
// session, validates the stage, applies the mutation, recomputes the
// derived totals, and writes the full snapshot back before returning.
//
// Invalid input never leaves a partial mutation behind: wrong-stage
// calls and unparsable points return a sentinel error with the stored
// state untouched, and operations the rules define as no-ops (renaming
// an unknown player, undoing an empty log) return the session
// unchanged.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new session controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Create starts a new session in the setup stage and persists it
func (c *Controller) Create(ctx context.Context) (*model.Session, error) {
	id := model.SessionID(c.random.String(sessionIDLength, idAlphabet))
	session := model.NewSession(id, c.clock.Now())

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created", slog.String("session_id", string(id)))
	return session, nil
}

// Get loads a session. A missing or corrupt snapshot yields a fresh
// default session rather than an error: the persisted slot is a cache
// of the group's progress, and losing it must never block play.
func (c *Controller) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.load(ctx, id)
}

// SetPlayerCount sets the number of players for the next roster.
// Valid only during setup; out-of-range values are clamped into
// [2, 8]. The roster itself is untouched until naming begins.
func (c *Controller) SetPlayerCount(ctx context.Context, id model.SessionID, count int) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageSetup {
		return nil, model.ErrWrongStage
	}

	if count < model.MinPlayerCount {
		count = model.MinPlayerCount
	}
	if count > model.MaxPlayerCount {
		count = model.MaxPlayerCount
	}
	session.PlayerCount = count

	return c.save(ctx, session)
}

// BeginNaming moves setup -> naming, generating a fresh roster of
// exactly PlayerCount players with default names and avatars cycling
// through the palette from index 0. Any prior roster is replaced.
func (c *Controller) BeginNaming(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageSetup {
		return nil, model.ErrWrongStage
	}

	players := make([]model.Player, session.PlayerCount)
	for i := range players {
		players[i] = model.Player{
			ID:     model.PlayerID(c.random.String(playerIDLength, idAlphabet)),
			Name:   fmt.Sprintf("Player %d", i+1),
			Avatar: model.AvatarForIndex(i),
		}
	}

	session.Stage = model.StageNaming
	session.Players = players
	session.SyncTotals()

	c.logger.Info("roster generated",
		slog.String("session_id", string(id)),
		slog.Int("player_count", len(players)),
	)

	return c.save(ctx, session)
}

// RenamePlayer updates a player's display name. Valid during naming
// and tolerated during play; an unknown player ID is a no-op.
func (c *Controller) RenamePlayer(ctx context.Context, id model.SessionID, playerID model.PlayerID, name string) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageNaming && session.Stage != model.StagePlay {
		return nil, model.ErrWrongStage
	}

	player := session.FindPlayer(playerID)
	if player == nil {
		return session, nil
	}
	player.Name = name

	return c.save(ctx, session)
}

// SetAvatar updates a player's avatar. Valid only during naming; the
// symbol must come from the palette; an unknown player ID is a no-op.
func (c *Controller) SetAvatar(ctx context.Context, id model.SessionID, playerID model.PlayerID, symbol string) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageNaming {
		return nil, model.ErrWrongStage
	}
	if !model.ValidAvatar(symbol) {
		return nil, model.ErrInvalidAvatar
	}

	player := session.FindPlayer(playerID)
	if player == nil {
		return session, nil
	}
	player.Avatar = symbol

	return c.save(ctx, session)
}

// StartPlaying moves naming -> play, clearing the turn log, the
// current index, and any pending input
func (c *Controller) StartPlaying(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageNaming {
		return nil, model.ErrWrongStage
	}

	session.Stage = model.StagePlay
	session.Turns = nil
	session.CurrentIndex = 0
	session.PendingInput = ""
	session.SyncTotals()

	return c.save(ctx, session)
}

// BackToSetup moves naming -> setup. The roster is left in place; it
// is replaced wholesale the next time naming begins.
func (c *Controller) BackToSetup(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageNaming {
		return nil, model.ErrWrongStage
	}

	session.Stage = model.StageSetup

	return c.save(ctx, session)
}

// SetInput records the in-progress point entry text during play
func (c *Controller) SetInput(ctx context.Context, id model.SessionID, text string) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StagePlay {
		return nil, model.ErrWrongStage
	}

	session.PendingInput = text

	return c.save(ctx, session)
}

// AddTurn records a turn for the current player and advances the
// rotation. The raw input is parsed as a number; if it doesn't parse
// to a finite value the session is untouched and the pending input is
// left in place for correction. Negative and zero scores are allowed.
// When raw is empty the stored pending input is used.
func (c *Controller) AddTurn(ctx context.Context, id model.SessionID, raw string) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StagePlay {
		return nil, model.ErrWrongStage
	}
	if len(session.Players) == 0 {
		return session, nil
	}

	if raw == "" {
		raw = session.PendingInput
	}
	points, err := parsePoints(raw)
	if err != nil {
		return nil, err
	}

	player := session.CurrentPlayer()
	turn := model.Turn{
		ID:        model.TurnID(c.random.String(turnIDLength, idAlphabet)),
		PlayerID:  player.ID,
		Points:    points,
		CreatedAt: c.clock.Now(),
	}

	session.Turns = append(session.Turns, turn)
	session.PendingInput = ""
	session.CurrentIndex = (session.CurrentIndex + 1) % len(session.Players)
	session.SyncTotals()

	return c.save(ctx, session)
}

// UndoLast removes the most recently recorded turn and steps the
// rotation back one position. An undo with nothing to undo is a
// complete no-op: the index only rolls back when a turn was actually
// removed, so add-then-undo always restores the prior state exactly.
func (c *Controller) UndoLast(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StagePlay {
		return nil, model.ErrWrongStage
	}
	if len(session.Turns) == 0 {
		return session, nil
	}

	session.Turns = session.Turns[:len(session.Turns)-1]
	if n := len(session.Players); n > 0 {
		session.CurrentIndex = (session.CurrentIndex - 1 + n) % n
	}
	session.SyncTotals()

	return c.save(ctx, session)
}

// Reset clears the persisted slot entirely. A subsequent load sees
// the documented defaults: setup stage, player count 2, empty roster
// and turn log, index 0.
func (c *Controller) Reset(ctx context.Context, id model.SessionID) (*model.Session, error) {
	if err := c.storage.DeleteSession(ctx, id); err != nil {
		c.logger.Error("failed to delete session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session reset", slog.String("session_id", string(id)))
	return model.NewSession(id, c.clock.Now()), nil
}

// load fetches and normalizes a session, substituting defaults when
// the slot is empty or holds a blob that no longer decodes
func (c *Controller) load(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrSessionNotFound):
		session = model.NewSession(id, c.clock.Now())
	case errors.Is(err, model.ErrSessionCorrupt):
		c.logger.Warn("stored session is corrupt, falling back to defaults",
			slog.String("session_id", string(id)),
		)
		session = model.NewSession(id, c.clock.Now())
	default:
		return nil, err
	}

	session.Normalize()
	return session, nil
}

// save stamps and persists the full session snapshot
func (c *Controller) save(ctx context.Context, session *model.Session) (*model.Session, error) {
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return session, nil
}

// parsePoints parses a raw point entry. Anything that isn't a finite
// number is rejected; fractional entries round to the nearest integer.
func parsePoints(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, model.ErrInvalidPoints
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, model.ErrInvalidPoints
	}

	return int(math.Round(value)), nil
}
