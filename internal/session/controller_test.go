package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tiletally/tiletally-go/internal/dependencies/mocks"
	"github.com/tiletally/tiletally-go/internal/model"
	"github.com/tiletally/tiletally-go/internal/storage/memory"
	"github.com/tiletally/tiletally-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

// newSession creates a session with a fixed ID
func (s *ControllerSuite) newSession() model.SessionID {
	s.random.QueueString("SESSION1")
	session, err := s.controller.Create(s.ctx)
	s.Require().NoError(err)
	return session.ID
}

// toNaming advances a fresh session to the naming stage with two players
func (s *ControllerSuite) toNaming(id model.SessionID) *model.Session {
	s.random.QueueString("PLAYER01", "PLAYER02")
	session, err := s.controller.BeginNaming(s.ctx, id)
	s.Require().NoError(err)
	return session
}

// toPlay advances a fresh session to the play stage with two players
func (s *ControllerSuite) toPlay(id model.SessionID) *model.Session {
	s.toNaming(id)
	session, err := s.controller.StartPlaying(s.ctx, id)
	s.Require().NoError(err)
	return session
}

// Create / Get

func (s *ControllerSuite) TestCreateSessionDefaults() {
	s.random.QueueString("SESSION1")

	session, err := s.controller.Create(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.SessionID("SESSION1"), session.ID)
	s.Equal(model.StageSetup, session.Stage)
	s.Equal(2, session.PlayerCount)
	s.Empty(session.Players)
	s.Empty(session.Turns)
	s.Equal(0, session.CurrentIndex)
}

func (s *ControllerSuite) TestCreateIsPersisted() {
	id := s.newSession()

	exists, err := s.storage.SessionExists(s.ctx, id)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *ControllerSuite) TestGetMissingSessionYieldsDefaults() {
	session, err := s.controller.Get(s.ctx, "NEVERSAVED")
	s.Require().NoError(err)

	s.Equal(model.StageSetup, session.Stage)
	s.Equal(2, session.PlayerCount)
	s.Empty(session.Players)
	s.Empty(session.Turns)
}

func (s *ControllerSuite) TestGetCorruptSessionYieldsDefaults() {
	id := s.newSession()
	s.toPlay(id)
	s.storage.CorruptSession(id)

	session, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.StageSetup, session.Stage)
	s.Equal(2, session.PlayerCount)
	s.Empty(session.Turns)
}

func (s *ControllerSuite) TestGetRecomputesStoredTotals() {
	id := s.newSession()
	s.toPlay(id)
	_, err := s.controller.AddTurn(s.ctx, id, "10")
	s.Require().NoError(err)

	// Tamper with the stored cache; the load path must recompute
	stored, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	stored.Players[0].Total = 999
	s.Require().NoError(s.storage.SaveSession(s.ctx, stored))

	session, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(10, session.Players[0].Total)
}

// SetPlayerCount

func (s *ControllerSuite) TestSetPlayerCount() {
	id := s.newSession()

	session, err := s.controller.SetPlayerCount(s.ctx, id, 4)
	s.Require().NoError(err)
	s.Equal(4, session.PlayerCount)
	s.Empty(session.Players, "setting the count must not touch the roster")
}

func (s *ControllerSuite) TestSetPlayerCountClamps() {
	id := s.newSession()

	session, err := s.controller.SetPlayerCount(s.ctx, id, 1)
	s.Require().NoError(err)
	s.Equal(2, session.PlayerCount)

	session, err = s.controller.SetPlayerCount(s.ctx, id, 99)
	s.Require().NoError(err)
	s.Equal(8, session.PlayerCount)
}

func (s *ControllerSuite) TestSetPlayerCountWrongStage() {
	id := s.newSession()
	s.toNaming(id)

	_, err := s.controller.SetPlayerCount(s.ctx, id, 4)
	s.ErrorIs(err, model.ErrWrongStage)
}

// BeginNaming

func (s *ControllerSuite) TestBeginNamingGeneratesRoster() {
	id := s.newSession()
	_, err := s.controller.SetPlayerCount(s.ctx, id, 3)
	s.Require().NoError(err)

	s.random.QueueString("PLAYER01", "PLAYER02", "PLAYER03")
	session, err := s.controller.BeginNaming(s.ctx, id)
	s.Require().NoError(err)

	s.Equal(model.StageNaming, session.Stage)
	s.Require().Len(session.Players, 3)
	for i, p := range session.Players {
		s.Equal(model.AvatarPalette[i%len(model.AvatarPalette)], p.Avatar)
		s.Equal(0, p.Total)
	}
	s.Equal("Player 1", session.Players[0].Name)
	s.Equal("Player 2", session.Players[1].Name)
	s.Equal("Player 3", session.Players[2].Name)
}

func (s *ControllerSuite) TestBeginNamingIDsAreDistinct() {
	id := s.newSession()
	_, err := s.controller.SetPlayerCount(s.ctx, id, 8)
	s.Require().NoError(err)

	// Unqueued mock IDs fall back to a unique sequence
	session, err := s.controller.BeginNaming(s.ctx, id)
	s.Require().NoError(err)

	seen := make(map[model.PlayerID]bool)
	for _, p := range session.Players {
		s.False(seen[p.ID], "duplicate player id %q", p.ID)
		seen[p.ID] = true
	}
}

func (s *ControllerSuite) TestBeginNamingAvatarsCycleForLargeRosters() {
	// With an 18-symbol palette no roster in [2,8] wraps, so cycling
	// means the first N palette entries in order
	id := s.newSession()
	_, err := s.controller.SetPlayerCount(s.ctx, id, 8)
	s.Require().NoError(err)

	session, err := s.controller.BeginNaming(s.ctx, id)
	s.Require().NoError(err)

	for i, p := range session.Players {
		s.Equal(model.AvatarForIndex(i), p.Avatar)
	}
}

func (s *ControllerSuite) TestBeginNamingReplacesPriorRoster() {
	id := s.newSession()
	s.toNaming(id)

	// Back out and regenerate with a different count
	_, err := s.controller.BackToSetup(s.ctx, id)
	s.Require().NoError(err)
	_, err = s.controller.SetPlayerCount(s.ctx, id, 3)
	s.Require().NoError(err)

	s.random.QueueString("NEWPLR01", "NEWPLR02", "NEWPLR03")
	session, err := s.controller.BeginNaming(s.ctx, id)
	s.Require().NoError(err)

	s.Require().Len(session.Players, 3)
	s.Equal(model.PlayerID("NEWPLR01"), session.Players[0].ID)
}

func (s *ControllerSuite) TestBeginNamingWrongStage() {
	id := s.newSession()
	s.toPlay(id)

	_, err := s.controller.BeginNaming(s.ctx, id)
	s.ErrorIs(err, model.ErrWrongStage)
}

// RenamePlayer / SetAvatar

func (s *ControllerSuite) TestRenamePlayer() {
	id := s.newSession()
	s.toNaming(id)

	session, err := s.controller.RenamePlayer(s.ctx, id, "PLAYER01", "Maud")
	s.Require().NoError(err)
	s.Equal("Maud", session.Players[0].Name)
	s.Equal("Player 2", session.Players[1].Name)
}

func (s *ControllerSuite) TestRenamePlayerToleratedDuringPlay() {
	id := s.newSession()
	s.toPlay(id)

	session, err := s.controller.RenamePlayer(s.ctx, id, "PLAYER02", "Hal")
	s.Require().NoError(err)
	s.Equal("Hal", session.Players[1].Name)
}

func (s *ControllerSuite) TestRenameUnknownPlayerIsNoop() {
	id := s.newSession()
	s.toNaming(id)

	session, err := s.controller.RenamePlayer(s.ctx, id, "MISSING", "Nobody")
	s.Require().NoError(err)
	s.Equal("Player 1", session.Players[0].Name)
	s.Equal("Player 2", session.Players[1].Name)
}

func (s *ControllerSuite) TestRenamePlayerWrongStage() {
	id := s.newSession()

	_, err := s.controller.RenamePlayer(s.ctx, id, "PLAYER01", "Too early")
	s.ErrorIs(err, model.ErrWrongStage)
}

func (s *ControllerSuite) TestSetAvatar() {
	id := s.newSession()
	s.toNaming(id)

	session, err := s.controller.SetAvatar(s.ctx, id, "PLAYER01", model.AvatarPalette[5])
	s.Require().NoError(err)
	s.Equal(model.AvatarPalette[5], session.Players[0].Avatar)
}

func (s *ControllerSuite) TestSetAvatarRejectsNonPaletteSymbol() {
	id := s.newSession()
	s.toNaming(id)

	_, err := s.controller.SetAvatar(s.ctx, id, "PLAYER01", "☃")
	s.ErrorIs(err, model.ErrInvalidAvatar)

	session, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.AvatarPalette[0], session.Players[0].Avatar)
}

func (s *ControllerSuite) TestSetAvatarUnknownPlayerIsNoop() {
	id := s.newSession()
	s.toNaming(id)

	session, err := s.controller.SetAvatar(s.ctx, id, "MISSING", model.AvatarPalette[3])
	s.Require().NoError(err)
	s.Equal(model.AvatarPalette[0], session.Players[0].Avatar)
	s.Equal(model.AvatarPalette[1], session.Players[1].Avatar)
}

func (s *ControllerSuite) TestSetAvatarWrongStageDuringPlay() {
	id := s.newSession()
	s.toPlay(id)

	_, err := s.controller.SetAvatar(s.ctx, id, "PLAYER01", model.AvatarPalette[3])
	s.ErrorIs(err, model.ErrWrongStage)
}

// StartPlaying / BackToSetup

func (s *ControllerSuite) TestStartPlayingResetsTurnState() {
	id := s.newSession()
	session := s.toPlay(id)

	s.Equal(model.StagePlay, session.Stage)
	s.Empty(session.Turns)
	s.Equal(0, session.CurrentIndex)
	s.Empty(session.PendingInput)
}

func (s *ControllerSuite) TestBackToSetupKeepsRoster() {
	id := s.newSession()
	s.toNaming(id)

	session, err := s.controller.BackToSetup(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.StageSetup, session.Stage)
	s.Len(session.Players, 2)
}

// AddTurn

func (s *ControllerSuite) TestAddTurnScenario() {
	// The two-player walkthrough: 10 for player 1, 7 for player 2
	id := s.newSession()
	s.toPlay(id)

	session, err := s.controller.AddTurn(s.ctx, id, "10")
	s.Require().NoError(err)
	s.Require().Len(session.Turns, 1)
	s.Equal(model.PlayerID("PLAYER01"), session.Turns[0].PlayerID)
	s.Equal(10, session.Turns[0].Points)
	s.Equal(1, session.CurrentIndex)

	session, err = s.controller.AddTurn(s.ctx, id, "7")
	s.Require().NoError(err)
	s.Require().Len(session.Turns, 2)
	s.Equal(model.PlayerID("PLAYER02"), session.Turns[1].PlayerID)
	s.Equal(0, session.CurrentIndex)

	s.Equal(10, session.Players[0].Total)
	s.Equal(7, session.Players[1].Total)
}

func (s *ControllerSuite) TestAddTurnAllowsNegativeAndZero() {
	id := s.newSession()
	s.toPlay(id)

	session, err := s.controller.AddTurn(s.ctx, id, "-5")
	s.Require().NoError(err)
	s.Equal(-5, session.Turns[0].Points)

	session, err = s.controller.AddTurn(s.ctx, id, "0")
	s.Require().NoError(err)
	s.Equal(0, session.Turns[1].Points)

	s.Equal(-5, session.Players[0].Total)
}

func (s *ControllerSuite) TestAddTurnUnparsableInputIsNoop() {
	id := s.newSession()
	s.toPlay(id)
	_, err := s.controller.AddTurn(s.ctx, id, "10")
	s.Require().NoError(err)

	for _, raw := range []string{"abc", "", "  ", "NaN", "+Inf", "1e999"} {
		_, err := s.controller.AddTurn(s.ctx, id, raw)
		s.ErrorIs(err, model.ErrInvalidPoints, "input %q", raw)
	}

	session, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Len(session.Turns, 1)
	s.Equal(1, session.CurrentIndex)
}

func (s *ControllerSuite) TestAddTurnKeepsPendingInputOnParseFailure() {
	id := s.newSession()
	s.toPlay(id)

	_, err := s.controller.SetInput(s.ctx, id, "ten points")
	s.Require().NoError(err)

	_, err = s.controller.AddTurn(s.ctx, id, "")
	s.ErrorIs(err, model.ErrInvalidPoints)

	session, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("ten points", session.PendingInput, "offending text stays for correction")
}

func (s *ControllerSuite) TestAddTurnUsesAndClearsPendingInput() {
	id := s.newSession()
	s.toPlay(id)

	_, err := s.controller.SetInput(s.ctx, id, "12")
	s.Require().NoError(err)

	session, err := s.controller.AddTurn(s.ctx, id, "")
	s.Require().NoError(err)
	s.Require().Len(session.Turns, 1)
	s.Equal(12, session.Turns[0].Points)
	s.Empty(session.PendingInput)
}

func (s *ControllerSuite) TestAddTurnStampsClockTime() {
	id := s.newSession()
	s.toPlay(id)
	s.clock.Advance(42 * time.Minute)

	session, err := s.controller.AddTurn(s.ctx, id, "10")
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, session.Turns[0].CreatedAt)
}

func (s *ControllerSuite) TestAddTurnWrongStage() {
	id := s.newSession()

	_, err := s.controller.AddTurn(s.ctx, id, "10")
	s.ErrorIs(err, model.ErrWrongStage)

	s.toNaming(id)
	_, err = s.controller.AddTurn(s.ctx, id, "10")
	s.ErrorIs(err, model.ErrWrongStage)
}

// UndoLast

func (s *ControllerSuite) TestUndoLastIsLeftInverseOfAddTurn() {
	id := s.newSession()
	s.toPlay(id)
	_, err := s.controller.AddTurn(s.ctx, id, "10")
	s.Require().NoError(err)

	before, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)

	_, err = s.controller.AddTurn(s.ctx, id, "7")
	s.Require().NoError(err)

	after, err := s.controller.UndoLast(s.ctx, id)
	s.Require().NoError(err)

	s.Equal(before.Turns, after.Turns)
	s.Equal(before.CurrentIndex, after.CurrentIndex)
	s.Equal(before.Players, after.Players)
}

func (s *ControllerSuite) TestUndoLastScenario() {
	// After 10 and 7 are recorded, undo removes player 2's 7 and the
	// rotation returns to player 2
	id := s.newSession()
	s.toPlay(id)
	_, _ = s.controller.AddTurn(s.ctx, id, "10")
	_, _ = s.controller.AddTurn(s.ctx, id, "7")

	session, err := s.controller.UndoLast(s.ctx, id)
	s.Require().NoError(err)

	s.Require().Len(session.Turns, 1)
	s.Equal(model.PlayerID("PLAYER01"), session.Turns[0].PlayerID)
	s.Equal(1, session.CurrentIndex)
	s.Equal(10, session.Players[0].Total)
	s.Equal(0, session.Players[1].Total)
}

func (s *ControllerSuite) TestUndoLastEmptyLogIsNoop() {
	id := s.newSession()
	s.toPlay(id)

	session, err := s.controller.UndoLast(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(session.Turns)
	s.Equal(0, session.CurrentIndex, "index must not rotate when nothing was undone")
}

func (s *ControllerSuite) TestUndoLastWrongStage() {
	id := s.newSession()

	_, err := s.controller.UndoLast(s.ctx, id)
	s.ErrorIs(err, model.ErrWrongStage)
}

// Invariants over longer sequences

func (s *ControllerSuite) TestIndexStaysInRangeAcrossSequences() {
	id := s.newSession()
	_, err := s.controller.SetPlayerCount(s.ctx, id, 3)
	s.Require().NoError(err)
	s.random.QueueString("PLAYER01", "PLAYER02", "PLAYER03")
	_, err = s.controller.BeginNaming(s.ctx, id)
	s.Require().NoError(err)
	_, err = s.controller.StartPlaying(s.ctx, id)
	s.Require().NoError(err)

	ops := []string{"add", "add", "undo", "add", "undo", "undo", "undo", "add", "add", "add", "add", "undo"}
	for _, op := range ops {
		var session *model.Session
		var err error
		if op == "add" {
			session, err = s.controller.AddTurn(s.ctx, id, "5")
		} else {
			session, err = s.controller.UndoLast(s.ctx, id)
		}
		s.Require().NoError(err)
		s.GreaterOrEqual(session.CurrentIndex, 0)
		s.Less(session.CurrentIndex, len(session.Players))
	}
}

func (s *ControllerSuite) TestTotalsAlwaysEqualFoldOverLog() {
	id := s.newSession()
	s.toPlay(id)

	inputs := []string{"10", "7", "-3", "0", "22"}
	for _, raw := range inputs {
		session, err := s.controller.AddTurn(s.ctx, id, raw)
		s.Require().NoError(err)

		totals := model.ComputeTotals(session.Players, session.Turns)
		for _, p := range session.Players {
			s.Equal(totals[p.ID], p.Total)
		}
	}
}

// Reset

func (s *ControllerSuite) TestResetClearsPersistedSlot() {
	id := s.newSession()
	s.toPlay(id)
	_, _ = s.controller.AddTurn(s.ctx, id, "10")

	session, err := s.controller.Reset(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.StageSetup, session.Stage)
	s.Equal(2, session.PlayerCount)
	s.Empty(session.Players)
	s.Empty(session.Turns)
	s.Equal(0, session.CurrentIndex)

	exists, err := s.storage.SessionExists(s.ctx, id)
	s.Require().NoError(err)
	s.False(exists, "persisted slot must be cleared")

	// A fresh load sees the documented defaults
	loaded, err := s.controller.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(model.StageSetup, loaded.Stage)
	s.Equal(2, loaded.PlayerCount)
}

func (s *ControllerSuite) TestResetValidInAnyStage() {
	for _, advance := range []func(model.SessionID){
		func(model.SessionID) {},
		func(id model.SessionID) { s.toNaming(id) },
		func(id model.SessionID) { s.toPlay(id) },
	} {
		s.SetupTest()
		id := s.newSession()
		advance(id)

		session, err := s.controller.Reset(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.StageSetup, session.Stage)
	}
}

// parsePoints

func (s *ControllerSuite) TestParsePoints() {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{" 7 ", 7, false},
		{"-5", -5, false},
		{"0", 0, false},
		{"10.6", 11, false},
		{"1e2", 100, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePoints(tt.raw)
		if tt.wantErr {
			s.ErrorIs(err, model.ErrInvalidPoints, "input %q", tt.raw)
		} else {
			s.Require().NoError(err, "input %q", tt.raw)
			s.Equal(tt.want, got, "input %q", tt.raw)
		}
	}
}
