package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/tiletally/tiletally-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) sampleSession() *model.Session {
	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	return &model.Session{
		ID:          "SESSION1",
		Stage:       model.StagePlay,
		PlayerCount: 2,
		Players: []model.Player{
			{ID: "p1", Name: "Player 1", Avatar: model.AvatarPalette[0], Total: 10},
			{ID: "p2", Name: "Player 2", Avatar: model.AvatarPalette[1], Total: 7},
		},
		Turns: []model.Turn{
			{ID: "t1", PlayerID: "p1", Points: 10, CreatedAt: now},
			{ID: "t2", PlayerID: "p2", Points: 7, CreatedAt: now.Add(time.Minute)},
		},
		CurrentIndex: 0,
		CreatedAt:    now,
		UpdatedAt:    now.Add(time.Minute),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.sampleSession()

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Stage, retrieved.Stage)
	s.Equal(session.Players, retrieved.Players)
	s.Equal(len(session.Turns), len(retrieved.Turns))
	s.Equal(session.CurrentIndex, retrieved.CurrentIndex)
	s.True(session.Turns[0].CreatedAt.Equal(retrieved.Turns[0].CreatedAt))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetSessionCorruptBlob() {
	s.mini.Set(sessionKey("SESSION1"), "{definitely not json")

	_, err := s.storage.GetSession(s.ctx, "SESSION1")
	s.ErrorIs(err, model.ErrSessionCorrupt)
}

func (s *StorageSuite) TestDeleteSession() {
	session := s.sampleSession()
	_ = s.storage.SaveSession(s.ctx, session)

	err := s.storage.DeleteSession(s.ctx, session.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, s.sampleSession())

	exists, err = s.storage.SessionExists(s.ctx, "SESSION1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestSaveRefreshesTTL() {
	session := s.sampleSession()
	_ = s.storage.SaveSession(s.ctx, session)

	ttl := s.mini.TTL(sessionKey(session.ID))
	s.True(ttl > 0, "session should carry a TTL")

	s.mini.FastForward(30 * time.Minute)
	_ = s.storage.SaveSession(s.ctx, session)

	s.Equal(time.Hour, s.mini.TTL(sessionKey(session.ID)))
}

func (s *StorageSuite) TestSessionKeyIsVersioned() {
	s.Equal("tiletally:v1:session:SESSION1", sessionKey("SESSION1"))
}

func (s *StorageSuite) TestLastWriterWins() {
	session := s.sampleSession()
	_ = s.storage.SaveSession(s.ctx, session)

	session.Turns = session.Turns[:1]
	session.CurrentIndex = 1
	_ = s.storage.SaveSession(s.ctx, session)

	retrieved, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Len(retrieved.Turns, 1)
	s.Equal(1, retrieved.CurrentIndex)
}
