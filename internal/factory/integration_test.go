package factory

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiletally/tiletally-go/internal/model"
	redisstorage "github.com/tiletally/tiletally-go/internal/storage/redis"
)

// Full session flow through the wired application, against both
// storage backends.

func runFullFlow(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()
	ctrl := app.SessionController

	created, err := ctrl.Create(ctx)
	require.NoError(t, err)
	id := created.ID

	_, err = ctrl.SetPlayerCount(ctx, id, 3)
	require.NoError(t, err)

	s, err := ctrl.BeginNaming(ctx, id)
	require.NoError(t, err)
	require.Len(t, s.Players, 3)

	_, err = ctrl.RenamePlayer(ctx, id, s.Players[0].ID, "Ada")
	require.NoError(t, err)

	_, err = ctrl.StartPlaying(ctx, id)
	require.NoError(t, err)

	for _, points := range []string{"8", "15", "-2"} {
		_, err = ctrl.AddTurn(ctx, id, points)
		require.NoError(t, err)
	}

	s, err = ctrl.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.Players[0].Name)
	assert.Equal(t, 8, s.Players[0].Total)
	assert.Equal(t, 15, s.Players[1].Total)
	assert.Equal(t, -2, s.Players[2].Total)
	assert.Equal(t, 0, s.CurrentIndex)

	s, err = ctrl.UndoLast(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Players[2].Total)
	assert.Equal(t, 2, s.CurrentIndex)

	s, err = ctrl.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StageSetup, s.Stage)

	loaded, err := ctrl.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, loaded.Players)
	assert.Equal(t, 2, loaded.PlayerCount)
}

func TestFullFlowMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)

	runFullFlow(t, app)
}

func TestFullFlowRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = fmt.Sprintf("redis://%s", mini.Addr())

	app, err := New(Config{
		StorageType: StorageTypeRedis,
		RedisConfig: &redisCfg,
	})
	require.NoError(t, err)

	runFullFlow(t, app)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}
