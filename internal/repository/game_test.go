package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionTTL = time.Hour

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	t.Run("CreateOrUpdate_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, sessionTTL)

		// Given: a game with one move
		game := entity.NewGame("123")
		game.ApplyMove(4)

		// When: CreateOrUpdate is called
		err := gameRepo.CreateOrUpdate(ctx, "session", game)

		// Then: no error should be returned and the key expires with the session
		require.NoError(t, err)

		ttl, err := st.Storage.TTL(ctx, "game:session").Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)
		assert.LessOrEqual(t, ttl, sessionTTL)
	})

	t.Run("CreateOrUpdate_EmptySession", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, sessionTTL)

		// When: CreateOrUpdate is called without a session
		err := gameRepo.CreateOrUpdate(ctx, "", entity.NewGame("123"))

		// Then: an ErrSessionRequired error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionRequired)
	})
}

func TestGameRepository_GetBySession(t *testing.T) {
	t.Run("GetBySession_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, sessionTTL)

		// Given: a stored game X has won
		game := entity.NewGame("123")
		for _, cell := range []int{0, 3, 1, 4, 2} {
			require.True(t, game.ApplyMove(cell))
		}

		err := gameRepo.CreateOrUpdate(ctx, "session", game)
		require.NoError(t, err)

		// When: GetBySession is called with the same session
		retrievedGame, err := gameRepo.GetBySession(ctx, "session")

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
		assert.Equal(t, entity.PlayerX, retrievedGame.Winner())
	})

	t.Run("GetBySession_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, sessionTTL)

		// When: GetBySession is called with an unknown session
		retrievedGame, err := gameRepo.GetBySession(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})

	t.Run("GetBySession_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, sessionTTL)

		// Given: a stored value that claims a draw on an empty board
		raw := `{"id":"1","board":["","","","","","","","",""],"next_player":"X","status":"draw","winner":""}`
		require.NoError(t, st.Storage.Set(ctx, "game:session", raw, 0).Err())

		// When: GetBySession is called
		_, err := gameRepo.GetBySession(ctx, "session")

		// Then: the inconsistency is reported
		require.ErrorIs(t, err, entity.ErrInconsistentGame)
	})
}
