package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/testing/suite"
)

const testScoreKey = "tic-tac-toe-score"

// scoreRepoFactory returns a fresh repository and a hook writing raw bytes under its key.
type scoreRepoFactory func(t *testing.T) (context.Context, ScoreRepository, func(raw string))

func runScoreRepositoryTests(t *testing.T, newRepo scoreRepoFactory) {
	t.Helper()

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, repo, _ := newRepo(t)

		// When: Get is called on an empty store
		score, err := repo.Get(ctx)

		// Then: an ErrScoreNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrScoreNotFound)
		assert.Nil(t, score)
	})

	t.Run("Set_Then_Get_RoundTrips", func(t *testing.T) {
		ctx, repo, _ := newRepo(t)

		// Given: a saved score
		saved := &entity.Score{X: 2, O: 1, Draws: 0}
		require.NoError(t, repo.Set(ctx, saved))

		// When: Get is called
		loaded, err := repo.Get(ctx)

		// Then: the same counters come back
		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("Set_Overwrites", func(t *testing.T) {
		ctx, repo, _ := newRepo(t)

		// Given: two consecutive saves
		require.NoError(t, repo.Set(ctx, &entity.Score{X: 1}))
		require.NoError(t, repo.Set(ctx, &entity.Score{X: 1, Draws: 4}))

		// When: Get is called
		loaded, err := repo.Get(ctx)

		// Then: the latest record wins
		require.NoError(t, err)
		assert.Equal(t, &entity.Score{X: 1, Draws: 4}, loaded)
	})

	t.Run("Get_StoredFormat", func(t *testing.T) {
		ctx, repo, writeRaw := newRepo(t)

		// Given: a record written in the persisted JSON format
		writeRaw(`{"x":3,"o":5,"draws":7}`)

		// When: Get is called
		loaded, err := repo.Get(ctx)

		// Then: the counters are decoded
		require.NoError(t, err)
		assert.Equal(t, &entity.Score{X: 3, O: 5, Draws: 7}, loaded)
	})

	t.Run("Get_Malformed", func(t *testing.T) {
		ctx, repo, writeRaw := newRepo(t)

		// Given: a record that is not JSON
		writeRaw(`{"x":`)

		// When: Get is called
		_, err := repo.Get(ctx)

		// Then: an ErrMalformedScore error should be returned
		require.ErrorIs(t, err, apperror.ErrMalformedScore)
	})

	t.Run("Get_NegativeCounter", func(t *testing.T) {
		ctx, repo, writeRaw := newRepo(t)

		// Given: a record with a negative counter
		writeRaw(`{"x":-1,"o":0,"draws":0}`)

		// When: Get is called
		_, err := repo.Get(ctx)

		// Then: an ErrMalformedScore error should be returned
		require.ErrorIs(t, err, apperror.ErrMalformedScore)
	})
}

func TestMemoryScoreRepository(t *testing.T) {
	runScoreRepositoryTests(t, func(t *testing.T) (context.Context, ScoreRepository, func(string)) {
		t.Helper()

		repo := &memoryScore{}

		return context.Background(), repo, func(raw string) {
			repo.data = []byte(raw)
		}
	})
}

func TestSQLiteScoreRepository(t *testing.T) {
	runScoreRepositoryTests(t, func(t *testing.T) (context.Context, ScoreRepository, func(string)) {
		t.Helper()

		ctx, st := suite.NewSQLite(t)

		repo := NewSQLiteScoreRepository(st.SQLite.Connection, testScoreKey)

		return ctx, repo, func(raw string) {
			_, err := st.SQLite.Connection.ExecContext(ctx,
				`INSERT INTO kv_store (name, value) VALUES (?, ?)`, testScoreKey, raw)
			require.NoError(t, err)
		}
	})
}

func TestRedisScoreRepository(t *testing.T) {
	runScoreRepositoryTests(t, func(t *testing.T) (context.Context, ScoreRepository, func(string)) {
		t.Helper()

		ctx, st := suite.NewRedis(t)

		repo := NewRedisScoreRepository(st.Redis, testScoreKey)

		return ctx, repo, func(raw string) {
			require.NoError(t, st.Redis.Set(ctx, testScoreKey, raw, 0).Err())
		}
	})
}

func TestNewMemoryScoreRepository_Seed(t *testing.T) {
	// Given: a memory repository seeded with a stored record
	repo := NewMemoryScoreRepository([]byte(`{"x":0,"o":2,"draws":1}`))

	// When: Get is called
	score, err := repo.Get(context.Background())

	// Then: the seed is decoded
	require.NoError(t, err)
	assert.Equal(t, &entity.Score{O: 2, Draws: 1}, score)
}
