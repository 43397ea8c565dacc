package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type memoryScore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryScoreRepository keeps the encoded record in process memory.
// seed is returned as-is by the first Get, nil means nothing is stored yet.
func NewMemoryScoreRepository(seed []byte) ScoreRepository {
	return &memoryScore{
		data: seed,
	}
}

func (that *memoryScore) Get(_ context.Context) (*entity.Score, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.data == nil {
		return nil, apperror.ErrScoreNotFound
	}

	return decodeScore(that.data)
}

func (that *memoryScore) Set(_ context.Context, score *entity.Score) error {
	scoreJSON, err := encodeScore(score)
	if err != nil {
		return err
	}

	that.mu.Lock()
	that.data = scoreJSON
	that.mu.Unlock()

	return nil
}
