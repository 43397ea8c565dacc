package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// ScoreRepository persists the single score record under a fixed key.
type ScoreRepository interface {
	Get(ctx context.Context) (*entity.Score, error)
	Set(ctx context.Context, score *entity.Score) error
}

func encodeScore(score *entity.Score) ([]byte, error) {
	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return nil, fmt.Errorf("could not marshal score: %w", err)
	}

	return scoreJSON, nil
}

func decodeScore(data []byte) (*entity.Score, error) {
	var score entity.Score
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedScore, err)
	}

	if err := score.Validate(); err != nil {
		return nil, err
	}

	return &score, nil
}
