package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type redisScore struct {
	client *redis.Client
	key    string
}

func NewRedisScoreRepository(client *redis.Client, key string) ScoreRepository {
	return &redisScore{
		client: client,
		key:    key,
	}
}

func (that *redisScore) Get(ctx context.Context) (*entity.Score, error) {
	response, err := that.client.Get(ctx, that.key).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrScoreNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return decodeScore([]byte(response))
}

func (that *redisScore) Set(ctx context.Context, score *entity.Score) error {
	scoreJSON, err := encodeScore(score)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, that.key, scoreJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set score: %w", err)
	}

	return nil
}
