package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type sqliteScore struct {
	conn *sql.DB
	key  string
}

// NewSQLiteScoreRepository expects the kv_store table created by storage.SQLiteStorage.Init.
func NewSQLiteScoreRepository(conn *sql.DB, key string) ScoreRepository {
	return &sqliteScore{
		conn: conn,
		key:  key,
	}
}

func (that *sqliteScore) Get(ctx context.Context) (*entity.Score, error) {
	query := `SELECT value FROM kv_store WHERE name = ?`

	var value string

	err := that.conn.QueryRowContext(ctx, query, that.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get score: %w", err)
	}

	return decodeScore([]byte(value))
}

func (that *sqliteScore) Set(ctx context.Context, score *entity.Score) error {
	scoreJSON, err := encodeScore(score)
	if err != nil {
		return err
	}

	query := `INSERT INTO kv_store (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`

	if _, err = that.conn.ExecContext(ctx, query, that.key, string(scoreJSON)); err != nil {
		return fmt.Errorf("can't save score: %w", err)
	}

	return nil
}
