// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Results records final outcomes of finished games. It is optional and
// write-only: live rooms never read anything back, so a restart simply
// starts with empty rooms (state persistence is out of scope). A nil
// Results drops everything.
type Results struct {
	pool *pgxpool.Pool
	log  *logrus.Logger
}

// Connect creates a pgx pool from the given URL and verifies connectivity.
func Connect(ctx context.Context, url string, logger *logrus.Logger) (*Results, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return &Results{pool: pool, log: logger}, nil
}

// RecordGame inserts one finished game and its per-player scores in a single
// transaction. Called fire-and-forget from the game-end path; errors are
// logged, never surfaced to players.
func (d *Results) RecordGame(ctx context.Context, room string, reason string, scores map[string]int) {
	if d == nil || d.pool == nil {
		return
	}

	err := pgx.BeginTxFunc(ctx, d.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var gameID int64
		insertGame := `
			INSERT INTO games (room_name, end_reason, finished_at)
			VALUES ($1, $2, now())
			RETURNING id
		`
		if err := tx.QueryRow(ctx, insertGame, room, reason).Scan(&gameID); err != nil {
			return err
		}

		insertResult := `
			INSERT INTO game_results (game_id, player_id, hand_score)
			VALUES ($1, $2, $3)
		`
		for playerID, score := range scores {
			if _, err := tx.Exec(ctx, insertResult, gameID, playerID, score); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		d.log.Warnf("database: failed to record game results for room %q: %v", room, err)
	}
}

// Close releases the pool.
func (d *Results) Close() {
	if d != nil && d.pool != nil {
		d.pool.Close()
	}
}
