package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameRecord is one finished game as stored in game_history.
type GameRecord struct {
	ID          int64
	GameID      uuid.UUID
	StartedAt   time.Time
	FinishedAt  time.Time
	UpdateCount int
	Players     int
	WinnerRole  string
}

// GameHistoryRepository persists summaries of finished games.
type GameHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewGameHistoryRepository creates a repository backed by the given pool.
func NewGameHistoryRepository(pool *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{pool: pool}
}

// Create inserts a finished game record and fills in its assigned id.
func (r *GameHistoryRepository) Create(ctx context.Context, rec *GameRecord) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO game_history (game_id, started_at, finished_at, update_count, players, winner_role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		rec.GameID, rec.StartedAt, rec.FinishedAt, rec.UpdateCount, rec.Players, rec.WinnerRole,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("inserting game record: %w", err)
	}
	return nil
}

// Recent returns the most recently finished games, newest first.
func (r *GameHistoryRepository) Recent(ctx context.Context, limit int) ([]GameRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, game_id, started_at, finished_at, update_count, players, winner_role
		FROM game_history
		ORDER BY finished_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying game history: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var rec GameRecord
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.StartedAt, &rec.FinishedAt,
			&rec.UpdateCount, &rec.Players, &rec.WinnerRole); err != nil {
			return nil, fmt.Errorf("scanning game record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game history: %w", err)
	}
	return records, nil
}
