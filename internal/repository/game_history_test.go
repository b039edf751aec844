package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const gameHistorySchema = `
CREATE TABLE IF NOT EXISTS game_history (
	id BIGSERIAL PRIMARY KEY,
	game_id UUID NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	update_count INT NOT NULL,
	players INT NOT NULL,
	winner_role TEXT NOT NULL
)`

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := NewDB(context.Background(), dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)
	if _, err := pool.Exec(context.Background(), gameHistorySchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return pool
}

func TestGameHistoryCreateRecent(t *testing.T) {
	pool := testPool(t)
	repo := NewGameHistoryRepository(pool)
	ctx := context.Background()

	rec := &GameRecord{
		GameID:      uuid.New(),
		StartedAt:   time.Now().Add(-10 * time.Minute),
		FinishedAt:  time.Now(),
		UpdateCount: 240,
		Players:     4,
		WinnerRole:  "sheriff",
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create record: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected assigned id")
	}

	recent, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) == 0 {
		t.Fatal("expected at least one record")
	}
	found := false
	for _, r := range recent {
		if r.GameID == rec.GameID {
			found = true
			if r.UpdateCount != 240 || r.Players != 4 || r.WinnerRole != "sheriff" {
				t.Errorf("unexpected record: %+v", r)
			}
		}
	}
	if !found {
		t.Errorf("created game %s not returned by Recent", rec.GameID)
	}
}
