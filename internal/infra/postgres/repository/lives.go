package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quiz-engine/internal/infra/postgres"
)

// LivesRepository stores life counters of players in the database.
type LivesRepository struct {
	db postgres.DBTX
}

// NewLivesRepository creates a new LivesRepository with the provided database pool.
func NewLivesRepository(db postgres.DBTX) *LivesRepository {
	return &LivesRepository{db: db}
}

// GetLives retrieves the life counter of a player.
// ok is false when the player has no counter yet.
func (r *LivesRepository) GetLives(ctx context.Context, playerID string) (int, bool, error) {
	query := `SELECT lives FROM player_lives WHERE player_id = $1`

	var lives int
	err := r.db.QueryRow(ctx, query, playerID).Scan(&lives)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get lives: %w", err)
	}

	return lives, true, nil
}

// SaveLives inserts or updates the life counter of a player.
func (r *LivesRepository) SaveLives(ctx context.Context, playerID string, lives int) error {
	query := `
		INSERT INTO player_lives (player_id, lives, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET lives = EXCLUDED.lives,
		    updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, playerID, lives); err != nil {
		return fmt.Errorf("save lives: %w", err)
	}

	return nil
}

// Delete removes the counter of a player.
func (r *LivesRepository) Delete(ctx context.Context, playerID string) error {
	query := `DELETE FROM player_lives WHERE player_id = $1`

	if _, err := r.db.Exec(ctx, query, playerID); err != nil {
		return fmt.Errorf("delete lives: %w", err)
	}

	return nil
}
