package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/database"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

// store persists snapshots as one leaderboards row plus one row per player.
type store struct {
	db  *database.DB
	mu  sync.Mutex
	now func() time.Time
}

// New creates a SQL-backed Store.
func New(db *database.DB) Store {
	return &store{
		db:  db,
		now: time.Now,
	}
}

// Save replaces whatever was stored under snap.Label.
func (s *store) Save(ctx context.Context, snap leaderboard.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin checkpoint transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO leaderboards (label, k_factor, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET
			k_factor = excluded.k_factor,
			updated_at = excluded.updated_at
	`), snap.Label, snap.KFactor, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.db.Rebind("DELETE FROM leaderboard_players WHERE label = ?"), snap.Label); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.db.Rebind(`
		INSERT INTO leaderboard_players (label, seq, name, wins, losses, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare player insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range snap.Players {
		if _, err := stmt.ExecContext(ctx, snap.Label, i, p.Name, p.Wins, p.Losses, p.Rating); err != nil {
			return fmt.Errorf("failed to insert player %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkpoint: %w", err)
	}
	log.Debug("Saved leaderboard checkpoint", "label", snap.Label, "players", len(snap.Players))
	return nil
}

// Load returns the snapshot stored under label, players in insertion order.
func (s *store) Load(ctx context.Context, label string) (leaderboard.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := leaderboard.Snapshot{Label: label, Players: []leaderboard.Player{}}
	err := s.db.QueryRowContext(ctx, s.db.Rebind("SELECT k_factor FROM leaderboards WHERE label = ?"), label).Scan(&snap.KFactor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leaderboard.Snapshot{}, ErrNoSnapshot
		}
		return leaderboard.Snapshot{}, fmt.Errorf("database error: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT name, wins, losses, rating
		FROM leaderboard_players
		WHERE label = ?
		ORDER BY seq
	`), label)
	if err != nil {
		return leaderboard.Snapshot{}, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p leaderboard.Player
		if err := rows.Scan(&p.Name, &p.Wins, &p.Losses, &p.Rating); err != nil {
			return leaderboard.Snapshot{}, fmt.Errorf("failed to scan player row: %w", err)
		}
		snap.Players = append(snap.Players, p)
	}
	if err := rows.Err(); err != nil {
		return leaderboard.Snapshot{}, err
	}
	return snap, nil
}
