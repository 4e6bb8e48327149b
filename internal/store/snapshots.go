package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"corpclicker/internal/game"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPersistenceDisabled = errors.New("persistence is not configured")
	ErrSnapshotNotFound    = errors.New("snapshot not found")
)

// SnapshotStore persists whole game states as JSON documents. The state is
// opaque to the store; the round trip must be field-for-field exact, so the
// document is the State's own JSON encoding, untouched.
type SnapshotStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// New returns a store over the given pool. A nil pool yields a disabled
// store whose every call reports ErrPersistenceDisabled.
func New(pool *pgxpool.Pool, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{pool: pool, log: logger}
}

// Enabled reports whether a database is wired up.
func (s *SnapshotStore) Enabled() bool {
	return s != nil && s.pool != nil
}

// Init creates the snapshot table if missing.
func (s *SnapshotStore) Init(ctx context.Context) error {
	if !s.Enabled() {
		return ErrPersistenceDisabled
	}
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_snapshots (
			id         UUID PRIMARY KEY,
			session_id TEXT NOT NULL,
			state      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("init snapshots table: %w", err)
	}
	return nil
}

// Save writes one full-state snapshot and returns its id.
func (s *SnapshotStore) Save(ctx context.Context, sessionID string, st *game.State) (string, error) {
	if !s.Enabled() {
		return "", ErrPersistenceDisabled
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	id := uuid.NewString()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO game_snapshots (id, session_id, state) VALUES ($1, $2, $3)`,
		id, sessionID, raw)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	s.log.Info("snapshot saved", "snapshot_id", id, "session_id", sessionID)
	return id, nil
}

// Load reads a snapshot back into a State.
func (s *SnapshotStore) Load(ctx context.Context, snapshotID string) (*game.State, error) {
	if !s.Enabled() {
		return nil, ErrPersistenceDisabled
	}
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM game_snapshots WHERE id = $1`, snapshotID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var st game.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &st, nil
}
