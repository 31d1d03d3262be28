package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/covercall/calc-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
// Inputs are stored as a JSONB document and repaired field-by-field on read,
// so a schema drift in the stored document degrades to defaults instead of
// failing the load.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	inputs, err := json.Marshal(snap.Inputs)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.ID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, inputs, updated_at)
		 VALUES ($1, $2::JSONB, $3)
		 ON CONFLICT (id) DO UPDATE SET inputs = $2::JSONB, updated_at = $3`,
		snap.ID, string(inputs), snap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	var snap model.Snapshot
	var inputs string

	err := s.pool.QueryRow(ctx,
		`SELECT id, inputs::TEXT, updated_at FROM snapshots WHERE id = $1`, id).
		Scan(&snap.ID, &inputs, &snap.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", id, err)
	}

	snap.Inputs = model.RepairInputs([]byte(inputs))
	return &snap, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, inputs::TEXT, updated_at FROM snapshots ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var inputs string
		if err := rows.Scan(&snap.ID, &inputs, &snap.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Inputs = model.RepairInputs([]byte(inputs))
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *PostgresStore) DeleteSnapshot(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}
