package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/preset"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(s scanner) (*preset.Preset, error) {
	var (
		p   preset.Preset
		raw []byte
	)

	if err := s.Scan(&p.ID, &p.Name, &raw, &p.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &p.Settings); err != nil {
		return nil, fmt.Errorf("decoding preset %s: %w", p.ID, err)
	}

	return &p, nil
}

func (s *Store) CreatePreset(ctx context.Context, p *preset.Preset) error {
	raw, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("encoding preset: %w", err)
	}

	query := `
		INSERT INTO mapping_presets (id, name, config, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	err = s.db.QueryRowContext(ctx, query, p.ID, p.Name, raw).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return preset.ErrDuplicateName
		}

		return fmt.Errorf("creating preset: %w", err)
	}

	return nil
}

func (s *Store) GetPreset(ctx context.Context, id uuid.UUID) (*preset.Preset, error) {
	query := `SELECT id, name, config, created_at FROM mapping_presets WHERE id = $1`

	p, err := scanPreset(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, preset.ErrNotFound
		}

		return nil, fmt.Errorf("getting preset: %w", err)
	}

	return p, nil
}

func (s *Store) ListPresets(ctx context.Context) ([]*preset.Preset, error) {
	query := `SELECT id, name, config, created_at FROM mapping_presets ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	defer rows.Close()

	var presets []*preset.Preset

	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning preset: %w", err)
		}

		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presets: %w", err)
	}

	return presets, nil
}

func (s *Store) DeletePreset(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mapping_presets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}

	if n == 0 {
		return preset.ErrNotFound
	}

	return nil
}
