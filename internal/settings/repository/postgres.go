package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores app settings with an optional realm scope. A
// realm-scoped row shadows the global row for the same key.
type PostgresRepository struct{ pg *pgxpool.Pool }

func New(pg *pgxpool.Pool) *PostgresRepository { return &PostgresRepository{pg: pg} }

func (r *PostgresRepository) Get(ctx context.Context, key string, realmID *string) (string, bool, error) {
	if realmID != nil {
		var v string
		err := r.pg.QueryRow(ctx,
			`SELECT value FROM app_settings WHERE key = $1 AND realm_id = $2`, key, *realmID,
		).Scan(&v)
		if err == nil {
			return v, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", false, fmt.Errorf("setting lookup: %w", err)
		}
	}
	var v string
	err := r.pg.QueryRow(ctx,
		`SELECT value FROM app_settings WHERE key = $1 AND realm_id IS NULL`, key,
	).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("setting lookup: %w", err)
	}
	return v, true, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, key string, realmID *string, value string, secret bool) error {
	_, err := r.pg.Exec(ctx,
		`INSERT INTO app_settings (id, realm_id, key, value, is_secret)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (key, COALESCE(realm_id, '')) DO UPDATE SET value = EXCLUDED.value, is_secret = EXCLUDED.is_secret`,
		uuid.NewString(), realmID, key, value, secret,
	)
	if err != nil {
		return fmt.Errorf("setting upsert: %w", err)
	}
	return nil
}
