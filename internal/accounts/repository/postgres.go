package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/corvusHold/sentinel/internal/accounts/domain"
)

// Ensure PostgresStore implements domain.Store
var _ domain.Store = (*PostgresStore)(nil)

// PostgresStore reads and mutates realm and account rows in the platform
// database.
type PostgresStore struct{ pg *pgxpool.Pool }

func New(pg *pgxpool.Pool) *PostgresStore { return &PostgresStore{pg: pg} }

func (s *PostgresStore) RealmByID(ctx context.Context, id string) (domain.Realm, error) {
	var r domain.Realm
	err := s.pg.QueryRow(ctx,
		`SELECT id, name FROM realms WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Realm{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Realm{}, fmt.Errorf("realm lookup: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) AccountByID(ctx context.Context, realm domain.Realm, userID string) (domain.Account, error) {
	var a domain.Account
	err := s.pg.QueryRow(ctx,
		`SELECT id, realm_id, email, enabled FROM accounts WHERE realm_id = $1 AND id = $2`,
		realm.ID, userID,
	).Scan(&a.ID, &a.RealmID, &a.Email, &a.Enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("account lookup: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) SetEnabled(ctx context.Context, account domain.Account, enabled bool) error {
	_, err := s.pg.Exec(ctx,
		`UPDATE accounts SET enabled = $1, updated_at = now() WHERE realm_id = $2 AND id = $3`,
		enabled, account.RealmID, account.ID,
	)
	if err != nil {
		return fmt.Errorf("account update: %w", err)
	}
	return nil
}
