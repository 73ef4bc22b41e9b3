package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a realm or account does not exist.
var ErrNotFound = errors.New("not found")

// Realm is a tenant boundary in the identity platform. Sentinel only needs
// its identifier; everything else about the realm is opaque.
type Realm struct {
	ID   string
	Name string
}

// Account is a user record referenced by (realm, user id). Sentinel reads the
// email address and toggles the enabled flag; all other fields stay with the
// identity store.
type Account struct {
	ID      string
	RealmID string
	Email   string
	Enabled bool
}

// Store abstracts the identity platform's account storage.
type Store interface {
	// RealmByID resolves a realm; ErrNotFound when absent.
	RealmByID(ctx context.Context, id string) (Realm, error)
	// AccountByID resolves an account within a realm; ErrNotFound when absent.
	AccountByID(ctx context.Context, realm Realm, userID string) (Account, error)
	// SetEnabled toggles the account's enabled flag. Idempotent.
	SetEnabled(ctx context.Context, account Account, enabled bool) error
}
