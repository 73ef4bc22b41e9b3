package domain

import (
	"context"
	"time"
)

// Service provides typed access to application settings with per-realm
// override. realmID is nil for global values.
type Service interface {
	GetString(ctx context.Context, key string, realmID *string, def string) (string, error)
	GetDuration(ctx context.Context, key string, realmID *string, def time.Duration) (time.Duration, error)
	GetInt(ctx context.Context, key string, realmID *string, def int) (int, error)
}

// Repository abstracts storage of app settings.
type Repository interface {
	// Get returns (value, found, err) for an exact key and optional realm.
	Get(ctx context.Context, key string, realmID *string) (string, bool, error)
	// Upsert stores a key for an optional realm.
	Upsert(ctx context.Context, key string, realmID *string, value string, secret bool) error
}

// Common keys
const (
	KeyEmailProvider = "email.provider"
	KeySMTPHost      = "email.smtp.host"
	KeySMTPPort      = "email.smtp.port"
	KeySMTPUsername  = "email.smtp.username"
	KeySMTPPassword  = "email.smtp.password"
	KeySMTPFrom      = "email.smtp.from"
	KeyBrevoAPIKey   = "email.brevo.api_key"
	KeyBrevoSender   = "email.brevo.sender"

	// KeyOperatorEmail overrides the operator recipient for registration
	// notices on a per-realm basis.
	KeyOperatorEmail = "notify.operator_email"
	// KeyConsoleBaseURL overrides the admin console base used in deep links.
	KeyConsoleBaseURL = "notify.console_base_url"

	// Ingest rate limiting keys. Windows use Go duration strings (e.g. "1m").
	KeyRLIngestLimit  = "ingest.ratelimit.limit"
	KeyRLIngestWindow = "ingest.ratelimit.window"
)
