package domain

import "context"

// Message is a fully composed mail ready for transport. HTML is optional;
// when set the transport sends a multipart/alternative body.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender is a pluggable email sending interface supporting per-realm
// overrides. Implementations resolve transport configuration through the
// settings service with config defaults; realmID is empty for global sends.
type Sender interface {
	Send(ctx context.Context, realmID string, msg Message) error
}
