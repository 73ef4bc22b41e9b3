package service

import (
	"context"

	"github.com/rs/zerolog"

	evdomain "github.com/corvusHold/sentinel/internal/events/domain"
	"github.com/corvusHold/sentinel/internal/metrics"
)

// Ensure Listener implements domain.Listener
var _ evdomain.Listener = (*Listener)(nil)

// Listener is the entry point for both event streams. Each call is an
// independent transaction: filter, render one log line, and for REGISTER
// events run the registration reaction. The only state carried across calls
// is the read-only exclusion configuration, so concurrent delivery needs no
// locking.
type Listener struct {
	exclusions evdomain.Exclusions
	reactor    *Reactor
	log        zerolog.Logger
}

func NewListener(exclusions evdomain.Exclusions, reactor *Reactor, log zerolog.Logger) *Listener {
	return &Listener{exclusions: exclusions, reactor: reactor, log: log}
}

// OnUserEvent processes one user event. Excluded kinds are dropped before
// any rendering or side effect. Reaction failures never reach the caller.
func (l *Listener) OnUserEvent(ctx context.Context, ev evdomain.UserEvent) {
	if !l.exclusions.ProcessEvent(ev.Type) {
		metrics.IncEventSuppressed("user")
		return
	}
	l.log.Info().Str("stream", "user").Msg(ev.String())
	metrics.IncEventProcessed("user")

	if ev.Type == evdomain.EventRegister && l.reactor != nil {
		l.reactor.OnRegistration(ctx, ev)
	}
}

// OnAdminEvent processes one admin event. includeRepresentation is accepted
// for host compatibility; the representation payload is never rendered.
func (l *Listener) OnAdminEvent(ctx context.Context, ev evdomain.AdminEvent, includeRepresentation bool) {
	if !l.exclusions.ProcessOperation(ev.OperationType) {
		metrics.IncEventSuppressed("admin")
		return
	}
	l.log.Info().Str("stream", "admin").Msg(ev.String())
	metrics.IncEventProcessed("admin")
}

// Close releases nothing; the listener holds no resources.
func (l *Listener) Close() error { return nil }
