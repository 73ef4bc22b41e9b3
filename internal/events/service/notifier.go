package service

import (
	"context"

	"github.com/rs/zerolog"

	edomain "github.com/corvusHold/sentinel/internal/email/domain"
	"github.com/corvusHold/sentinel/internal/metrics"
)

// Notifier hands composed notices to the mail transport. Delivery is
// best-effort: a transport failure is logged and counted, never returned, so
// event processing is not destabilized by the mail path. No retry.
type Notifier struct {
	sender edomain.Sender
	log    zerolog.Logger
}

func NewNotifier(sender edomain.Sender, log zerolog.Logger) *Notifier {
	return &Notifier{sender: sender, log: log}
}

// Dispatch sends msg through the realm's configured transport.
func (n *Notifier) Dispatch(ctx context.Context, realmID string, msg edomain.Message) {
	if err := n.sender.Send(ctx, realmID, msg); err != nil {
		metrics.IncNotificationFailure()
		n.log.Error().Err(err).
			Str("realm_id", realmID).
			Str("to", msg.To).
			Msg("operator notification failed")
	}
}
