package service

import (
	"context"
	"strings"

	"github.com/corvusHold/sentinel/internal/config"
	edomain "github.com/corvusHold/sentinel/internal/email/domain"
	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
)

// Ensure Router implements domain.Sender
var _ edomain.Sender = (*Router)(nil)

// Router selects the mail provider per realm via settings, defaulting to the
// config-level provider.
type Router struct {
	cfg      config.Config
	settings sdomain.Service
	smtp     edomain.Sender
	brevo    edomain.Sender
}

func NewRouter(settings sdomain.Service, cfg config.Config) *Router {
	return &Router{cfg: cfg, settings: settings, smtp: NewSMTP(settings, cfg), brevo: NewBrevo(settings, cfg)}
}

func (r *Router) Send(ctx context.Context, realmID string, msg edomain.Message) error {
	var scope *string
	if realmID != "" {
		scope = &realmID
	}
	prov, _ := r.settings.GetString(ctx, sdomain.KeyEmailProvider, scope, r.cfg.EmailProvider)
	switch strings.ToLower(prov) {
	case "brevo":
		return r.brevo.Send(ctx, realmID, msg)
	default:
		return r.smtp.Send(ctx, realmID, msg)
	}
}
