package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	adomain "github.com/corvusHold/sentinel/internal/accounts/domain"
	"github.com/corvusHold/sentinel/internal/config"
	edomain "github.com/corvusHold/sentinel/internal/email/domain"
	evdomain "github.com/corvusHold/sentinel/internal/events/domain"
	"github.com/corvusHold/sentinel/internal/metrics"
	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
)

const registrationSubject = "New self-service registration"

// Reactor implements the registration approval gate: a freshly registered
// account is disabled and an operator is notified with a console deep link to
// re-enable it. The reaction is a side effect of event observation only; it
// never influences the registration outcome and never surfaces a failure to
// the listener.
type Reactor struct {
	accounts adomain.Store
	settings sdomain.Service
	notifier *Notifier
	cfg      config.Config
	log      zerolog.Logger
}

func NewReactor(accounts adomain.Store, settings sdomain.Service, notifier *Notifier, cfg config.Config, log zerolog.Logger) *Reactor {
	return &Reactor{accounts: accounts, settings: settings, notifier: notifier, cfg: cfg, log: log}
}

// OnRegistration runs the reaction for one REGISTER event. A realm or account
// that cannot be resolved aborts the reaction; the miss is visible only at
// debug level and in metrics, matching the platform's behavior of not letting
// the reaction affect registration.
func (r *Reactor) OnRegistration(ctx context.Context, ev evdomain.UserEvent) {
	realm, err := r.accounts.RealmByID(ctx, ev.RealmID)
	if err != nil {
		metrics.IncRegistrationLookupMiss("realm")
		r.log.Debug().Err(err).Str("realm_id", ev.RealmID).Msg("registration reaction: realm not resolved")
		return
	}
	account, err := r.accounts.AccountByID(ctx, realm, ev.UserID)
	if err != nil {
		metrics.IncRegistrationLookupMiss("account")
		r.log.Debug().Err(err).Str("realm_id", ev.RealmID).Str("user_id", ev.UserID).Msg("registration reaction: account not resolved")
		return
	}

	r.log.Info().Str("realm_id", ev.RealmID).Str("user_id", ev.UserID).Msg("new user has registered")

	if err := r.accounts.SetEnabled(ctx, account, false); err != nil {
		// The store owns consistency of the toggle; record and carry on so
		// the operator still gets notified.
		r.log.Error().Err(err).Str("user_id", account.ID).Msg("registration reaction: disable failed")
	} else {
		metrics.IncRegistrationDisabled()
	}

	r.notifier.Dispatch(ctx, ev.RealmID, r.compose(ctx, ev, account))
}

func (r *Reactor) compose(ctx context.Context, ev evdomain.UserEvent, account adomain.Account) edomain.Message {
	scope := ev.RealmID
	operator, _ := r.settings.GetString(ctx, sdomain.KeyOperatorEmail, &scope, r.cfg.OperatorEmail)
	consoleBase, _ := r.settings.GetString(ctx, sdomain.KeyConsoleBaseURL, &scope, r.cfg.ConsoleBaseURL)
	link := fmt.Sprintf("%s/%s/users/%s", consoleBase, ev.RealmID, ev.UserID)

	text := fmt.Sprintf("Hi,\n\na new user with the email %s has just registered.\n"+
		"The account was disabled pending approval. To enable it go to %s\n\n"+
		"This is an automatic notice.", account.Email, link)
	html := fmt.Sprintf("<h3>Hi,</h3>"+
		"<p>a new user with the email %s has just registered.</p>"+
		"<p>The account was disabled pending approval. To enable it go to <a href=%q>the user configuration</a>.</p>"+
		"<p>This is an automatic notice.</p>", account.Email, link)

	return edomain.Message{To: operator, Subject: registrationSubject, Text: text, HTML: html}
}
