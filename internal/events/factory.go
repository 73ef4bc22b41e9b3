package events

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	accountsrepo "github.com/corvusHold/sentinel/internal/accounts/repository"
	"github.com/corvusHold/sentinel/internal/config"
	emailsvc "github.com/corvusHold/sentinel/internal/email/service"
	ctrl "github.com/corvusHold/sentinel/internal/events/controller"
	evdomain "github.com/corvusHold/sentinel/internal/events/domain"
	evsvc "github.com/corvusHold/sentinel/internal/events/service"
	"github.com/corvusHold/sentinel/internal/logger"
	"github.com/corvusHold/sentinel/internal/platform/authn"
	rl "github.com/corvusHold/sentinel/internal/platform/ratelimit"
	srepo "github.com/corvusHold/sentinel/internal/settings/repository"
	ssvc "github.com/corvusHold/sentinel/internal/settings/service"
)

// Register wires the events module and registers the ingest routes. It
// returns the listener so the caller can close it on shutdown.
func Register(e *echo.Echo, pg *pgxpool.Pool, rc *redis.Client, cfg config.Config) *evsvc.Listener {
	log := logger.New(cfg.AppEnv)

	settings := ssvc.New(srepo.New(pg))
	accounts := accountsrepo.New(pg)
	sender := emailsvc.NewRouter(settings, cfg)
	notifier := evsvc.NewNotifier(sender, log)
	reactor := evsvc.NewReactor(accounts, settings, notifier, cfg, log)

	exclusions := evdomain.NewExclusions(cfg.ExcludedEvents, cfg.ExcludedAdminOperations)
	listener := evsvc.NewListener(exclusions, reactor, log)

	c := ctrl.New(listener).
		WithJWT(authn.NewJWT(cfg)).
		WithRateLimit(settings, rl.NewRedisStore(rc), cfg)
	c.Register(e)
	return listener
}
