package controller

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/corvusHold/sentinel/internal/config"
	evdomain "github.com/corvusHold/sentinel/internal/events/domain"
	rl "github.com/corvusHold/sentinel/internal/platform/ratelimit"
	"github.com/corvusHold/sentinel/internal/platform/validation"
	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
)

// Controller exposes the two ingest endpoints the host platform delivers
// events through. Delivery is at-least-once with no ordering guarantee; the
// controller acknowledges with 202 once the listener has run.
type Controller struct {
	listener evdomain.Listener
	jwt      echo.MiddlewareFunc
	rlUser   echo.MiddlewareFunc
	rlAdmin  echo.MiddlewareFunc
}

func New(listener evdomain.Listener) *Controller {
	return &Controller{listener: listener}
}

// WithJWT protects the ingest endpoints with the platform bearer token.
func (h *Controller) WithJWT(mw echo.MiddlewareFunc) *Controller {
	h.jwt = mw
	return h
}

// WithRateLimit enforces a per-realm (or per-IP) fixed window on both
// endpoints, tunable at runtime through settings.
func (h *Controller) WithRateLimit(settings sdomain.Service, store rl.Store, cfg config.Config) *Controller {
	limitFunc := func(c echo.Context) int {
		n, _ := settings.GetInt(c.Request().Context(), sdomain.KeyRLIngestLimit, nil, cfg.IngestRateLimit)
		return n
	}
	windowFunc := func(c echo.Context) time.Duration {
		d, _ := settings.GetDuration(c.Request().Context(), sdomain.KeyRLIngestWindow, nil, cfg.IngestRateWindow)
		return d
	}
	h.rlUser = rl.MiddlewareWithStore(rl.Policy{
		Name: "ingest:user", Limit: cfg.IngestRateLimit, Window: cfg.IngestRateWindow,
		LimitFunc: limitFunc, WindowFunc: windowFunc, Key: rl.KeyRealmOrIP("ingest:user"),
	}, store)
	h.rlAdmin = rl.MiddlewareWithStore(rl.Policy{
		Name: "ingest:admin", Limit: cfg.IngestRateLimit, Window: cfg.IngestRateWindow,
		LimitFunc: limitFunc, WindowFunc: windowFunc, Key: rl.KeyRealmOrIP("ingest:admin"),
	}, store)
	return h
}

func (h *Controller) Register(e *echo.Echo) {
	g := e.Group("/v1")
	h.RegisterV1(g)
}

func (h *Controller) RegisterV1(g *echo.Group) {
	userMW := h.middlewares(h.rlUser)
	adminMW := h.middlewares(h.rlAdmin)
	g.POST("/events", h.onUserEvent, userMW...)
	g.POST("/admin-events", h.onAdminEvent, adminMW...)
}

func (h *Controller) middlewares(limiter echo.MiddlewareFunc) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{}
	if h.jwt != nil {
		mws = append(mws, h.jwt)
	}
	if limiter != nil {
		mws = append(mws, limiter)
	}
	return mws
}

type detailReq struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type userEventReq struct {
	Type      string      `json:"type" validate:"required"`
	RealmID   string      `json:"realm_id"`
	ClientID  string      `json:"client_id"`
	UserID    string      `json:"user_id"`
	IPAddress string      `json:"ip_address"`
	Error     string      `json:"error"`
	Details   []detailReq `json:"details" validate:"dive"`
}

type adminEventReq struct {
	OperationType string `json:"operation_type" validate:"required"`
	RealmID       string `json:"realm_id"`
	ClientID      string `json:"client_id"`
	UserID        string `json:"user_id"`
	IPAddress     string `json:"ip_address"`
	ResourcePath  string `json:"resource_path"`
	Error         string `json:"error"`
}

type receiptResp struct {
	ReceiptID string `json:"receipt_id"`
}

func (h *Controller) onUserEvent(c echo.Context) error {
	var req userEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	ev := evdomain.UserEvent{
		Type:      evdomain.EventType(req.Type),
		RealmID:   req.RealmID,
		ClientID:  req.ClientID,
		UserID:    req.UserID,
		IPAddress: req.IPAddress,
		Error:     req.Error,
	}
	for _, d := range req.Details {
		ev.Details = append(ev.Details, evdomain.Detail{Key: d.Key, Value: d.Value})
	}
	h.listener.OnUserEvent(c.Request().Context(), ev)
	return c.JSON(http.StatusAccepted, receiptResp{ReceiptID: uuid.NewString()})
}

func (h *Controller) onAdminEvent(c echo.Context) error {
	var req adminEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
	}
	includeRepresentation := c.QueryParam("include_representation") == "true"
	ev := evdomain.AdminEvent{
		OperationType: evdomain.OperationType(req.OperationType),
		AuthDetails: evdomain.AuthDetails{
			RealmID:   req.RealmID,
			ClientID:  req.ClientID,
			UserID:    req.UserID,
			IPAddress: req.IPAddress,
		},
		ResourcePath: req.ResourcePath,
		Error:        req.Error,
	}
	h.listener.OnAdminEvent(c.Request().Context(), ev, includeRepresentation)
	return c.JSON(http.StatusAccepted, receiptResp{ReceiptID: uuid.NewString()})
}
