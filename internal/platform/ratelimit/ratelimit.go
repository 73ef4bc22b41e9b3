package ratelimit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	metrics "github.com/corvusHold/sentinel/internal/metrics"
)

// Policy defines a simple fixed-window rate limit.
// Limit requests within Window per derived key.
type Policy struct {
	// Name is a short identifier for the limited endpoint, used for logging/metrics (e.g. "ingest:user").
	Name   string
	Window time.Duration
	Limit  int
	// Optional dynamic resolvers (if provided, override Window/Limit per request)
	WindowFunc func(echo.Context) time.Duration
	LimitFunc  func(echo.Context) int
	// Key builds the bucket key for this request.
	Key func(echo.Context) string
}

// Store abstracts a shared counter store (e.g., Redis) for fixed-window limiting.
type Store interface {
	// Allow increments the counter for the key in the given window and returns whether the request is allowed.
	// If not allowed, retryAfterSec indicates seconds until the window resets.
	Allow(ctx echo.Context, key string, limit int, window time.Duration) (allowed bool, retryAfterSec int, err error)
}

// MiddlewareWithStore enforces the Policy via a shared Store. Store errors
// fail open so a cache outage never blocks event ingestion.
func MiddlewareWithStore(p Policy, s Store) echo.MiddlewareFunc {
	if p.Window <= 0 {
		p.Window = time.Minute
	}
	if p.Limit <= 0 {
		p.Limit = 60
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "global"
			if p.Key != nil {
				key = p.Key(c)
			}
			win := p.Window
			lim := p.Limit
			if p.WindowFunc != nil {
				if w := p.WindowFunc(c); w > 0 {
					win = w
				}
			}
			if p.LimitFunc != nil {
				if l := p.LimitFunc(c); l > 0 {
					lim = l
				}
			}
			allowed, retryAfter, err := s.Allow(c, key, lim, win)
			if err != nil || allowed {
				return next(c)
			}
			src := "ip"
			if strings.Contains(key, ":realm:") {
				src = "realm"
			}
			metrics.IncRateLimitExceeded(p.Name, src)
			c.Logger().Warnf("rate limit exceeded: endpoint=%s key=%s limit=%d window=%s retry_after=%ds", p.Name, key, lim, win.String(), retryAfter)
			if retryAfter > 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			}
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		}
	}
}

// KeyRealmOrIP extracts a realm identifier from query (?realm_id) or JSON body
// {"realm_id": "..."}. Falls back to the request's real IP. Prefix allows
// per-endpoint separation.
func KeyRealmOrIP(prefix string) func(echo.Context) string {
	return func(c echo.Context) string {
		realm := c.QueryParam("realm_id")
		if realm == "" && strings.Contains(strings.ToLower(c.Request().Header.Get("Content-Type")), "application/json") {
			// Non-destructively peek request body for realm_id
			if c.Request().Body != nil {
				buf, _ := io.ReadAll(c.Request().Body)
				c.Request().Body = io.NopCloser(bytes.NewReader(buf))
				var tmp struct {
					RealmID string `json:"realm_id"`
				}
				_ = json.Unmarshal(buf, &tmp)
				if tmp.RealmID != "" {
					realm = tmp.RealmID
				}
			}
		}
		if realm == "" {
			return prefix + ":ip:" + c.RealIP()
		}
		return prefix + ":realm:" + realm
	}
}
