package domain

import (
	"context"
	"strings"
)

// EventType identifies a user-facing event kind. The set is open: the host
// platform may deliver kinds not listed here and they are carried through
// verbatim.
type EventType string

const (
	EventLogin          EventType = "LOGIN"
	EventLoginError     EventType = "LOGIN_ERROR"
	EventRegister       EventType = "REGISTER"
	EventRegisterError  EventType = "REGISTER_ERROR"
	EventLogout         EventType = "LOGOUT"
	EventCodeToToken    EventType = "CODE_TO_TOKEN"
	EventRefreshToken   EventType = "REFRESH_TOKEN"
	EventUpdatePassword EventType = "UPDATE_PASSWORD"
	EventUpdateProfile  EventType = "UPDATE_PROFILE"
	EventVerifyEmail    EventType = "VERIFY_EMAIL"
)

// OperationType identifies an administrative operation kind.
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
	OperationAction OperationType = "ACTION"
)

// Detail is one entry of a user event's detail list. Details keep their
// delivery order so rendering is deterministic; the wire form is a list of
// pairs rather than a JSON object for the same reason.
type Detail struct {
	Key   string
	Value string
}

// UserEvent is one user-facing occurrence delivered by the host platform.
// All identifier fields are opaque; absent values are empty strings.
// Events are immutable and consumed exactly once.
type UserEvent struct {
	Type      EventType
	RealmID   string
	ClientID  string
	UserID    string
	IPAddress string
	Error     string
	Details   []Detail
}

// AuthDetails carries the acting principal of an administrative operation.
type AuthDetails struct {
	RealmID   string
	ClientID  string
	UserID    string
	IPAddress string
}

// AdminEvent is one administrative operation delivered by the host platform.
type AdminEvent struct {
	OperationType OperationType
	AuthDetails   AuthDetails
	ResourcePath  string
	Error         string
}

// Listener is the entry point the host invokes for each event stream.
// Implementations are stateless per call and must never let an internal
// failure propagate to the caller.
type Listener interface {
	OnUserEvent(ctx context.Context, ev UserEvent)
	OnAdminEvent(ctx context.Context, ev AdminEvent, includeRepresentation bool)
	Close() error
}

// lineWriter builds a comma-separated key=value line.
type lineWriter struct {
	sb strings.Builder
}

func (w *lineWriter) pair(key, value string) {
	if w.sb.Len() > 0 {
		w.sb.WriteString(", ")
	}
	w.sb.WriteString(key)
	w.sb.WriteByte('=')
	w.sb.WriteString(value)
}

// String renders the event as a single canonical log line: the fixed fields
// in order, an error field when set, then the details in delivery order.
// A detail value containing a space is single-quoted; embedded quotes are not
// escaped, matching the established log format.
func (e UserEvent) String() string {
	var w lineWriter
	w.pair("type", string(e.Type))
	w.pair("realmId", e.RealmID)
	w.pair("clientId", e.ClientID)
	w.pair("userId", e.UserID)
	w.pair("ipAddress", e.IPAddress)
	if e.Error != "" {
		w.pair("error", e.Error)
	}
	for _, d := range e.Details {
		if strings.ContainsRune(d.Value, ' ') {
			w.pair(d.Key, "'"+d.Value+"'")
		} else {
			w.pair(d.Key, d.Value)
		}
	}
	return w.sb.String()
}

// String renders the admin event as a single canonical log line. Admin events
// carry no detail list.
func (e AdminEvent) String() string {
	var w lineWriter
	w.pair("operationType", string(e.OperationType))
	w.pair("realmId", e.AuthDetails.RealmID)
	w.pair("clientId", e.AuthDetails.ClientID)
	w.pair("userId", e.AuthDetails.UserID)
	w.pair("ipAddress", e.AuthDetails.IPAddress)
	w.pair("resourcePath", e.ResourcePath)
	if e.Error != "" {
		w.pair("error", e.Error)
	}
	return w.sb.String()
}
