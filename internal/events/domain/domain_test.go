package domain

import (
	"strings"
	"testing"
)

func TestUserEventString_FieldOrder(t *testing.T) {
	ev := UserEvent{
		Type:      EventLogin,
		RealmID:   "master",
		ClientID:  "account-console",
		UserID:    "u-123",
		IPAddress: "10.0.0.7",
	}
	got := ev.String()
	want := "type=LOGIN, realmId=master, clientId=account-console, userId=u-123, ipAddress=10.0.0.7"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestUserEventString_AbsentFieldsRenderEmpty(t *testing.T) {
	ev := UserEvent{Type: EventLogout, RealmID: "master"}
	got := ev.String()
	want := "type=LOGOUT, realmId=master, clientId=, userId=, ipAddress="
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestUserEventString_ErrorAppended(t *testing.T) {
	ev := UserEvent{
		Type:    EventLoginError,
		RealmID: "master",
		Error:   "invalid_user_credentials",
	}
	got := ev.String()
	if !strings.HasSuffix(got, ", error=invalid_user_credentials") {
		t.Errorf("expected trailing error field, got %q", got)
	}
}

func TestUserEventString_DetailQuoting(t *testing.T) {
	ev := UserEvent{
		Type:    EventRegister,
		RealmID: "master",
		Details: []Detail{
			{Key: "auth_method", Value: "openid-connect"},
			{Key: "redirect_uri", Value: "http://localhost/cb"},
			{Key: "custom_note", Value: "first time user"},
			{Key: "username", Value: ""},
		},
	}
	got := ev.String()
	for _, want := range []string{
		", auth_method=openid-connect",
		", redirect_uri=http://localhost/cb",
		", custom_note='first time user'",
		", username=",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("line %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "\n") {
		t.Errorf("line must not contain a newline: %q", got)
	}
}

func TestUserEventString_DetailOrderPreserved(t *testing.T) {
	ev := UserEvent{
		Type: EventLogin,
		Details: []Detail{
			{Key: "zz", Value: "1"},
			{Key: "aa", Value: "2"},
			{Key: "mm", Value: "3"},
		},
	}
	got := ev.String()
	zz, aa, mm := strings.Index(got, "zz="), strings.Index(got, "aa="), strings.Index(got, "mm=")
	if !(zz < aa && aa < mm) {
		t.Errorf("details must render in delivery order, got %q", got)
	}
}

// A detail value with both a space and an embedded quote renders unescaped.
// That is the established format; changing it would break downstream parsers.
func TestUserEventString_EmbeddedQuoteUnescaped(t *testing.T) {
	ev := UserEvent{
		Type:    EventLogin,
		Details: []Detail{{Key: "note", Value: "it's here"}},
	}
	got := ev.String()
	if !strings.Contains(got, "note='it's here'") {
		t.Errorf("got %q", got)
	}
}

func TestAdminEventString(t *testing.T) {
	ev := AdminEvent{
		OperationType: OperationCreate,
		AuthDetails: AuthDetails{
			RealmID:   "master",
			ClientID:  "admin-cli",
			UserID:    "admin-1",
			IPAddress: "10.0.0.1",
		},
		ResourcePath: "users/u-123",
	}
	got := ev.String()
	want := "operationType=CREATE, realmId=master, clientId=admin-cli, userId=admin-1, ipAddress=10.0.0.1, resourcePath=users/u-123"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestAdminEventString_ErrorAppended(t *testing.T) {
	ev := AdminEvent{OperationType: OperationDelete, ResourcePath: "users/u-9", Error: "forbidden"}
	if got := ev.String(); !strings.HasSuffix(got, ", error=forbidden") {
		t.Errorf("expected trailing error field, got %q", got)
	}
}

func TestExclusions(t *testing.T) {
	x := NewExclusions([]string{"LOGIN", "CODE_TO_TOKEN"}, []string{"UPDATE"})

	if x.ProcessEvent(EventLogin) {
		t.Error("LOGIN should be excluded")
	}
	if !x.ProcessEvent(EventRegister) {
		t.Error("REGISTER should be processed")
	}
	if x.ProcessOperation(OperationUpdate) {
		t.Error("UPDATE should be excluded")
	}
	if !x.ProcessOperation(OperationCreate) {
		t.Error("CREATE should be processed")
	}
}

func TestExclusions_EmptySuppressesNothing(t *testing.T) {
	x := NewExclusions(nil, nil)
	if !x.ProcessEvent(EventLogin) || !x.ProcessOperation(OperationDelete) {
		t.Error("empty exclusion sets must process everything")
	}
}
