package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/corvusHold/sentinel/internal/config"
	edomain "github.com/corvusHold/sentinel/internal/email/domain"
	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
)

func TestBrevo_SendsPayload(t *testing.T) {
	cfg := config.Config{BrevoAPIKey: "key-1", BrevoSender: "no-reply@example.com"}
	b := NewBrevo(mockSettings{}, cfg)

	httpmock.ActivateNonDefault(b.http)
	defer httpmock.DeactivateAndReset()

	var got brevoEmail
	httpmock.RegisterResponder(http.MethodPost, "https://api.brevo.com/v3/smtp/email",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("api-key") != "key-1" {
				t.Errorf("api-key header = %q", req.Header.Get("api-key"))
			}
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			return httpmock.NewStringResponse(http.StatusCreated, `{}`), nil
		})

	msg := edomain.Message{To: "ops@example.com", Subject: "sub", Text: "text", HTML: "<p>html</p>"}
	if err := b.Send(context.Background(), "master", msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Subject != "sub" || got.TextContent != "text" || got.HTMLContent != "<p>html</p>" {
		t.Errorf("payload = %+v", got)
	}
	if len(got.To) != 1 || got.To[0]["email"] != "ops@example.com" {
		t.Errorf("recipient = %v", got.To)
	}
}

func TestBrevo_FailureStatus(t *testing.T) {
	cfg := config.Config{BrevoAPIKey: "key-1", BrevoSender: "no-reply@example.com"}
	b := NewBrevo(mockSettings{}, cfg)

	httpmock.ActivateNonDefault(b.http)
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodPost, "https://api.brevo.com/v3/smtp/email",
		httpmock.NewStringResponder(http.StatusBadGateway, `{}`))

	if err := b.Send(context.Background(), "master", edomain.Message{To: "ops@example.com"}); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestBrevo_NotConfigured(t *testing.T) {
	b := NewBrevo(mockSettings{}, config.Config{})
	if err := b.Send(context.Background(), "master", edomain.Message{To: "ops@example.com"}); err == nil {
		t.Fatal("expected error when api key and sender are unset")
	}
}

func TestBrevo_RealmOverrides(t *testing.T) {
	ms := mockSettings{vals: map[string]string{
		sdomain.KeyBrevoAPIKey: "realm-key",
		sdomain.KeyBrevoSender: "realm@example.com",
	}}
	b := NewBrevo(ms, config.Config{})

	httpmock.ActivateNonDefault(b.http)
	defer httpmock.DeactivateAndReset()

	var got brevoEmail
	httpmock.RegisterResponder(http.MethodPost, "https://api.brevo.com/v3/smtp/email",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("api-key") != "realm-key" {
				t.Errorf("api-key header = %q", req.Header.Get("api-key"))
			}
			_ = json.NewDecoder(req.Body).Decode(&got)
			return httpmock.NewStringResponse(http.StatusCreated, `{}`), nil
		})

	if err := b.Send(context.Background(), "tenant-a", edomain.Message{To: "ops@example.com"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Sender["email"] != "realm@example.com" {
		t.Errorf("sender = %v", got.Sender)
	}
}
