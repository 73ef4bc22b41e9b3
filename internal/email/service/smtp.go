package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/corvusHold/sentinel/internal/config"
	edomain "github.com/corvusHold/sentinel/internal/email/domain"
	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
)

// Ensure SMTP implements domain.Sender
var _ edomain.Sender = (*SMTP)(nil)

type SMTP struct {
	cfg      config.Config
	settings sdomain.Service
}

func NewSMTP(settings sdomain.Service, cfg config.Config) *SMTP {
	return &SMTP{settings: settings, cfg: cfg}
}

func (s *SMTP) Send(ctx context.Context, realmID string, msg edomain.Message) error {
	var scope *string
	if realmID != "" {
		scope = &realmID
	}
	host, _ := s.settings.GetString(ctx, sdomain.KeySMTPHost, scope, s.cfg.SMTPHost)
	from, _ := s.settings.GetString(ctx, sdomain.KeySMTPFrom, scope, s.cfg.SMTPFrom)
	username, _ := s.settings.GetString(ctx, sdomain.KeySMTPUsername, scope, s.cfg.SMTPUsername)
	password, _ := s.settings.GetString(ctx, sdomain.KeySMTPPassword, scope, s.cfg.SMTPPassword)
	port, _ := s.settings.GetInt(ctx, sdomain.KeySMTPPort, scope, s.cfg.SMTPPort)

	addr := fmt.Sprintf("%s:%d", host, port)
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return smtp.SendMail(addr, auth, from, []string{msg.To}, buildMIME(from, msg))
}

// buildMIME assembles the raw message. Plain text only unless msg.HTML is
// set, in which case a multipart/alternative body carries both parts.
func buildMIME(from string, msg edomain.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\n", from, msg.To, msg.Subject)
	if msg.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(msg.Text)
		b.WriteString("\r\n")
		return []byte(b.String())
	}
	const boundary = "sentinel-alt-boundary"
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, msg.Text)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, msg.HTML)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
