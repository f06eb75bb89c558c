// Copyright (c) 2026 Kritika. All rights reserved.

// Package mailer provides outbound email delivery over SMTP.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. Domain services depend
// on the Sender interface and never touch SMTP details directly, which keeps
// delivery swappable in tests and in environments without a mail relay.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"kritika/internal/platform/config"
)

// Sender delivers a single plain-text message to one recipient.
type Sender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// LogMailer writes messages to the structured log instead of delivering them.
// Used in development when no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// New returns an SMTP-backed Sender when an SMTP host is configured,
// otherwise a log-only Sender suitable for local development.
func New(cfg *config.Config, logger *slog.Logger) Sender {
	if cfg.SMTPHost == "" {
		logger.Warn("smtp_not_configured_using_log_mailer")
		return &LogMailer{logger: logger}
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		logger:   logger,
	}
}

// Send implements Sender.
func (m *SMTPMailer) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := email.NewEmail()
	msg.From = m.from
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	tlsConfig := &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	}

	// Pin the delivery mode to the port instead of probing, so a
	// misconfigured relay fails loudly rather than downgrading.
	var err error
	switch m.port {
	case 465:
		err = msg.SendWithTLS(addr, auth, tlsConfig)
	case 587:
		err = msg.SendWithStartTLS(addr, auth, tlsConfig)
	case 25:
		err = msg.Send(addr, auth)
	default:
		err = fmt.Errorf("mailer: unsupported smtp port %d", m.port)
	}

	if err != nil {
		return fmt.Errorf("mailer: send to %s failed: %w", to, err)
	}

	m.logger.Info("mail_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}

// Send implements Sender.
func (m *LogMailer) Send(_ context.Context, to string, subject string, body string) error {
	m.logger.Info("mail_logged",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
