// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package notify sends the rendered report by mail once a backup run decides
// one is worth telling somebody about.
package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/sheetctl/sheetctl/internal/log"
)

// Mailer delivers report mail over SMTP. A Mailer with no recipient is
// disabled and silently drops sends.
type Mailer struct {
	Host     string
	Port     int
	From     string
	To       []string
	Username string
	Password string
}

func (m *Mailer) Enabled() bool {
	return m != nil && len(m.To) > 0 && m.Host != ""
}

// Send delivers one plain-text message. The body is the canonical report
// text, verbatim.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if !m.Enabled() {
		log.Debug("notify: no recipient configured, skipping")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.Host, fmt.Sprintf("%d", m.Port))

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if err := smtp.SendMail(addr, auth, m.From, m.To, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	log.Infof("notification sent to %s", strings.Join(m.To, ", "))
	return nil
}
