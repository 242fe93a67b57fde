// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers update reports over SMTP. Delivery is best
// effort: callers log failures and keep going, a run never fails because
// mail could not be sent.
package notify

import (
	"fmt"
	"io"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/votersspeak/congress-sync/pkg/types"
)

const defaultSubject = "Congressional Data Update Report"

// Mailer sends report notifications. The send function is a field so tests
// can capture outgoing mail without a live SMTP server.
type Mailer struct {
	cfg  types.NotifyConfig
	out  io.Writer
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewMailer builds a mailer from config. Progress lines go to out.
func NewMailer(cfg types.NotifyConfig, out io.Writer) *Mailer {
	return &Mailer{
		cfg: cfg,
		out: out,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Enabled reports whether the mailer has enough config to attempt delivery.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled()
}

// SendReport mails the report body to the configured recipients with the
// report file attached. When an HTML rendering exists it rides along as the
// HTML alternative.
func (m *Mailer) SendReport(subject, reportPath, htmlPath string) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("notifications not configured")
	}
	if subject == "" {
		subject = defaultSubject
	}

	body, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("reading report for notification: %w", err)
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = m.cfg.Recipients
	e.Subject = subject
	e.Text = body

	if htmlPath != "" {
		html, err := os.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("reading HTML report for notification: %w", err)
		}
		e.HTML = html
	}

	if _, err := e.AttachFile(reportPath); err != nil {
		return fmt.Errorf("attaching report: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Server)
	}

	err = m.send(e, addr, auth)
	// Some relays (local postfix, mailhog) advertise no AUTH extension;
	// fall back to an unauthenticated send.
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = m.send(e, addr, nil)
	}
	if err != nil {
		return fmt.Errorf("sending notification to %s: %w", strings.Join(m.cfg.Recipients, ", "), err)
	}

	fmt.Fprintf(m.out, "sent notification %q to %s (attachment %s)\n",
		subject, strings.Join(m.cfg.Recipients, ", "), filepath.Base(reportPath))
	return nil
}
