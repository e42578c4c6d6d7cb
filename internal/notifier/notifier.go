// Package notifier delivers down and recovery alerts over email and SMS.
// Delivery is fire-and-forget: transport failures are logged and
// swallowed so the polling loop never depends on a send succeeding.
package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"sitewatch/internal/probe"
	"sitewatch/internal/storage"
)

// EmailTransport sends one message to a set of recipients.
type EmailTransport interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// SMSTransport sends one text message to a single number.
type SMSTransport interface {
	Send(ctx context.Context, to, message string) error
}

// Dispatcher fans alerts out to every configured recipient. Either
// transport may be nil, in which case that channel is silently skipped.
type Dispatcher struct {
	email  EmailTransport
	sms    SMSTransport
	logger *slog.Logger
}

func NewDispatcher(email EmailTransport, sms SMSTransport, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{email: email, sms: sms, logger: logger}
}

// SendDownAlert notifies all recipients that target has crossed the
// failure threshold. failureCount is the consecutive-failure streak at
// the moment the alert fired.
func (d *Dispatcher) SendDownAlert(ctx context.Context, target *storage.Target, result *probe.Result, settings *storage.AlertSettings, failureCount int) {
	subject := fmt.Sprintf("[sitewatch] DOWN: %s", target.URL)
	body := buildAlertBody("Down", target, result, fmt.Sprintf("Consecutive failures: %d", failureCount))
	sms := fmt.Sprintf("sitewatch: %s is DOWN (%s, %d consecutive failures)",
		target.URL, describeStatus(result), failureCount)

	d.dispatch(ctx, settings, subject, body, sms)
}

// SendRecoveryAlert notifies all recipients that target passed a check
// after being in the alerting state.
func (d *Dispatcher) SendRecoveryAlert(ctx context.Context, target *storage.Target, result *probe.Result, settings *storage.AlertSettings) {
	subject := fmt.Sprintf("[sitewatch] RECOVERED: %s", target.URL)
	body := buildAlertBody("Recovered", target, result, fmt.Sprintf("Response time: %d ms", result.ResponseTimeMs))
	sms := fmt.Sprintf("sitewatch: %s has RECOVERED (%s)", target.URL, describeStatus(result))

	d.dispatch(ctx, settings, subject, body, sms)
}

// dispatch sends to email and SMS recipients independently: a failure on
// one channel or recipient never blocks the others.
func (d *Dispatcher) dispatch(ctx context.Context, settings *storage.AlertSettings, subject, body, smsText string) {
	emails := settings.EmailRecipients()
	if d.email != nil && len(emails) > 0 {
		if err := d.email.Send(ctx, emails, subject, body); err != nil {
			d.logger.Error("email alert failed", "subject", subject, "error", err)
		} else {
			d.logger.Info("email alert sent", "subject", subject, "recipients", len(emails))
		}
	}

	if d.sms == nil {
		return
	}
	for _, number := range settings.SMSNumbers {
		if number == "" {
			continue
		}
		if err := d.sms.Send(ctx, number, smsText); err != nil {
			d.logger.Error("sms alert failed", "to", number, "error", err)
		} else {
			d.logger.Info("sms alert sent", "to", number)
		}
	}
}

func buildAlertBody(label string, target *storage.Target, result *probe.Result, extra string) string {
	name := target.Name
	if name == "" {
		name = target.URL
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html><body style="font-family: sans-serif">
<h2>%s: %s</h2>
<table cellpadding="4">
<tr><td><b>URL</b></td><td>%s</td></tr>
<tr><td><b>Status</b></td><td>%s</td></tr>
<tr><td><b>Time</b></td><td>%s</td></tr>
<tr><td><b>Detail</b></td><td>%s</td></tr>
</table>
</body></html>`,
		label, html.EscapeString(name),
		html.EscapeString(target.URL),
		html.EscapeString(describeStatus(result)),
		time.Now().UTC().Format(time.RFC3339),
		html.EscapeString(extra),
	)
}

func describeStatus(result *probe.Result) string {
	if result.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d", result.StatusCode)
	}
	if result.Err != "" {
		return result.Err
	}
	return "no response"
}
