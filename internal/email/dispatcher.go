package email

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/tepnology/sam-report/internal/pkg/logger"
)

// ErrNoRecipients is returned when the parsed distribution list is empty.
// It fails the run before any send attempt.
var ErrNoRecipients = errors.New("email: recipient list is empty")

const (
	// interSendDelay keeps the sustained send rate under the provider's
	// documented 2 req/s cap.
	interSendDelay = 550 * time.Millisecond
	// rateLimitBackoff is the wait before the single retry after a 429.
	rateLimitBackoff = 1100 * time.Millisecond
)

// DeliveryError is the structured failure recorded for one recipient.
type DeliveryError struct {
	Message    string `json:"message"`
	Name       string `json:"name,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// DeliveryFailure pairs a recipient with its terminal failure.
type DeliveryFailure struct {
	To    string        `json:"to"`
	Error DeliveryError `json:"error"`
}

// DeliverySummary is the per-recipient outcome of one delivery run. OK is
// true only when no recipient failed.
type DeliverySummary struct {
	OK        bool              `json:"ok"`
	Successes []string          `json:"successes"`
	Failures  []DeliveryFailure `json:"failures,omitempty"`
}

// Dispatcher sends one email per recipient, sequentially and rate-paced.
// Sends are deliberately not concurrent: the provider's per-second cap is
// shared across all recipients of a run, and parallel sends would cascade
// into rate-limit failures.
type Dispatcher struct {
	client *Client
	from   string

	// Overridable in tests; production keeps the provider-cap pacing.
	sendSpacing time.Duration
	retryWait   time.Duration
}

// NewDispatcher creates a dispatcher sending from the given address.
func NewDispatcher(client *Client, from string) *Dispatcher {
	return &Dispatcher{
		client:      client,
		from:        from,
		sendSpacing: interSendDelay,
		retryWait:   rateLimitBackoff,
	}
}

// Deliver sends the report to every recipient in order. The attachment bytes
// are base64-encoded once and reused. Per-recipient failures are recorded and
// do not stop the remaining sends; only an empty recipient list aborts.
func (d *Dispatcher) Deliver(ctx context.Context, recipients []string, subject, htmlBody, filename string, attachment []byte) (*DeliverySummary, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	att := Attachment{
		Filename: filename,
		Content:  base64.StdEncoding.EncodeToString(attachment),
	}

	summary := &DeliverySummary{Successes: make([]string, 0, len(recipients))}

	for i, to := range recipients {
		if i > 0 {
			if err := sleep(ctx, d.sendSpacing); err != nil {
				return nil, err
			}
		}

		err := d.sendOne(ctx, to, subject, htmlBody, att)
		if isRateLimited(err) {
			logger.Warn("send rate limited, backing off once", "recipient", to)
			if serr := sleep(ctx, d.retryWait); serr != nil {
				return nil, serr
			}
			err = d.sendOne(ctx, to, subject, htmlBody, att)
		}

		if err != nil {
			logger.Error("report email failed", "recipient", to, "error", err.Error())
			summary.Failures = append(summary.Failures, DeliveryFailure{
				To:    to,
				Error: classify(err),
			})
			continue
		}

		logger.Info("report email sent", "recipient", to)
		summary.Successes = append(summary.Successes, to)
	}

	summary.OK = len(summary.Failures) == 0
	return summary, nil
}

func (d *Dispatcher) sendOne(ctx context.Context, to, subject, htmlBody string, att Attachment) error {
	_, err := d.client.Send(ctx, Message{
		From:        d.from,
		To:          []string{to},
		Subject:     subject,
		HTML:        htmlBody,
		Attachments: []Attachment{att},
	})
	return err
}

// isRateLimited reports whether err is a provider 429 rejection.
func isRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// classify shapes any send error into the summary's structured form.
func classify(err error) DeliveryError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return DeliveryError{
			Message:    apiErr.Message,
			Name:       apiErr.Name,
			StatusCode: apiErr.StatusCode,
		}
	}
	return DeliveryError{Message: err.Error(), Name: "request_failed"}
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
