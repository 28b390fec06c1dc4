package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts per-recipient responses and records every request.
type fakeProvider struct {
	mu       sync.Mutex
	requests []Message
	// remaining scripted status codes per recipient; empty/exhausted means 200.
	script map[string][]int
}

func (p *fakeProvider) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		require.Len(t, msg.To, 1, "one recipient per request")

		p.mu.Lock()
		p.requests = append(p.requests, msg)
		to := msg.To[0]
		var status int
		if codes := p.script[to]; len(codes) > 0 {
			status = codes[0]
			p.script[to] = codes[1:]
		}
		p.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case status == 0:
			json.NewEncoder(w).Encode(map[string]string{"id": "msg-1"})
		case status == http.StatusTooManyRequests:
			w.WriteHeader(status)
			w.Write([]byte(`{"statusCode":429,"name":"rate_limit_exceeded","message":"Too many requests"}`))
		default:
			w.WriteHeader(status)
			w.Write([]byte(`{"name":"validation_error","message":"rejected"}`))
		}
	}
}

func (p *fakeProvider) requestCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func newTestDispatcher(server *httptest.Server) *Dispatcher {
	d := NewDispatcher(newTestClient(server), "reports@tepnology.com")
	// Keep real pacing out of unit tests.
	d.sendSpacing = time.Millisecond
	d.retryWait = time.Millisecond
	return d
}

func TestDeliverPartialFailure(t *testing.T) {
	provider := &fakeProvider{script: map[string][]int{
		"r2@example.com": {http.StatusTooManyRequests}, // 429 then success on retry
		"r3@example.com": {http.StatusUnprocessableEntity},
	}}
	server := httptest.NewServer(provider.handler(t))
	defer server.Close()

	d := newTestDispatcher(server)

	summary, err := d.Deliver(context.Background(),
		[]string{"r1@example.com", "r2@example.com", "r3@example.com"},
		"SAM Daily Report", "<p>body</p>", "report.xlsx", []byte("workbook"))
	require.NoError(t, err)

	assert.False(t, summary.OK)
	assert.Equal(t, []string{"r1@example.com", "r2@example.com"}, summary.Successes)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "r3@example.com", summary.Failures[0].To)
	assert.Equal(t, http.StatusUnprocessableEntity, summary.Failures[0].Error.StatusCode)
	assert.Equal(t, "validation_error", summary.Failures[0].Error.Name)

	// r1: 1 send, r2: 2 (429 + retry), r3: 1 (non-429 is terminal immediately).
	assert.Equal(t, 4, provider.requestCount())
}

func TestDeliverSecondRateLimitIsTerminal(t *testing.T) {
	provider := &fakeProvider{script: map[string][]int{
		"r1@example.com": {http.StatusTooManyRequests, http.StatusTooManyRequests},
	}}
	server := httptest.NewServer(provider.handler(t))
	defer server.Close()

	d := newTestDispatcher(server)

	summary, err := d.Deliver(context.Background(),
		[]string{"r1@example.com"},
		"SAM Daily Report", "<p>body</p>", "report.xlsx", []byte("workbook"))
	require.NoError(t, err)

	assert.False(t, summary.OK)
	assert.Empty(t, summary.Successes)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, http.StatusTooManyRequests, summary.Failures[0].Error.StatusCode)

	// Exactly one retry, never more.
	assert.Equal(t, 2, provider.requestCount())
}

func TestDeliverAllSucceed(t *testing.T) {
	provider := &fakeProvider{script: map[string][]int{}}
	server := httptest.NewServer(provider.handler(t))
	defer server.Close()

	d := newTestDispatcher(server)

	summary, err := d.Deliver(context.Background(),
		[]string{"r1@example.com", "r2@example.com"},
		"SAM Daily Report", "<p>body</p>", "report.xlsx", []byte("workbook"))
	require.NoError(t, err)

	assert.True(t, summary.OK)
	assert.Equal(t, []string{"r1@example.com", "r2@example.com"}, summary.Successes)
	assert.Empty(t, summary.Failures)
}

func TestDeliverEncodesAttachmentOnce(t *testing.T) {
	provider := &fakeProvider{script: map[string][]int{}}
	server := httptest.NewServer(provider.handler(t))
	defer server.Close()

	d := newTestDispatcher(server)
	payload := []byte("workbook-bytes")

	_, err := d.Deliver(context.Background(),
		[]string{"r1@example.com", "r2@example.com"},
		"SAM Daily Report", "<p>body</p>", "report.xlsx", payload)
	require.NoError(t, err)

	want := base64.StdEncoding.EncodeToString(payload)
	require.Len(t, provider.requests, 2)
	for _, msg := range provider.requests {
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "report.xlsx", msg.Attachments[0].Filename)
		assert.Equal(t, want, msg.Attachments[0].Content)
	}
}

func TestDeliverEmptyRecipientList(t *testing.T) {
	provider := &fakeProvider{script: map[string][]int{}}
	server := httptest.NewServer(provider.handler(t))
	defer server.Close()

	d := newTestDispatcher(server)

	summary, err := d.Deliver(context.Background(), nil,
		"SAM Daily Report", "<p>body</p>", "report.xlsx", []byte("workbook"))
	require.ErrorIs(t, err, ErrNoRecipients)
	assert.Nil(t, summary)
	assert.Zero(t, provider.requestCount(), "no send attempts on configuration error")
}

func TestDeliverPacesSends(t *testing.T) {
	provider := &fakeProvider{script: map[string][]int{}}
	server := httptest.NewServer(provider.handler(t))
	defer server.Close()

	d := NewDispatcher(newTestClient(server), "reports@tepnology.com")
	d.sendSpacing = 60 * time.Millisecond
	d.retryWait = time.Millisecond

	start := time.Now()
	_, err := d.Deliver(context.Background(),
		[]string{"r1@example.com", "r2@example.com", "r3@example.com"},
		"SAM Daily Report", "<p>body</p>", "report.xlsx", []byte("workbook"))
	require.NoError(t, err)

	// Two inter-send waits for three recipients.
	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
}
