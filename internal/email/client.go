// Package email delivers the encoded report to the distribution list through
// a transactional-email provider, pacing sends under the provider's rate cap.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tepnology/sam-report/internal/config"
)

// Client is a transactional-email API client (Resend-compatible contract).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new email API client. No retry wrapper here: the
// dispatcher owns the retry contract for sends.
func NewClient(cfg config.EmailConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Attachment is one base64-encoded file on an outbound message.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

// Message is one outbound email. The dispatcher always sends to exactly one
// recipient per message.
type Message struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// APIError is a structured rejection from the email provider.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("email api error %d (%s): %s", e.StatusCode, e.Name, e.Message)
}

// Send submits one message. A non-2xx response comes back as *APIError with
// the provider's error body parsed when possible.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Best effort: fill name/message from the provider's error body.
		_ = json.Unmarshal(body, apiErr)
		if apiErr.Message == "" {
			apiErr.Message = string(body)
		}
		if apiErr.Name == "" {
			apiErr.Name = http.StatusText(resp.StatusCode)
		}
		return "", apiErr
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing send response: %w", err)
	}
	return result.ID, nil
}
