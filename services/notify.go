package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/models"
)

const defaultResendURL = "https://api.resend.com/emails"

// resendEmailRequest represents the request payload for the Resend API.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	Message string `json:"message"`
}

// ContactNotifier emails the site owner about a new contact-form
// submission through the Resend API. Notification is best-effort: the
// message itself is already persisted before a notification is attempted.
type ContactNotifier struct {
	apiKey     string
	from       string
	to         string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

type NotifierOption func(*ContactNotifier)

func WithResendEndpoint(url string) NotifierOption {
	return func(n *ContactNotifier) {
		n.endpoint = url
	}
}

func NewContactNotifier(apiKey, from, to string, opts ...NotifierOption) *ContactNotifier {
	n := &ContactNotifier{
		apiKey:     apiKey,
		from:       from,
		to:         to,
		endpoint:   defaultResendURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log.With().Str("component", "contactNotifier").Logger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enabled reports whether the notifier has the configuration it needs.
func (n *ContactNotifier) Enabled() bool {
	return n.apiKey != "" && n.from != "" && n.to != ""
}

// NotifyNewMessage sends the owner a plain-text email describing the
// submission.
func (n *ContactNotifier) NotifyNewMessage(ctx context.Context, m models.Message) error {
	if !n.Enabled() {
		return nil
	}

	payload := resendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: fmt.Sprintf("New contact message from %s", m.Name),
		Text: fmt.Sprintf("From: %s <%s>\n\n%s",
			m.Name, m.Email, m.ProjectDetails),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp resendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse resendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		n.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		n.logger.Info().Str("emailId", emailResponse.ID).Msg("Sent contact notification email")
	}

	return nil
}
