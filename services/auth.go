package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// ErrInvalidCredentials covers every credential-shaped rejection from the
// identity provider (unknown user, wrong password, disabled account).
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService performs the email/password credential check against the
// Firebase Identity Toolkit endpoint. Token verification on subsequent
// requests is handled by the admin middleware, not here.
type AuthService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type AuthOption func(*AuthService)

func WithIdentityToolkitURL(url string) AuthOption {
	return func(s *AuthService) {
		s.endpoint = url
	}
}

func NewAuthService(apiKey string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		apiKey:     apiKey,
		endpoint:   defaultIdentityToolkitURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignInResult carries the session tokens returned on a successful login.
type SignInResult struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	Email        string `json:"email"`
}

// SignIn exchanges an email/password pair for a Firebase ID token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if s.apiKey == "" {
		return nil, errors.New("identity toolkit api key not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sign-in payload: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", s.endpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil &&
			isCredentialRejection(errorResp.Error.Message) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity toolkit error: status %d", resp.StatusCode)
	}

	var result SignInResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}
	return &result, nil
}

func isCredentialRejection(message string) bool {
	switch {
	case strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "USER_DISABLED"),
		strings.HasPrefix(message, "INVALID_EMAIL"):
		return true
	}
	return false
}
