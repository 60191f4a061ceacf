package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeVerifier struct {
	uid string
	err error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: f.uid}, nil
}

func protectedEcho(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := ctxGetAdminUID(r.Context())
		require.NoError(t, err, "authenticated requests must carry the admin uid")
		w.Write([]byte(uid))
	}
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	m := newAuthMiddleware(&fakeVerifier{uid: "admin-uid"})
	handler := m.authenticate(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-uid", rec.Body.String())
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	m := newAuthMiddleware(&fakeVerifier{uid: "admin-uid"})
	handler := m.authenticate(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	m := newAuthMiddleware(&fakeVerifier{uid: "admin-uid"})
	handler := m.authenticate(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Token something")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	m := newAuthMiddleware(&fakeVerifier{err: assert.AnError})
	handler := m.authenticate(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWithoutVerifier(t *testing.T) {
	m := newAuthMiddleware(nil)
	handler := m.authenticate(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	// Burst of 2 with a negligible refill rate: the third request must be
	// throttled.
	limit := rateLimitMiddleware(rate.Every(time.Hour), 2)
	handler := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
