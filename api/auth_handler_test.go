package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexvr/portfolio-backend/services"
)

func newAuthRouter(auth SignInService) *chi.Mux {
	h := newAuthHandler(auth)
	r := chi.NewRouter()
	r.Post("/auth/login", h.login())
	return r
}

func TestLoginSuccess(t *testing.T) {
	signIn := &fakeSignIn{result: &services.SignInResult{
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    "3600",
		Email:        "admin@example.com",
	}}
	router := newAuthRouter(signIn)

	rec := doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "admin@example.com", Password: "hunter2"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[services.SignInResult](t, rec)
	assert.Equal(t, "id-token", body.IDToken)
	assert.Equal(t, "admin@example.com", signIn.email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	signIn := &fakeSignIn{err: services.ErrInvalidCredentials}
	router := newAuthRouter(signIn)

	rec := doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "admin@example.com", Password: "wrong"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "invalid email or password", body.Error)
}

func TestLoginMissingFields(t *testing.T) {
	router := newAuthRouter(&fakeSignIn{})

	rec := doJSON(t, router, http.MethodPost, "/auth/login", LoginRequest{Email: "a@b.co"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password", decodeBody[ErrorResponse](t, rec).Field)

	rec = doJSON(t, router, http.MethodPost, "/auth/login", LoginRequest{Password: "pw"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decodeBody[ErrorResponse](t, rec).Field)
}

func TestLoginUpstreamFailure(t *testing.T) {
	signIn := &fakeSignIn{err: assert.AnError}
	router := newAuthRouter(signIn)

	rec := doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "admin@example.com", Password: "pw"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLoginNotConfigured(t *testing.T) {
	router := newAuthRouter(nil)

	rec := doJSON(t, router, http.MethodPost, "/auth/login",
		LoginRequest{Email: "a@b.co", Password: "pw"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
