package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      SignInService
}

func newAuthHandler(auth SignInService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
	}
}

// LoginRequest is the email/password credential pair for the admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login exchanges credentials for an ID token. Every credential-shaped
// rejection maps to the same 401 so callers cannot probe which emails exist.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.auth == nil {
			h.responder.WriteError(w, errs.NewInternalError("auth service is not configured"))
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		result, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
				return
			}
			h.logger.Error().Err(err).Msg("sign-in request failed")
			h.responder.WriteError(w, errs.NewUpstreamError("sign-in failed", err))
			return
		}

		h.responder.WriteJSON(w, result)
	}
}
