package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/alexvr/portfolio-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError renders an error as JSON. ApiErr instances keep their status
// code and details; store errors are translated from their failure kind so
// clients see what class of failure happened instead of a collapsed 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		response := ErrorResponse{
			Error:  apiErr.Error(),
			Status: "error",
			Field:  apiErr.Field,
		}
		if apiErr.Details != "" {
			response.Details = apiErr.Details
		}
		if apiErr.Cause != nil {
			response.Cause = apiErr.GetFullError()
		}

		w.WriteHeader(apiErr.StatusCode)
		r.WriteJSON(w, response)
		return
	}

	var storeErr *errs.StoreErr
	if errors.As(err, &storeErr) {
		r.logger.Error().Err(err).Str("kind", string(storeErr.Kind)).Msg("store operation failed")

		w.WriteHeader(statusForKind(storeErr.Kind))
		r.WriteJSON(w, ErrorResponse{
			Error:  storeErr.Error(),
			Status: "error",
			Kind:   string(storeErr.Kind),
		})
		return
	}

	// Unexpected errors collapse to a generic internal error.
	r.logger.Error().Msg(err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	r.WriteJSON(w, ErrorResponse{
		Error:   "Internal Server Error",
		Status:  "error",
		Details: err.Error(),
	})
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindPermission:
		return http.StatusForbidden
	case errs.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
