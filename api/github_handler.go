package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/errs"
)

type githubHandler struct {
	responder Responder
	logger    zerolog.Logger
	stats     StatsProvider
}

func newGithubHandler(stats StatsProvider) githubHandler {
	logger := log.With().Str("handlerName", "githubHandler").Logger()

	return githubHandler{
		responder: NewResponder(logger),
		logger:    logger,
		stats:     stats,
	}
}

// getStats serves the aggregated GitHub statistics widget. Upstream failures
// surface as a defined error payload, never as a hung or empty response.
func (h githubHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.stats == nil {
			h.responder.WriteError(w, errs.NewInternalError("github stats are not configured"))
			return
		}

		stats, err := h.stats.Stats(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to fetch github stats")
			h.responder.WriteError(w, errs.NewUpstreamError("failed to fetch github stats", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}
