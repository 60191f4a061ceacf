package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/models"
)

type messageHandler struct {
	responder Responder
	logger    zerolog.Logger
	messages  MessageStore
	notifier  MessageNotifier
}

func newMessageHandler(messages MessageStore, notifier MessageNotifier) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		messages:  messages,
		notifier:  notifier,
	}
}

// createMessage stores a contact form submission. Messages are write-once:
// there is no public read or edit path, only the admin listing.
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.MessageInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode message request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateMessageInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := h.messages.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Notification is best effort: the message is already persisted, so a
		// mail failure must not surface to the visitor.
		if h.notifier != nil {
			go h.notify(models.Message{
				ID:             id,
				Name:           input.Name,
				Email:          input.Email,
				ProjectDetails: input.ProjectDetails,
			})
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"id":     id,
			"status": "success",
		})
	}
}

func (h messageHandler) notify(m models.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := h.notifier.NotifyNewMessage(ctx, m); err != nil {
		h.logger.Warn().Err(err).Str("messageID", m.ID).
			Msg("failed to send new message notification")
	}
}

// getAllMessages lists stored messages, newest first.
func (h messageHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.messages.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"messages": messages,
			"total":    len(messages),
		})
	}
}

// deleteMessage removes a single message by ID.
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID := chi.URLParam(r, "messageID")
		if messageID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing messageID"))
			return
		}

		if _, err := h.messages.Get(r.Context(), messageID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.messages.Delete(r.Context(), messageID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "message deleted successfully",
		})
	}
}

func validateMessageInput(input models.MessageInput) error {
	if input.Name == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if input.Email == "" {
		return errs.NewMissingRequiredFieldError("email")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return errs.NewInvalidFieldError("email", "must be a valid email address")
	}
	if input.ProjectDetails == "" {
		return errs.NewMissingRequiredFieldError("projectDetails")
	}
	return nil
}
