package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/services"
)

// maxUploadBytes caps the raw multipart body before any decoding happens.
const maxUploadBytes = 8 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  ProjectStore
	assets    AssetStore
}

func newUploadHandler(projects ProjectStore, assets AssetStore) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		assets:    assets,
	}
}

// uploadProjectImage runs the image intake pipeline for a project: decode,
// scale to fit, re-encode as JPEG, then store under the project's key prefix
// and point the project's imageUrl at the stored object. Uploads for an ID
// that does not exist yet land under a temporary prefix so the client can
// attach the URL to a project it is still creating.
func (h uploadHandler) uploadProjectImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.assets == nil {
			h.responder.WriteError(w, errs.NewInternalError("asset storage is not configured"))
			return
		}

		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadBytes))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("image"))
			return
		}
		defer file.Close()

		processed, err := services.ProcessImage(file)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotAnImage):
				h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(
					header.Header.Get("Content-Type"), []string{"image/jpeg", "image/png", "image/gif", "image/webp"}))
			case errors.Is(err, services.ErrImageTooLarge):
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadBytes))
			default:
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("image processing failed", err))
			}
			return
		}

		_, getErr := h.projects.Get(r.Context(), projectID)
		projectExists := getErr == nil

		url, err := h.assets.Put(r.Context(), objectKey(projectID, projectExists), processed.ContentType(), processed.Data)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if projectExists {
			if err := h.projects.Update(r.Context(), projectID, map[string]any{"imageUrl": url}); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"imageUrl": url,
			"width":    processed.Width,
			"height":   processed.Height,
			"attached": projectExists,
		})
	}
}

// objectKey builds the storage key. Existing projects get their own prefix;
// unknown IDs get a timestamped temp prefix instead of polluting real ones.
func objectKey(projectID string, exists bool) string {
	filename := uuid.NewString() + ".jpg"
	if exists {
		return fmt.Sprintf("projects/%s/%s", projectID, filename)
	}
	return fmt.Sprintf("projects/temp_%d/%s", time.Now().UnixMilli(), filename)
}
