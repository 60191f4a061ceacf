package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/models"
	"github.com/alexvr/portfolio-backend/orderlist"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  ProjectStore
	assets    AssetStore
}

func newProjectHandler(projects ProjectStore, assets AssetStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		assets:    assets,
	}
}

// ProjectCollection represents the ordered project list.
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// getAllProjects retrieves all projects ordered ascending by their order field.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, err := h.projects.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project, appending it to the end of the
// display order: the new project's order equals the pre-creation count.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateProjectInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Order = len(existing)

		id, err := h.projects.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.projects.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updateProject merges the given fields into an existing project.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		if _, err := h.projects.Get(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		delete(fields, "id")
		delete(fields, "createdAt")
		delete(fields, "updatedAt")

		if err := h.projects.Update(r.Context(), projectID, fields); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.projects.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject deletes a project by ID and cleans up its stored images.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		if _, err := h.projects.Get(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The record is gone either way; orphaned images only cost storage.
		if h.assets != nil {
			if err := h.assets.DeletePrefix(r.Context(), "projects/"+projectID+"/"); err != nil {
				h.logger.Warn().Err(err).Str("projectID", projectID).
					Msg("failed to clean up stored project images")
			}
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// ReorderRequest is the full locally-ordered sequence of project IDs.
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// reorderProjects persists a drag-reordered sequence. The submitted IDs must
// be a permutation of the persisted set; the commit itself is atomic, so a
// failure leaves every order value untouched and the order stays uncommitted.
func (h projectHandler) reorderProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		persisted, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reordered, err := applyIDOrder(persisted, req.IDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		controller := orderlist.New(h.projects)
		controller.Initialize(persisted)
		controller.Reorder(reordered)

		if err := controller.Commit(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"status": "success",
			"dirty":  controller.Dirty(),
		})
	}
}

// applyIDOrder rearranges persisted into the order given by ids, rejecting
// any sequence that is not a permutation of the persisted ID set.
func applyIDOrder(persisted []models.Project, ids []string) ([]models.Project, error) {
	if len(ids) != len(persisted) {
		return nil, errs.NewBadRequestErrorWithDetails("invalid reorder sequence",
			"sequence length does not match the number of projects")
	}

	byID := make(map[string]models.Project, len(persisted))
	for _, p := range persisted {
		byID[p.ID] = p
	}

	out := make([]models.Project, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, errs.NewBadRequestErrorWithDetails("invalid reorder sequence",
				"duplicate project id: "+id)
		}
		seen[id] = true

		p, ok := byID[id]
		if !ok {
			return nil, errs.NewBadRequestErrorWithDetails("invalid reorder sequence",
				"unknown project id: "+id)
		}
		out = append(out, p)
	}
	return out, nil
}

func validateProjectInput(input models.ProjectInput) error {
	if input.Title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if input.Description == "" {
		return errs.NewMissingRequiredFieldError("description")
	}
	if input.GithubURL != "" && !isURL(input.GithubURL) {
		return errs.NewInvalidFieldError("githubUrl", "must be a valid URL")
	}
	if input.LiveURL != "" && !isURL(input.LiveURL) {
		return errs.NewInvalidFieldError("liveUrl", "must be a valid URL")
	}
	return nil
}

func isURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}
