package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	apps, err := h.services.ApplicationRegistryService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listApplications").Msg("error listing applications")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, apps)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	applicationID := chi.URLParam(r, "applicationID")

	app, err := h.services.ApplicationRegistryService.Get(r.Context(), applicationID)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.getApplication").
			Str("application_id", applicationID).
			Msg("error getting application")
		writeError(w, r, err)
		return
	}
	if app == nil {
		writeJSON(w, r, http.StatusNotFound, models.ErrorResponse{
			Error: fmt.Sprintf("application %q not found", applicationID),
		})
		return
	}

	writeJSON(w, r, http.StatusOK, app)
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var app models.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		log.Err(err).Str("func", "*Handler.createApplication").Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON was passed"})
		return
	}

	created, err := h.services.ApplicationRegistryService.Create(r.Context(), app)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.createApplication").
			Str("application_id", app.ApplicationID).
			Msg("error creating application")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) updateApplication(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	applicationID := chi.URLParam(r, "applicationID")

	var update models.ApplicationUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateApplication").Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON was passed"})
		return
	}

	updated, err := h.services.ApplicationRegistryService.Update(r.Context(), applicationID, update)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.updateApplication").
			Str("application_id", applicationID).
			Msg("error updating application")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) archiveApplication(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *Handler) unarchiveApplication(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *Handler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	log := logger.FromRequest(r)
	applicationID := chi.URLParam(r, "applicationID")

	var err error
	if archived {
		err = h.services.ApplicationRegistryService.Archive(r.Context(), applicationID)
	} else {
		err = h.services.ApplicationRegistryService.Unarchive(r.Context(), applicationID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.setArchived").
			Str("application_id", applicationID).
			Bool("archived", archived).
			Msg("error changing archival state")
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createNamedConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	applicationID := chi.URLParam(r, "applicationID")

	var request models.NamedConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createNamedConfig").Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON was passed"})
		return
	}
	if request.Name == "" {
		writeJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Error: "configuration name is required"})
		return
	}

	updated, err := h.services.ApplicationRegistryService.CreateNamedConfig(
		r.Context(), applicationID, request.Name, request.Data, request.Versions)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.createNamedConfig").
			Str("application_id", applicationID).
			Str("config_name", request.Name).
			Msg("error creating named config")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, updated)
}

func (h *Handler) updateNamedConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	applicationID := chi.URLParam(r, "applicationID")
	name := chi.URLParam(r, "name")

	var request models.NamedConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.updateNamedConfig").Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON was passed"})
		return
	}

	updated, err := h.services.ApplicationRegistryService.UpdateNamedConfig(
		r.Context(), applicationID, name, request.Data, request.Versions)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.updateNamedConfig").
			Str("application_id", applicationID).
			Str("config_name", name).
			Msg("error updating named config")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) deleteNamedConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	applicationID := chi.URLParam(r, "applicationID")
	name := chi.URLParam(r, "name")

	updated, err := h.services.ApplicationRegistryService.DeleteNamedConfig(r.Context(), applicationID, name)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.deleteNamedConfig").
			Str("application_id", applicationID).
			Str("config_name", name).
			Msg("error deleting named config")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}
