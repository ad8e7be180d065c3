package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

// getConfig serves the public lookup endpoint
// GET /config/{applicationID}/{version}.
//
// The Cache-Control max-age differs by resolution outcome: responses backed
// by a named configuration are short-lived (a new named config or version
// binding must take effect quickly), while default-config responses may be
// cached long.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	applicationID := chi.URLParam(r, "applicationID")
	version := chi.URLParam(r, "version")

	response, err := h.services.ConfigResolverService.GetConfig(r.Context(), applicationID, version)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.getConfig").
			Str("application_id", applicationID).
			Str("version", version).
			Msg("error resolving config")
		writeError(w, r, err)
		return
	}
	if response == nil {
		writeJSON(w, r, http.StatusNotFound, models.ErrorResponse{
			Error: fmt.Sprintf("no config for application %q", applicationID),
		})
		return
	}

	maxAge := h.cache.NamedMaxAge
	if response.ConfigSource == models.ConfigSourceDefault {
		maxAge = h.cache.DefaultMaxAge
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))

	writeJSON(w, r, http.StatusOK, response)
}

// healthz reports process liveness and the running service version. It
// deliberately does not probe the storage backend: config delivery stays up
// during backend outages, and the endpoint must reflect that.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}
