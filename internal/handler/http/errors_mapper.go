package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/service"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrEmptyApplicationID: http.StatusBadRequest,
	service.ErrInvalidVersion:     http.StatusBadRequest,

	service.ErrApplicationNotFound: http.StatusNotFound,
	service.ErrNamedConfigNotFound: http.StatusNotFound,

	service.ErrApplicationAlreadyExists: http.StatusConflict,
	service.ErrNamedConfigAlreadyExists: http.StatusConflict,

	store.ErrBackendUnavailable: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
	store.ErrEncodingDocument: http.StatusInternalServerError,
	store.ErrDecodingDocument: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}

	var conflict *service.VersionConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError translates err into an HTTP status and a JSON [models.ErrorResponse].
// Validation failures carry the full issue list in the body so the client can
// report every problem at once.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	response := models.ErrorResponse{Error: err.Error()}

	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		response.Issues = vErr.Issues
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Err(encodeErr).Str("func", "writeError").Msg("error encoding error response")
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	log := logger.FromRequest(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Str("func", "writeJSON").Msg("error encoding response")
	}
}
