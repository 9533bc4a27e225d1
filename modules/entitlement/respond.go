package entitlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/logger"
	"github.com/lv-asc/vangarments/pkg/upgrade"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encoding failed", logger.Error(err))
	}
}

// respondError maps domain errors to HTTP status codes. Unknown features
// are client errors; anything else that reaches this point is an upstream
// dependency failure.
func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entitlement.ErrFeatureNotFound) || errors.Is(err, upgrade.ErrFeatureNotFound):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "Feature not found"})
	case errors.Is(err, upgrade.ErrUnknownTier):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown target tier"})
	default:
		s.log.ErrorContext(r.Context(), "upstream dependency failed",
			logger.Error(err),
		)
		s.respondJSON(w, http.StatusBadGateway, errorResponse{Error: "dependency unavailable"})
	}
}

func (s *Service) badRequest(w http.ResponseWriter, msg string) {
	s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
