package entitlement

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/upgrade"
)

var validCategories = map[entitlement.Category]struct{}{
	entitlement.CategoryCore:         {},
	entitlement.CategorySocial:       {},
	entitlement.CategoryMarketplace:  {},
	entitlement.CategoryProfessional: {},
	entitlement.CategoryAnalytics:    {},
	entitlement.CategoryOther:        {},
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "userID"))
}

// handleCatalog returns the static feature catalog, optionally filtered by
// category or minimum tier.
func (s *Service) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("category"); raw != "" {
		cat := entitlement.Category(raw)
		if _, ok := validCategories[cat]; !ok {
			s.badRequest(w, "unknown category")
			return
		}
		s.respondJSON(w, http.StatusOK, entitlement.FeaturesByCategory(cat))
		return
	}

	if raw := q.Get("tier"); raw != "" {
		tier, ok := entitlement.ParseTier(raw)
		if !ok {
			s.badRequest(w, "unknown tier")
			return
		}
		s.respondJSON(w, http.StatusOK, entitlement.FeaturesByTier(tier))
		return
	}

	s.respondJSON(w, http.StatusOK, entitlement.AllFeatures())
}

func (s *Service) handleUserFeatures(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		s.badRequest(w, "invalid user id")
		return
	}

	includeRestricted := r.URL.Query().Get("includeRestricted") == "true"

	breakdown, err := s.evaluator.UserFeatures(r.Context(), userID, includeRestricted)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, breakdown)
}

// handleFeatureAccess evaluates a single feature. A denial is a normal
// 200 response carrying the decision body.
func (s *Service) handleFeatureAccess(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		s.badRequest(w, "invalid user id")
		return
	}

	featureID := entitlement.FeatureID(chi.URLParam(r, "featureID"))

	actx := &entitlement.AccessContext{
		HasAccountLinking: r.URL.Query().Get("linked") == "true",
		Action:            r.URL.Query().Get("action"),
	}
	if raw := r.URL.Query().Get("currentUsage"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			s.badRequest(w, "invalid currentUsage")
			return
		}
		actx.CurrentUsage = n
	}

	decision, err := s.evaluator.HasFeatureAccess(r.Context(), userID, featureID, actx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, decision)
}

func (s *Service) handleUsageLimits(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		s.badRequest(w, "invalid user id")
		return
	}

	report, err := s.evaluator.CheckUsageLimits(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleUsagePrompt(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		s.badRequest(w, "invalid user id")
		return
	}

	var req upgrade.UsagePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if req.Feature == "" || req.Limit <= 0 {
		s.badRequest(w, "featureName and limit are required")
		return
	}

	prompt, err := s.generator.TriggerUpgradePrompt(r.Context(), userID, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, prompt)
}

func (s *Service) handleDiscoveryPrompt(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		s.badRequest(w, "invalid user id")
		return
	}

	featureID := entitlement.FeatureID(chi.URLParam(r, "featureID"))

	prompt, err := s.generator.ShowFeatureDiscoveryPrompt(r.Context(), userID, featureID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, prompt)
}

type upgradeFlowRequest struct {
	TargetTier string               `json:"targetTier"`
	Context    *upgrade.FlowContext `json:"context,omitempty"`
}

type upgradeFlowResponse struct {
	Steps []upgrade.Step `json:"steps"`
}

func (s *Service) handleUpgradeFlow(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		s.badRequest(w, "invalid user id")
		return
	}

	var req upgradeFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if req.TargetTier == "" {
		s.badRequest(w, "targetTier is required")
		return
	}

	steps, err := s.generator.GenerateUpgradeFlow(r.Context(), userID, entitlement.Tier(req.TargetTier), req.Context)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, upgradeFlowResponse{Steps: steps})
}
