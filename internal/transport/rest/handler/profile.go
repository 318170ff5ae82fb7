package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mindshift/internal/model"
	"mindshift/internal/service"
	"mindshift/internal/transport/rest/middleware"
)

// ProfileHandler handles answer submission and profile reads
type ProfileHandler struct {
	profileSvc *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// SubmitRequest maps question text (or a label) to a rating or free text
type SubmitRequest struct {
	Answers model.AnswerSet `json:"answers"`
}

// Submit handles POST /v1/answers
func (h *ProfileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileSvc.Submit(r.Context(), middleware.GetUserID(r.Context()), req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Latest handles GET /v1/profile
func (h *ProfileHandler) Latest(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileSvc.Latest(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// History handles GET /v1/profile/history?limit=N
func (h *ProfileHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	profiles, err := h.profileSvc.History(r.Context(), middleware.GetUserID(r.Context()), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
	})
}

// TypeStats handles GET /v1/stats/types?limit=N
func (h *ProfileHandler) TypeStats(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.profileSvc.TypeDistribution(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"types": entries,
	})
}
