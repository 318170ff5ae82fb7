package handler

import (
	"encoding/json"
	"net/http"

	"mindshift/internal/model"
	"mindshift/internal/service"
	"mindshift/internal/transport/rest/middleware"
)

// EventHandler turns focus events into recommendations
type EventHandler struct {
	recommendationSvc *service.RecommendationService
}

// NewEventHandler creates a new event handler
func NewEventHandler(recommendationSvc *service.RecommendationService) *EventHandler {
	return &EventHandler{recommendationSvc: recommendationSvc}
}

// EventRequest is the body of POST /v1/events. Traits are optional and
// default to the user's latest profile.
type EventRequest struct {
	EventType model.EventType   `json:"eventType"`
	Details   map[string]string `json:"details"`
	Traits    []string          `json:"traits"`
}

// Create handles POST /v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	event, err := h.recommendationSvc.Recommend(r.Context(), userID, req.EventType, req.Details, req.Traits)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":          userID,
		"eventType":       event.Type,
		"recommendations": event.Recommendations,
	})
}
