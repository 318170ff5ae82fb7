package handler

import (
	"encoding/json"
	"net/http"

	"mindshift/internal/model"
	"mindshift/internal/service"
	"mindshift/internal/transport/rest/middleware"
)

// QuestionHandler serves generated statements and the Likert bank
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// HistoryRequest carries chat history: plain strings or {role, content}
type HistoryRequest struct {
	History []model.HistoryMessage `json:"history"`
}

// History handles POST /v1/history
func (h *QuestionHandler) History(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	result := h.questionSvc.FromHistory(r.Context(), userID, req.History)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":    userID,
		"themes":    result.Themes,
		"questions": result.Questions,
		"source":    result.Source,
	})
}

// ThemedRequest selects themes and an optional previous type
type ThemedRequest struct {
	Themes   []string `json:"themes"`
	MBTIHint string   `json:"mbtiHint"`
}

// Themed handles POST /v1/questions
func (h *QuestionHandler) Themed(w http.ResponseWriter, r *http.Request) {
	var req ThemedRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	userID := middleware.GetUserID(r.Context())
	questions := h.questionSvc.ForThemes(r.Context(), userID, req.Themes, req.MBTIHint)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":    userID,
		"questions": questions,
	})
}

// General handles GET /v1/questions/general
func (h *QuestionHandler) General(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": h.questionSvc.General(),
		"scale":     model.DefaultLikertScale,
	})
}
