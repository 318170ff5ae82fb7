package handler

import (
	"encoding/json"
	"net/http"

	"mindshift/internal/service"
	"mindshift/internal/transport/rest/middleware"
)

// BlocklistHandler handles the per-user domain blocklist
type BlocklistHandler struct {
	blocklistSvc *service.BlocklistService
}

// NewBlocklistHandler creates a new blocklist handler
func NewBlocklistHandler(blocklistSvc *service.BlocklistService) *BlocklistHandler {
	return &BlocklistHandler{blocklistSvc: blocklistSvc}
}

// BlocklistRequest accepts a single domain, a list, or both
type BlocklistRequest struct {
	Domain  string   `json:"domain"`
	Domains []string `json:"domains"`
}

// List handles GET /v1/blocklist
func (h *BlocklistHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.blocklistSvc.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Add handles POST /v1/blocklist
func (h *BlocklistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req BlocklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	domains := req.Domains
	if req.Domain != "" {
		domains = append(domains, req.Domain)
	}
	if len(domains) == 0 {
		writeError(w, http.StatusBadRequest, "domain or domains is required")
		return
	}

	list, err := h.blocklistSvc.Add(r.Context(), middleware.GetUserID(r.Context()), domains...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Remove handles DELETE /v1/blocklist?domain=example.com
func (h *BlocklistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		writeError(w, http.StatusBadRequest, "domain is required")
		return
	}

	list, err := h.blocklistSvc.Remove(r.Context(), middleware.GetUserID(r.Context()), domain)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Check handles GET /v1/blocklist/check?host=m.youtube.com
func (h *BlocklistHandler) Check(w http.ResponseWriter, r *http.Request) {
	host := r.URL.Query().Get("host")
	blocked, err := h.blocklistSvc.Matches(r.Context(), middleware.GetUserID(r.Context()), host)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"host":    host,
		"blocked": blocked,
	})
}

// Text handles GET /v1/blocklist.txt
func (h *BlocklistHandler) Text(w http.ResponseWriter, r *http.Request) {
	text, err := h.blocklistSvc.RenderText(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
