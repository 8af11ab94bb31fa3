package handlers

import (
	"net/http"
	"strconv"

	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
)

type AuditLogHandler struct {
	Repo *repositories.AuditLogRepository
}

func NewAuditLogHandler(repo *repositories.AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{Repo: repo}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.AuditLogFilter{
		ResourceType: q.Get("resource_type"),
		Action:       q.Get("action"),
		UserEmail:    q.Get("user_email"),
	}
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	entries, err := h.Repo.List(r.Context(), f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*models.AuditLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
