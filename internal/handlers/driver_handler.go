package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
)

type DriverHandler struct {
	Repo *repositories.DriverRepository
}

func NewDriverHandler(repo *repositories.DriverRepository) *DriverHandler {
	return &DriverHandler{Repo: repo}
}

// List returns every driver seen on orders with their default salary.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Repo.ListFromOrders(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if drivers == nil {
		drivers = []*models.DriverListEntry{}
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (h *DriverHandler) SetDefaultSalary(w http.ResponseWriter, r *http.Request) {
	var req models.DriverSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.DriverName) == "" {
		http.Error(w, "driver_name is required", http.StatusBadRequest)
		return
	}
	if req.DefaultSalary < 0 {
		http.Error(w, "default_salary cannot be negative", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SetDefaultSalary(r.Context(), strings.TrimSpace(req.DriverName), req.DefaultSalary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Salary updated"})
}

// BulkSetDefaultSalary applies one salary to many drivers at once.
func (h *DriverHandler) BulkSetDefaultSalary(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDriverSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.DriverNames) == 0 {
		http.Error(w, "driver_names is required", http.StatusBadRequest)
		return
	}
	if req.DefaultSalary < 0 {
		http.Error(w, "default_salary cannot be negative", http.StatusBadRequest)
		return
	}

	updated := 0
	for _, name := range req.DriverNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := h.Repo.SetDefaultSalary(r.Context(), name, req.DefaultSalary); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		updated++
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
		"message": "Salaries updated",
	})
}
