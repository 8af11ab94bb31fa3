package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
)

type RateHandler struct {
	Repo *repositories.RateRepository
}

func NewRateHandler(repo *repositories.RateRepository) *RateHandler {
	return &RateHandler{Repo: repo}
}

func rateFromInput(req *models.RateInput) (*models.Rate, error) {
	if strings.TrimSpace(req.NameOfFirm) == "" ||
		strings.TrimSpace(req.CompanyName) == "" ||
		strings.TrimSpace(req.ServiceType) == "" {
		return nil, errors.New("name_of_firm, company_name and service_type are required")
	}
	if req.BaseRate < 0 || req.RatePerKmBeyond < 0 {
		return nil, errors.New("rates cannot be negative")
	}

	rate := &models.Rate{
		NameOfFirm:      strings.TrimSpace(req.NameOfFirm),
		CompanyName:     strings.TrimSpace(req.CompanyName),
		ServiceType:     strings.TrimSpace(req.ServiceType),
		BaseRate:        req.BaseRate,
		BaseDistanceKm:  40,
		RatePerKmBeyond: req.RatePerKmBeyond,
	}
	if req.BaseDistanceKm != nil {
		if *req.BaseDistanceKm < 0 {
			return nil, errors.New("base_distance_km cannot be negative")
		}
		rate.BaseDistanceKm = *req.BaseDistanceKm
	}
	return rate, nil
}

func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rates == nil {
		rates = []*models.Rate{}
	}
	writeJSON(w, http.StatusOK, rates)
}

func (h *RateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rate, err := rateFromInput(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.Create(r.Context(), rate); err != nil {
		// Unique constraint on the billing tuple.
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "A rate for this firm, company and service type already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, rate)
}

func (h *RateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.RateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rate, err := rateFromInput(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rate.ID = id

	if existing, err := h.Repo.Get(r.Context(), id); err != nil {
		http.Error(w, "Rate not found", http.StatusNotFound)
		return
	} else {
		rate.CreatedAt = existing.CreatedAt
	}

	if err := h.Repo.Update(r.Context(), rate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Rate not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func (h *RateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rate deleted"})
}
