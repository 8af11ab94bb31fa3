package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crane-backend/internal/middleware"
	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
	"crane-backend/internal/services"
)

type UserHandler struct {
	Service   *services.UserService
	AuditRepo *repositories.AuditLogRepository
}

func NewUserHandler(s *services.UserService, auditRepo *repositories.AuditLogRepository) *UserHandler {
	return &UserHandler{Service: s, AuditRepo: auditRepo}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.AuditRepo.Record(r.Context(), actor, models.AuditActionCreate,
		models.AuditResourceUser, strconv.Itoa(user.ID))

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.AuditRepo.Record(r.Context(), actor, models.AuditActionUpdate,
		models.AuditResourceUser, strconv.Itoa(user.ID))

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	actorID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.DeleteUser(r.Context(), id, actorID); err != nil {
		writeServiceError(w, err)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.AuditRepo.Record(r.Context(), actor, models.AuditActionDelete,
		models.AuditResourceUser, strconv.Itoa(id))

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	actorID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ResetPassword(r.Context(), id, actorID, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.AuditRepo.Record(r.Context(), actor, models.AuditActionUpdate,
		models.AuditResourceUser, strconv.Itoa(id))

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset"})
}
