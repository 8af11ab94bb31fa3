package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"crane-backend/internal/auth"
	"crane-backend/internal/cache"
	"crane-backend/internal/middleware"
	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
	"crane-backend/internal/services"
)

type AuthHandler struct {
	Service   *services.UserService
	AuditRepo *repositories.AuditLogRepository
	JWT       *auth.JWTManager
}

func NewAuthHandler(s *services.UserService, auditRepo *repositories.AuditLogRepository, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Service: s, AuditRepo: auditRepo, JWT: jwt}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTOTPRequired):
			// Distinct status so the client can prompt for the code.
			writeJSON(w, http.StatusPreconditionRequired, map[string]string{"error": err.Error()})
		case errors.Is(err, services.ErrAccountDisabled):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		}
		return
	}

	h.AuditRepo.Record(r.Context(), resp.User.Email, models.AuditActionLogin,
		models.AuditResourceUser, strconv.Itoa(resp.User.ID))

	writeJSON(w, http.StatusOK, resp)
}

// Logout revokes the current token. It never fails: a missing or already
// invalid token still yields a 200 so clients can always clear their state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token != "" {
		if claims, err := h.JWT.ValidateToken(token); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			cache.RevokeToken(r.Context(), token, ttl)
			h.AuditRepo.Record(r.Context(), claims.Email, models.AuditActionLogout,
				models.AuditResourceUser, strconv.Itoa(claims.UserID))
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ChangePassword(r.Context(), userID, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}
