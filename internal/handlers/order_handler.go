package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crane-backend/internal/cache"
	"crane-backend/internal/metrics"
	"crane-backend/internal/middleware"
	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
	"crane-backend/internal/services"
	"crane-backend/internal/timeutil"
	"crane-backend/internal/ws"
)

// deleteAllConfirmToken guards the wipe endpoint against an accidental call.
const deleteAllConfirmToken = "DELETE_ALL_ORDERS"

type OrderHandler struct {
	Service   *services.OrderService
	Payments  *services.PaymentService
	AuditRepo *repositories.AuditLogRepository
	Hub       *ws.Hub
}

func NewOrderHandler(s *services.OrderService, payments *services.PaymentService, auditRepo *repositories.AuditLogRepository, hub *ws.Hub) *OrderHandler {
	return &OrderHandler{Service: s, Payments: payments, AuditRepo: auditRepo, Hub: hub}
}

func parseOrderFilter(r *http.Request) models.OrderFilter {
	q := r.URL.Query()
	f := models.OrderFilter{
		OrderType:    q.Get("order_type"),
		CustomerName: q.Get("customer_name"),
		Phone:        q.Get("phone"),
	}
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Skip, _ = strconv.Atoi(q.Get("skip"))
	return f
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListOrders(r.Context(), parseOrderFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	for _, o := range orders {
		services.SanitizeForRole(o, role)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email, _ := middleware.GetEmailFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	order, err := h.Service.CreateOrder(r.Context(), &in, email, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.AuditRepo.Record(r.Context(), email, models.AuditActionCreate, models.AuditResourceOrder, order.ID)
	cache.InvalidateStatsSummary(r.Context())
	metrics.OrdersCreatedTotal.WithLabelValues(order.OrderType).Inc()
	h.Hub.Broadcast(ws.Event{Type: "order_created", OrderID: order.ID})

	writeJSON(w, http.StatusCreated, services.SanitizeForRole(order, role))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())
	writeJSON(w, http.StatusOK, services.SanitizeForRole(order, role))
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email, _ := middleware.GetEmailFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	order, err := h.Service.UpdateOrder(r.Context(), mux.Vars(r)["id"], &in, email, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.AuditRepo.Record(r.Context(), email, models.AuditActionUpdate, models.AuditResourceOrder, order.ID)
	cache.InvalidateStatsSummary(r.Context())
	h.Hub.Broadcast(ws.Event{Type: "order_updated", OrderID: order.ID})

	writeJSON(w, http.StatusOK, services.SanitizeForRole(order, role))
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.DeleteOrder(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	email, _ := middleware.GetEmailFromContext(r.Context())
	h.AuditRepo.Record(r.Context(), email, models.AuditActionDelete, models.AuditResourceOrder, id)
	cache.InvalidateStatsSummary(r.Context())
	h.Hub.Broadcast(ws.Event{Type: "order_deleted", OrderID: id})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

// BulkDelete deletes a list of order ids and reports a tally instead of
// failing the batch when some ids are stale.
func (h *OrderHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderIDs []string `json:"order_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.OrderIDs) == 0 {
		http.Error(w, "order_ids is required", http.StatusBadRequest)
		return
	}

	deleted, failed := h.Service.BulkDelete(r.Context(), req.OrderIDs)

	email, _ := middleware.GetEmailFromContext(r.Context())
	for _, id := range deleted {
		h.AuditRepo.Record(r.Context(), email, models.AuditActionDelete, models.AuditResourceOrder, id)
	}
	cache.InvalidateStatsSummary(r.Context())
	h.Hub.Broadcast(ws.Event{Type: "orders_bulk_deleted", OrderID: ""})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"succeeded": len(deleted),
		"failed":    failed,
		"message":   fmt.Sprintf("%d succeeded, %d failed", len(deleted), failed),
	})
}

// DeleteAll wipes every order. The caller must pass
// ?confirm=DELETE_ALL_ORDERS to prove intent.
func (h *OrderHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != deleteAllConfirmToken {
		http.Error(w, "confirm=DELETE_ALL_ORDERS query parameter required", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.DeleteAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	email, _ := middleware.GetEmailFromContext(r.Context())
	h.AuditRepo.Record(r.Context(), email, models.AuditActionDelete, models.AuditResourceOrder, "ALL")
	cache.InvalidateStatsSummary(r.Context())
	h.Hub.Broadcast(ws.Event{Type: "orders_bulk_deleted", OrderID: ""})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
		"message": fmt.Sprintf("Deleted %d orders", deleted),
	})
}

// StatsSummary serves the dashboard counters, cached for a minute.
func (h *OrderHandler) StatsSummary(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedStatsSummary(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	now := timeutil.Now()
	summary, err := h.Service.Repo.StatsSummary(r.Context(), timeutil.StartOfDay(now), timeutil.EndOfDay(now))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.CacheStatsSummary(r.Context(), data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *OrderHandler) Financials(w http.ResponseWriter, r *http.Request) {
	fin, err := h.Service.Financials(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fin)
}

func (h *OrderHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.Payments.CreatePaymentLink(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}
