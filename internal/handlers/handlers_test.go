package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"crane-backend/internal/models"
	"crane-backend/internal/services"
)

func TestBulkDeleteRejectsBadInput(t *testing.T) {
	h := &OrderHandler{}

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"empty id list", `{"order_ids": []}`},
		{"missing field", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders/bulk-delete", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.BulkDelete(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDeleteAllRequiresConfirmation(t *testing.T) {
	h := &OrderHandler{}

	for _, target := range []string{
		"/api/orders/delete-all",
		"/api/orders/delete-all?confirm=yes",
		"/api/orders/delete-all?confirm=delete_all_orders",
	} {
		req := httptest.NewRequest(http.MethodDelete, target, nil)
		rec := httptest.NewRecorder()
		h.DeleteAll(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestCreateOrderRejectsBadBody(t *testing.T) {
	h := &OrderHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.CreateOrder(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginRejectsBadBody(t *testing.T) {
	h := &AuthHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", models.ValidationError{Field: "phone", Message: "phone is required"}, http.StatusUnprocessableEntity},
		{"order not found", services.ErrOrderNotFound, http.StatusNotFound},
		{"rate not found", services.ErrRateNotFound, http.StatusBadRequest},
		{"invalid incentive", services.ErrIncentiveInvalid, http.StatusBadRequest},
		{"email taken", services.ErrEmailTaken, http.StatusConflict},
		{"wrong password", services.ErrWrongPassword, http.StatusForbidden},
		{"payments not configured", services.ErrPaymentsNotConfigured, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestWriteServiceErrorValidationBody(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, models.ValidationError{Field: "toll", Message: "toll must not be negative"})
	body := rec.Body.String()
	if !strings.Contains(body, `"field":"toll"`) {
		t.Errorf("body = %s, want field name", body)
	}
}

func TestParseMonthQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"defaults", "", false},
		{"explicit", "year=2025&month=3", false},
		{"year too small", "year=1999", true},
		{"year not a number", "year=abc", true},
		{"month zero", "month=0", true},
		{"month thirteen", "month=13", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/reports/expense-by-driver?"+tt.query, nil)
			q, err := parseMonthQuery(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMonthQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.query == "year=2025&month=3" && (q.Year != 2025 || q.Month != time.March) {
				t.Errorf("parsed = %+v", q)
			}
		})
	}
}

func TestDailySummaryWindow(t *testing.T) {
	q := url.Values{}
	q.Set("start_date", "2026-08-01")
	q.Set("end_date", "2026-08-15")

	from, to, err := dailySummaryWindow(q)
	if err != nil {
		t.Fatalf("dailySummaryWindow() error = %v", err)
	}
	// 2026-08-01 as an IST day starts at 2026-07-31T18:30Z, matching the
	// per-day grouping of the report.
	if want := time.Date(2026, 7, 31, 18, 30, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if want := time.Date(2026, 8, 14, 18, 30, 0, 0, time.UTC); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}

	bad := url.Values{}
	bad.Set("start_date", "yesterday")
	if _, _, err := dailySummaryWindow(bad); err == nil {
		t.Error("expected error for unparseable start_date")
	}

	from, to, err = dailySummaryWindow(url.Values{})
	if err != nil {
		t.Fatalf("dailySummaryWindow(defaults) error = %v", err)
	}
	if got := to.Sub(from); got != 30*24*time.Hour {
		t.Errorf("default window = %v, want 30 days", got)
	}
}

func TestParseOrderFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/orders?order_type=cash&customer_name=ravi&limit=20&skip=40", nil)
	f := parseOrderFilter(req)
	if f.OrderType != "cash" || f.CustomerName != "ravi" || f.Limit != 20 || f.Skip != 40 {
		t.Errorf("filter = %+v", f)
	}

	empty := parseOrderFilter(httptest.NewRequest(http.MethodGet, "/api/orders?limit=nope", nil))
	if empty.Limit != 0 {
		t.Errorf("bad limit should fall back to 0, got %d", empty.Limit)
	}
}
