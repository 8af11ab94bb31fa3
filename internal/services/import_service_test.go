package services

import (
	"strings"
	"testing"

	"crane-backend/internal/models"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Customer Name", "customer_name"},
		{"  phone ", "phone"},
		{"cash_amount_received", "amount_received"},
		{"company_driver_name", "driver_name"},
		{"Case ID/File Number", "case_id_file_number"},
		{"ORDER_TYPE", "order_type"},
	}
	for _, tt := range tests {
		if got := normalizeHeader(tt.input); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCSV(t *testing.T) {
	csv := strings.Join([]string{
		"Customer Name,Phone,Order Type,cash_amount_received,Date Time",
		"Ravi,987,cash,3500,2025-01-15T10:00",
		"Meena,988,company,,",
	}, "\n")

	rows, err := parseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["customer_name"] != "Ravi" || rows[0]["amount_received"] != "3500" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["order_type"] != "company" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestParseCSVBadHeader(t *testing.T) {
	if _, err := parseCSV(strings.NewReader("")); err == nil {
		t.Error("empty file should fail on the header row")
	}
}

func TestRowToInput(t *testing.T) {
	row := map[string]string{
		"customer_name":   "Ravi",
		"phone":           "987",
		"order_type":      "CASH",
		"amount_received": "3500",
		"kms_travelled":   "120.5",
		"date_time":       "2025-01-15T10:00",
	}
	in, err := rowToInput(row)
	if err != nil {
		t.Fatalf("rowToInput: %v", err)
	}
	if in.OrderType != models.OrderTypeCash {
		t.Errorf("order_type = %q, want cash (lowercased)", in.OrderType)
	}
	if !in.AmountReceived.IsSet() || in.AmountReceived.Float() != 3500 {
		t.Errorf("amount_received = %v", in.AmountReceived.Ptr())
	}
	if !in.DateTime.IsSet() {
		t.Error("date_time should parse")
	}
}

func TestRowToInputBadNumber(t *testing.T) {
	row := map[string]string{
		"customer_name": "Ravi",
		"phone":         "987",
		"order_type":    "cash",
		"toll":          "many rupees",
	}
	_, err := rowToInput(row)
	ve, ok := err.(models.ValidationError)
	if !ok {
		t.Fatalf("rowToInput = %v, want ValidationError", err)
	}
	if ve.Field != "toll" {
		t.Errorf("error field = %q, want toll", ve.Field)
	}
}
