package services

import (
	"testing"
	"time"

	"crane-backend/internal/models"
)

func TestRateKeyCaseInsensitive(t *testing.T) {
	if rateKey("ACME", "Acme Insurance", "Flatbed") != rateKey("acme", "acme insurance", "flatbed") {
		t.Error("rate keys should be case-insensitive")
	}
	if rateKey("a", "b", "c") == rateKey("a", "c", "b") {
		t.Error("distinct tuples should have distinct keys")
	}
}

func TestOrderRate(t *testing.T) {
	rate := &models.Rate{NameOfFirm: "Acme", CompanyName: "Acme Insurance", ServiceType: "Flatbed"}
	rates := map[string]*models.Rate{rateKey("Acme", "Acme Insurance", "Flatbed"): rate}

	company := &models.Order{
		OrderType:   models.OrderTypeCompany,
		NameOfFirm:  strPtr("ACME"),
		CompanyName: strPtr("acme insurance"),
		ServiceType: strPtr("FLATBED"),
	}
	if orderRate(company, rates) != rate {
		t.Error("company order should match its rate case-insensitively")
	}

	cash := &models.Order{OrderType: models.OrderTypeCash}
	if orderRate(cash, rates) != nil {
		t.Error("cash orders never carry a rate")
	}

	unknown := &models.Order{OrderType: models.OrderTypeCompany, CompanyName: strPtr("Other")}
	if orderRate(unknown, rates) != nil {
		t.Error("unmatched tuple should yield nil")
	}
}

func TestAvailableColumnsUniqueIDs(t *testing.T) {
	s := &ReportService{}
	seen := make(map[string]bool)
	for _, col := range s.AvailableColumns() {
		if col.ID == "" || col.Label == "" {
			t.Errorf("column %+v missing id or label", col)
		}
		if seen[col.ID] {
			t.Errorf("duplicate column id %q", col.ID)
		}
		seen[col.ID] = true
	}
	for _, id := range []string{"customer_name", "revenue", "expenses", "profit", "amount_received", "company_name"} {
		if !seen[id] {
			t.Errorf("expected column %q to be offered", id)
		}
	}
}

func TestColumnExtractors(t *testing.T) {
	rate := &models.Rate{NameOfFirm: "Acme", CompanyName: "Acme Insurance", ServiceType: "Flatbed",
		BaseRate: 2000, BaseDistanceKm: 40, RatePerKmBeyond: 50}
	rates := map[string]*models.Rate{rateKey("Acme", "Acme Insurance", "Flatbed"): rate}

	o := &models.Order{
		CustomerName: "Ravi",
		OrderType:    models.OrderTypeCompany,
		DateTime:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		NameOfFirm:   strPtr("Acme"),
		CompanyName:  strPtr("Acme Insurance"),
		ServiceType:  strPtr("Flatbed"),
		KmsTravelled: f64(100),
		Toll:         f64(300),
	}

	get := func(id string) interface{} {
		col, ok := findColumn(id)
		if !ok {
			t.Fatalf("column %q not found", id)
		}
		return col.extract(o, rates)
	}

	if got := get("customer_name"); got != "Ravi" {
		t.Errorf("customer_name = %v", got)
	}
	wantRevenue := 2000.0 + 60*50
	if got := get("revenue"); got != wantRevenue {
		t.Errorf("revenue = %v, want %v", got, wantRevenue)
	}
	if got := get("expenses"); got != 300.0 {
		t.Errorf("expenses = %v, want 300", got)
	}
	if got := get("profit"); got != wantRevenue-300 {
		t.Errorf("profit = %v, want %v", got, wantRevenue-300)
	}
	// Absent optionals extract as zero values, never nil.
	if got := get("amount_received"); got != 0.0 {
		t.Errorf("amount_received = %v, want 0", got)
	}
	if got := get("driver_name"); got != "" {
		t.Errorf("driver_name = %v, want empty", got)
	}
}

func TestSortRows(t *testing.T) {
	s := &ReportService{}
	report := &models.CustomReport{
		Columns: []models.ReportColumn{{ID: "toll", Numeric: true}, {ID: "customer_name"}},
		Rows: []map[string]interface{}{
			{"toll": 300.0, "customer_name": "B"},
			{"toll": 100.0, "customer_name": "C"},
			{"toll": 200.0, "customer_name": "A"},
		},
	}

	s.sortRows(report, "toll", "asc")
	if report.Rows[0]["toll"] != 100.0 || report.Rows[2]["toll"] != 300.0 {
		t.Errorf("ascending sort by toll: %v", report.Rows)
	}

	s.sortRows(report, "customer_name", "desc")
	if report.Rows[0]["customer_name"] != "C" {
		t.Errorf("descending sort by name: %v", report.Rows)
	}

	// Unknown sort column leaves the order alone.
	before := report.Rows[0]["customer_name"]
	s.sortRows(report, "nope", "asc")
	if report.Rows[0]["customer_name"] != before {
		t.Error("unknown sort column should be a no-op")
	}
}
