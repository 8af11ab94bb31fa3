package models

import "time"

// Rate is a billing formula row for company orders:
// revenue = base_rate + max(0, kms_travelled - base_distance_km) * rate_per_km_beyond.
// The (name_of_firm, company_name, service_type) tuple is unique.
type Rate struct {
	ID              int       `json:"id"`
	NameOfFirm      string    `json:"name_of_firm"`
	CompanyName     string    `json:"company_name"`
	ServiceType     string    `json:"service_type"`
	BaseRate        float64   `json:"base_rate"`
	BaseDistanceKm  float64   `json:"base_distance_km"`
	RatePerKmBeyond float64   `json:"rate_per_km_beyond"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RateInput is the create/update request body. BaseDistanceKm defaults to
// 40 when omitted.
type RateInput struct {
	NameOfFirm      string   `json:"name_of_firm"`
	CompanyName     string   `json:"company_name"`
	ServiceType     string   `json:"service_type"`
	BaseRate        float64  `json:"base_rate"`
	BaseDistanceKm  *float64 `json:"base_distance_km,omitempty"`
	RatePerKmBeyond float64  `json:"rate_per_km_beyond"`
}

// OrderFinancials is the computed money view of a single order.
type OrderFinancials struct {
	OrderID   string  `json:"order_id"`
	OrderType string  `json:"order_type"`
	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	Profit    float64 `json:"profit"`
	// RateApplied is set for company orders priced from a rate row.
	RateApplied *Rate `json:"rate_applied,omitempty"`
}
