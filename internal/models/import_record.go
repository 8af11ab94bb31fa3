package models

import "time"

// ImportRecord summarizes one legacy-spreadsheet import run.
type ImportRecord struct {
	ID              int       `json:"id"`
	Filename        string    `json:"filename"`
	TotalRecords    int       `json:"total_records"`
	SuccessCount    int       `json:"success_count"`
	CashOrders      int       `json:"cash_orders"`
	CompanyOrders   int       `json:"company_orders"`
	ImportedByEmail string    `json:"imported_by_email"`
	ImportedAt      time.Time `json:"imported_at"`
	// SampleData holds a small preview of imported orders.
	SampleData []map[string]interface{} `json:"sample_data,omitempty"`
}

// ImportRowError describes one rejected spreadsheet row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportResult is the response for an upload.
type ImportResult struct {
	Filename      string           `json:"filename"`
	TotalRecords  int              `json:"total_records"`
	SuccessCount  int              `json:"success_count"`
	CashOrders    int              `json:"cash_orders"`
	CompanyOrders int              `json:"company_orders"`
	Errors        []ImportRowError `json:"errors,omitempty"`
}
