package models

import "time"

// StatsSummary is the dashboard counter block. Cached briefly because the
// dashboard polls it.
type StatsSummary struct {
	TotalOrders   int `json:"total_orders"`
	CashOrders    int `json:"cash_orders"`
	CompanyOrders int `json:"company_orders"`
	OrdersToday   int `json:"orders_today"`
}

// ExpenseByDriverRow aggregates a driver's month.
type ExpenseByDriverRow struct {
	DriverName     string  `json:"driver_name"`
	OrderCount     int     `json:"order_count"`
	TotalToll      float64 `json:"total_toll"`
	TotalDiesel    float64 `json:"total_diesel"`
	TotalIncentive float64 `json:"total_incentive"`
	DefaultSalary  float64 `json:"default_salary"`
	TotalExpense   float64 `json:"total_expense"`
}

// RevenueByServiceTypeRow aggregates revenue per service type.
type RevenueByServiceTypeRow struct {
	ServiceType  string  `json:"service_type"`
	OrderCount   int     `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
}

// RevenueByTowingVehicleRow aggregates revenue per towing vehicle.
type RevenueByTowingVehicleRow struct {
	TowingVehicle string  `json:"towing_vehicle"`
	OrderCount    int     `json:"order_count"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProfit   float64 `json:"total_profit"`
}

// DailySummaryRow is one calendar day of the daily report.
type DailySummaryRow struct {
	Date          string  `json:"date"`
	OrderCount    int     `json:"order_count"`
	CashOrders    int     `json:"cash_orders"`
	CompanyOrders int     `json:"company_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
}

// CustomReportRequest selects columns and a window for an ad-hoc report.
type CustomReportRequest struct {
	Columns   []string `json:"columns"`
	StartDate FlexTime `json:"start_date"`
	EndDate   FlexTime `json:"end_date"`
	OrderType string   `json:"order_type,omitempty"`
	SortBy    string   `json:"sort_by,omitempty"`
	SortOrder string   `json:"sort_order,omitempty"`
}

// CustomReport is the produced report: header labels plus row maps keyed by
// column id.
type CustomReport struct {
	Columns []ReportColumn           `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
	Total   int                      `json:"total"`
}

// ReportColumn describes one selectable column of the custom report builder.
type ReportColumn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// Numeric columns get summed in export footers.
	Numeric bool `json:"numeric"`
	// OrderType restricts a column to one variant; empty means both.
	OrderType string `json:"order_type,omitempty"`
}

// MonthQuery is the parsed ?year=&month= pair used by the monthly reports.
type MonthQuery struct {
	Year  int
	Month time.Month
}
