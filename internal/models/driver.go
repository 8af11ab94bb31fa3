package models

import "time"

// Driver holds per-driver payroll defaults. Names come from order entry;
// rows exist only for drivers with an assigned salary.
type Driver struct {
	ID            int       `json:"id"`
	DriverName    string    `json:"driver_name"`
	DefaultSalary float64   `json:"default_salary"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DriverSalaryRequest sets one driver's default salary.
type DriverSalaryRequest struct {
	DriverName    string  `json:"driver_name"`
	DefaultSalary float64 `json:"default_salary"`
}

// BulkDriverSalaryRequest sets one salary across many drivers.
type BulkDriverSalaryRequest struct {
	DriverNames   []string `json:"driver_names"`
	DefaultSalary float64  `json:"default_salary"`
}

// DriverListEntry is a distinct driver seen on orders, merged with any
// stored default salary.
type DriverListEntry struct {
	DriverName    string  `json:"driver_name"`
	OrderCount    int     `json:"order_count"`
	DefaultSalary float64 `json:"default_salary"`
}
