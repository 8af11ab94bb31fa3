package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order types
const (
	OrderTypeCash    = "cash"
	OrderTypeCompany = "company"
)

// CreatedBySystemImport marks orders created by the legacy-data importer
// rather than a logged-in user.
const CreatedBySystemImport = "system_import"

// Order is a stored service job. Optional fields are pointers so absent
// values stay absent on the wire.
type Order struct {
	ID           string    `json:"id"`
	UniqueID     string    `json:"unique_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	OrderType    string    `json:"order_type"`
	DateTime     time.Time `json:"date_time"`
	CreatedBy    string    `json:"created_by"`

	TripFrom             *string  `json:"trip_from,omitempty"`
	TripTo               *string  `json:"trip_to,omitempty"`
	VehicleName          *string  `json:"vehicle_name,omitempty"`
	VehicleNumber        *string  `json:"vehicle_number,omitempty"`
	ServiceType          *string  `json:"service_type,omitempty"`
	TowingVehicle        *string  `json:"towing_vehicle,omitempty"`
	DriverName           *string  `json:"driver_name,omitempty"`
	KmsTravelled         *float64 `json:"kms_travelled,omitempty"`
	Toll                 *float64 `json:"toll,omitempty"`
	DieselCost           *float64 `json:"diesel_cost,omitempty"`
	DieselRefillLocation *string  `json:"diesel_refill_location,omitempty"`

	// Cash variant
	AmountReceived *float64 `json:"amount_received,omitempty"`
	AdvanceAmount  *float64 `json:"advance_amount,omitempty"`
	CareOff        *string  `json:"care_off,omitempty"`
	CareOffAmount  *float64 `json:"care_off_amount,omitempty"`

	// Company variant
	NameOfFirm       *string    `json:"name_of_firm,omitempty"`
	CompanyName      *string    `json:"company_name,omitempty"`
	CaseIDFileNumber *string    `json:"case_id_file_number,omitempty"`
	ReachTime        *time.Time `json:"reach_time,omitempty"`
	DropTime         *time.Time `json:"drop_time,omitempty"`

	// Incentive, admin-attributed. Stripped from responses for data_entry.
	IncentiveAmount  *float64   `json:"incentive_amount,omitempty"`
	IncentiveReason  *string    `json:"incentive_reason,omitempty"`
	IncentiveAddedBy *string    `json:"incentive_added_by,omitempty"`
	IncentiveAddedAt *time.Time `json:"incentive_added_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderInput is the create/update request body. Text fields arrive as plain
// strings (empty means absent); numeric and timestamp fields use the lenient
// decoders below because clients submit them straight from form inputs.
type OrderInput struct {
	CustomerName string   `json:"customer_name"`
	Phone        string   `json:"phone"`
	OrderType    string   `json:"order_type"`
	DateTime     FlexTime `json:"date_time"`

	TripFrom             string `json:"trip_from"`
	TripTo               string `json:"trip_to"`
	VehicleName          string `json:"vehicle_name"`
	VehicleNumber        string `json:"vehicle_number"`
	ServiceType          string `json:"service_type"`
	TowingVehicle        string `json:"towing_vehicle"`
	DriverName           string `json:"driver_name"`
	KmsTravelled         Amount `json:"kms_travelled"`
	Toll                 Amount `json:"toll"`
	DieselCost           Amount `json:"diesel_cost"`
	DieselRefillLocation string `json:"diesel_refill_location"`

	AmountReceived Amount `json:"amount_received"`
	AdvanceAmount  Amount `json:"advance_amount"`
	CareOff        string `json:"care_off"`
	CareOffAmount  Amount `json:"care_off_amount"`

	NameOfFirm       string   `json:"name_of_firm"`
	CompanyName      string   `json:"company_name"`
	CaseIDFileNumber string   `json:"case_id_file_number"`
	ReachTime        FlexTime `json:"reach_time"`
	DropTime         FlexTime `json:"drop_time"`

	IncentiveAmount Amount `json:"incentive_amount"`
	IncentiveReason string `json:"incentive_reason"`
}

// OrderFilter carries list query parameters. Name and phone match as
// case-insensitive substrings.
type OrderFilter struct {
	OrderType    string
	CustomerName string
	Phone        string
	Limit        int
	Skip         int
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Amount decodes a numeric form value that may arrive as a JSON number, a
// numeric string, an empty string, or null. Empty string and null both mean
// "absent" — the literal "" must never reach storage.
type Amount struct {
	value *float64
}

// NewAmount builds a set Amount, mainly for tests.
func NewAmount(f float64) Amount {
	return Amount{value: &f}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		a.value = nil
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			a.value = nil
			return nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", str)
		}
		a.value = &f
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	a.value = &f
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*a.value)
}

// Ptr returns the decoded value, nil when absent.
func (a Amount) Ptr() *float64 {
	return a.value
}

// IsSet reports whether a value was provided.
func (a Amount) IsSet() bool {
	return a.value != nil
}

// Float returns the value or zero when absent.
func (a Amount) Float() float64 {
	if a.value == nil {
		return 0
	}
	return *a.value
}

// ParseAmount parses a spreadsheet cell into an Amount. Empty means absent.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid number %q", s)
	}
	return NewAmount(f), nil
}

// FlexTime decodes a timestamp that may arrive as RFC3339, as the
// datetime-local format browsers emit ("2006-01-02T15:04"), or as an empty
// string meaning absent. Values normalize to UTC.
type FlexTime struct {
	value *time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewFlexTime builds a set FlexTime, mainly for tests.
func NewFlexTime(t time.Time) FlexTime {
	u := t.UTC()
	return FlexTime{value: &u}
}

func (ft *FlexTime) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		// Tolerate null
		if strings.TrimSpace(string(b)) == "null" {
			ft.value = nil
			return nil
		}
		return err
	}
	str = strings.TrimSpace(str)
	if str == "" {
		ft.value = nil
		return nil
	}
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			u := t.UTC()
			ft.value = &u
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", str)
}

// ParseFlexTime parses a spreadsheet cell into a FlexTime. Empty means
// absent.
func ParseFlexTime(s string) (FlexTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexTime{}, nil
	}
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewFlexTime(t), nil
		}
	}
	// Spreadsheets often render dates as dd-mm-yyyy or dd/mm/yyyy.
	for _, layout := range []string{"02-01-2006 15:04", "02-01-2006", "02/01/2006 15:04", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewFlexTime(t), nil
		}
	}
	return FlexTime{}, fmt.Errorf("invalid timestamp %q", s)
}

func (ft FlexTime) MarshalJSON() ([]byte, error) {
	if ft.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(ft.value.Format(time.RFC3339))
}

// Ptr returns the decoded time in UTC, nil when absent.
func (ft FlexTime) Ptr() *time.Time {
	return ft.value
}

// IsSet reports whether a value was provided.
func (ft FlexTime) IsSet() bool {
	return ft.value != nil
}
