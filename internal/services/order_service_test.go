package services

import (
	"strings"
	"testing"
	"time"

	"crane-backend/internal/authz"
	"crane-backend/internal/models"
)

func validCashInput() *models.OrderInput {
	return &models.OrderInput{
		CustomerName: "Ravi Kumar",
		Phone:        "9876543210",
		OrderType:    models.OrderTypeCash,
	}
}

func validCompanyInput() *models.OrderInput {
	return &models.OrderInput{
		CustomerName:  "Ravi Kumar",
		Phone:         "9876543210",
		OrderType:     models.OrderTypeCompany,
		CompanyName:   "Acme Insurance",
		ServiceType:   "Flatbed Towing",
		DriverName:    "Suresh",
		TowingVehicle: "Crane 1",
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.OrderInput)
		input     *models.OrderInput
		wantField string
	}{
		{"valid cash", func(in *models.OrderInput) {}, validCashInput(), ""},
		{"valid company", func(in *models.OrderInput) {}, validCompanyInput(), ""},
		{"missing customer name", func(in *models.OrderInput) { in.CustomerName = "  " }, validCashInput(), "customer_name"},
		{"missing phone", func(in *models.OrderInput) { in.Phone = "" }, validCashInput(), "phone"},
		{"bad order type", func(in *models.OrderInput) { in.OrderType = "credit" }, validCashInput(), "order_type"},
		{"empty order type", func(in *models.OrderInput) { in.OrderType = "" }, validCashInput(), "order_type"},
		{"company without company name", func(in *models.OrderInput) { in.CompanyName = "" }, validCompanyInput(), "company_name"},
		{"company without service type", func(in *models.OrderInput) { in.ServiceType = "" }, validCompanyInput(), "service_type"},
		{"company without driver", func(in *models.OrderInput) { in.DriverName = "" }, validCompanyInput(), "driver_name"},
		{"company without towing vehicle", func(in *models.OrderInput) { in.TowingVehicle = "" }, validCompanyInput(), "towing_vehicle"},
		{"negative toll", func(in *models.OrderInput) { in.Toll = models.NewAmount(-5) }, validCashInput(), "toll"},
		{"negative amount received", func(in *models.OrderInput) { in.AmountReceived = models.NewAmount(-1) }, validCashInput(), "amount_received"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			tt.mutate(in)
			err := ValidateInput(in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateInput() = %v, want nil", err)
				}
				return
			}
			ve, ok := err.(models.ValidationError)
			if !ok {
				t.Fatalf("ValidateInput() = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestBuildOrderDropsForeignVariantFields(t *testing.T) {
	svc := &OrderService{}

	in := validCashInput()
	in.AmountReceived = models.NewAmount(5000)
	in.CompanyName = "Should Be Dropped"
	in.NameOfFirm = "Also Dropped"
	in.ReachTime = models.NewFlexTime(time.Now())

	o, err := svc.BuildOrder(in, "entry@crane.local", authz.RoleDataEntry)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if o.CompanyName != nil || o.NameOfFirm != nil || o.ReachTime != nil {
		t.Error("company fields must be dropped from a cash order")
	}
	if o.AmountReceived == nil || *o.AmountReceived != 5000 {
		t.Errorf("amount_received = %v, want 5000", o.AmountReceived)
	}

	in2 := validCompanyInput()
	in2.AmountReceived = models.NewAmount(999)
	in2.CareOff = "Broker"

	o2, err := svc.BuildOrder(in2, "entry@crane.local", authz.RoleDataEntry)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if o2.AmountReceived != nil || o2.CareOff != nil {
		t.Error("cash fields must be dropped from a company order")
	}
	if o2.CompanyName == nil || *o2.CompanyName != "Acme Insurance" {
		t.Errorf("company_name = %v, want Acme Insurance", o2.CompanyName)
	}
}

func TestBuildOrderTrimsAndNils(t *testing.T) {
	svc := &OrderService{}
	in := validCashInput()
	in.CustomerName = "  Ravi Kumar  "
	in.TripFrom = "   "
	in.TripTo = " Pune "

	o, err := svc.BuildOrder(in, "x@y.z", authz.RoleAdmin)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if o.CustomerName != "Ravi Kumar" {
		t.Errorf("customer_name = %q, want trimmed", o.CustomerName)
	}
	if o.TripFrom != nil {
		t.Error("whitespace-only trip_from should be nil")
	}
	if o.TripTo == nil || *o.TripTo != "Pune" {
		t.Errorf("trip_to = %v, want Pune", o.TripTo)
	}
}

func TestBuildOrderDefaultsDateTime(t *testing.T) {
	svc := &OrderService{}
	before := time.Now().UTC()
	o, err := svc.BuildOrder(validCashInput(), "x@y.z", authz.RoleDataEntry)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if o.DateTime.Before(before) || o.DateTime.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("date_time = %v, want about now", o.DateTime)
	}
}

func TestBuildOrderIncentive(t *testing.T) {
	svc := &OrderService{}

	t.Run("data entry incentive ignored", func(t *testing.T) {
		in := validCashInput()
		in.IncentiveAmount = models.NewAmount(500)
		in.IncentiveReason = "night job"

		o, err := svc.BuildOrder(in, "entry@crane.local", authz.RoleDataEntry)
		if err != nil {
			t.Fatalf("BuildOrder: %v", err)
		}
		if o.IncentiveAmount != nil || o.IncentiveAddedBy != nil {
			t.Error("incentive from data_entry must be ignored")
		}
	})

	t.Run("admin incentive attributed", func(t *testing.T) {
		in := validCashInput()
		in.IncentiveAmount = models.NewAmount(500)
		in.IncentiveReason = "night job"

		o, err := svc.BuildOrder(in, "admin@crane.local", authz.RoleAdmin)
		if err != nil {
			t.Fatalf("BuildOrder: %v", err)
		}
		if o.IncentiveAmount == nil || *o.IncentiveAmount != 500 {
			t.Fatalf("incentive_amount = %v, want 500", o.IncentiveAmount)
		}
		if o.IncentiveAddedBy == nil || *o.IncentiveAddedBy != "admin@crane.local" {
			t.Errorf("incentive_added_by = %v, want admin email", o.IncentiveAddedBy)
		}
		if o.IncentiveAddedAt == nil {
			t.Error("incentive_added_at must be stamped")
		}
	})

	t.Run("non-positive incentive rejected", func(t *testing.T) {
		in := validCashInput()
		in.IncentiveAmount = models.NewAmount(0)
		if _, err := svc.BuildOrder(in, "admin@crane.local", authz.RoleAdmin); err != ErrIncentiveInvalid {
			t.Errorf("BuildOrder = %v, want ErrIncentiveInvalid", err)
		}
	})
}

func f64(v float64) *float64 { return &v }

func TestRevenue(t *testing.T) {
	rate := &models.Rate{BaseRate: 2000, BaseDistanceKm: 40, RatePerKmBeyond: 50}

	tests := []struct {
		name  string
		order *models.Order
		rate  *models.Rate
		want  float64
	}{
		{"cash billed amount", &models.Order{OrderType: models.OrderTypeCash, AmountReceived: f64(3500)}, nil, 3500},
		{"cash without amount", &models.Order{OrderType: models.OrderTypeCash}, nil, 0},
		{"company under base distance", &models.Order{OrderType: models.OrderTypeCompany, KmsTravelled: f64(25)}, rate, 2000},
		{"company at base distance", &models.Order{OrderType: models.OrderTypeCompany, KmsTravelled: f64(40)}, rate, 2000},
		{"company beyond base distance", &models.Order{OrderType: models.OrderTypeCompany, KmsTravelled: f64(100)}, rate, 2000 + 60*50},
		{"company without kms", &models.Order{OrderType: models.OrderTypeCompany}, rate, 2000},
		{"company without rate", &models.Order{OrderType: models.OrderTypeCompany, KmsTravelled: f64(100)}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Revenue(tt.order, tt.rate); got != tt.want {
				t.Errorf("Revenue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpenses(t *testing.T) {
	o := &models.Order{
		Toll:            f64(300),
		DieselCost:      f64(1200),
		CareOffAmount:   f64(200),
		IncentiveAmount: f64(500),
	}
	if got := Expenses(o); got != 2200 {
		t.Errorf("Expenses() = %v, want 2200", got)
	}
	if got := Expenses(&models.Order{}); got != 0 {
		t.Errorf("Expenses(empty) = %v, want 0", got)
	}
}

func TestSanitizeForRole(t *testing.T) {
	build := func() *models.Order {
		return &models.Order{
			IncentiveAmount:  f64(500),
			IncentiveReason:  strPtr("night job"),
			IncentiveAddedBy: strPtr("admin@crane.local"),
		}
	}

	o := SanitizeForRole(build(), authz.RoleDataEntry)
	if o.IncentiveAmount != nil || o.IncentiveReason != nil || o.IncentiveAddedBy != nil {
		t.Error("data_entry must not see the incentive block")
	}

	for _, role := range []string{authz.RoleAdmin, authz.RoleSuperAdmin} {
		o := SanitizeForRole(build(), role)
		if o.IncentiveAmount == nil {
			t.Errorf("%s should see the incentive block", role)
		}
	}
}

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name  string
		order *models.Order
		want  float64
	}{
		{"billed minus advance", &models.Order{AmountReceived: f64(5000), AdvanceAmount: f64(2000)}, 3000},
		{"no advance", &models.Order{AmountReceived: f64(5000)}, 5000},
		{"overpaid clamps to zero", &models.Order{AmountReceived: f64(1000), AdvanceAmount: f64(1500)}, 0},
		{"nothing billed", &models.Order{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outstanding(tt.order); got != tt.want {
				t.Errorf("Outstanding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateInputErrorMessageNamesField(t *testing.T) {
	in := validCompanyInput()
	in.TowingVehicle = ""
	err := ValidateInput(in)
	if err == nil || !strings.Contains(err.Error(), "towing_vehicle") {
		t.Errorf("error = %v, want mention of towing_vehicle", err)
	}
}
