package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"crane-backend/internal/authz"
	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrRateNotFound     = errors.New("no rate configured for this firm, company and service type")
	ErrIncentiveInvalid = errors.New("incentive amount must be positive")
)

type OrderService struct {
	Repo     *repositories.OrderRepository
	RateRepo *repositories.RateRepository
}

func NewOrderService(repo *repositories.OrderRepository, rateRepo *repositories.RateRepository) *OrderService {
	return &OrderService{Repo: repo, RateRepo: rateRepo}
}

// ValidateInput enforces the required fields. Company orders need the billing
// and dispatch fields that cash walk-ins don't.
func ValidateInput(in *models.OrderInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return models.ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return models.ValidationError{Field: "phone", Message: "phone is required"}
	}
	switch in.OrderType {
	case models.OrderTypeCash:
	case models.OrderTypeCompany:
		if strings.TrimSpace(in.CompanyName) == "" {
			return models.ValidationError{Field: "company_name", Message: "company name is required for company orders"}
		}
		if strings.TrimSpace(in.ServiceType) == "" {
			return models.ValidationError{Field: "service_type", Message: "service type is required for company orders"}
		}
		if strings.TrimSpace(in.DriverName) == "" {
			return models.ValidationError{Field: "driver_name", Message: "driver name is required for company orders"}
		}
		if strings.TrimSpace(in.TowingVehicle) == "" {
			return models.ValidationError{Field: "towing_vehicle", Message: "towing vehicle is required for company orders"}
		}
	default:
		return models.ValidationError{Field: "order_type", Message: "order type must be cash or company"}
	}

	for field, amt := range map[string]models.Amount{
		"kms_travelled":   in.KmsTravelled,
		"toll":            in.Toll,
		"diesel_cost":     in.DieselCost,
		"amount_received": in.AmountReceived,
		"advance_amount":  in.AdvanceAmount,
		"care_off_amount": in.CareOffAmount,
	} {
		if amt.IsSet() && amt.Float() < 0 {
			return models.ValidationError{Field: field, Message: "cannot be negative"}
		}
	}
	return nil
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// BuildOrder turns a validated input into a storable order. Fields belonging
// to the other order variant are dropped, and the incentive block is only
// honored for admins, stamped with who granted it.
func (s *OrderService) BuildOrder(in *models.OrderInput, actorEmail, actorRole string) (*models.Order, error) {
	o := &models.Order{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		OrderType:    in.OrderType,
		CreatedBy:    actorEmail,

		TripFrom:             strPtr(in.TripFrom),
		TripTo:               strPtr(in.TripTo),
		VehicleName:          strPtr(in.VehicleName),
		VehicleNumber:        strPtr(in.VehicleNumber),
		ServiceType:          strPtr(in.ServiceType),
		TowingVehicle:        strPtr(in.TowingVehicle),
		DriverName:           strPtr(in.DriverName),
		KmsTravelled:         in.KmsTravelled.Ptr(),
		Toll:                 in.Toll.Ptr(),
		DieselCost:           in.DieselCost.Ptr(),
		DieselRefillLocation: strPtr(in.DieselRefillLocation),
	}

	if in.DateTime.IsSet() {
		o.DateTime = *in.DateTime.Ptr()
	} else {
		o.DateTime = time.Now().UTC()
	}

	switch o.OrderType {
	case models.OrderTypeCash:
		o.AmountReceived = in.AmountReceived.Ptr()
		o.AdvanceAmount = in.AdvanceAmount.Ptr()
		o.CareOff = strPtr(in.CareOff)
		o.CareOffAmount = in.CareOffAmount.Ptr()
	case models.OrderTypeCompany:
		o.NameOfFirm = strPtr(in.NameOfFirm)
		o.CompanyName = strPtr(in.CompanyName)
		o.CaseIDFileNumber = strPtr(in.CaseIDFileNumber)
		o.ReachTime = in.ReachTime.Ptr()
		o.DropTime = in.DropTime.Ptr()
	}

	if in.IncentiveAmount.IsSet() && authz.Can(actorRole, authz.ActionSetIncentive) {
		if in.IncentiveAmount.Float() <= 0 {
			return nil, ErrIncentiveInvalid
		}
		o.IncentiveAmount = in.IncentiveAmount.Ptr()
		o.IncentiveReason = strPtr(in.IncentiveReason)
		o.IncentiveAddedBy = &actorEmail
		now := time.Now().UTC()
		o.IncentiveAddedAt = &now
	}

	return o, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, in *models.OrderInput, actorEmail, actorRole string) (*models.Order, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	o, err := s.BuildOrder(in, actorEmail, actorRole)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.Repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (s *OrderService) ListOrders(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	return s.Repo.List(ctx, f)
}

// UpdateOrder replaces an order's mutable fields with the input. Incentive
// changes from non-admins are ignored and the stored block kept as-is.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, in *models.OrderInput, actorEmail, actorRole string) (*models.Order, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	existing, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	o, err := s.BuildOrder(in, actorEmail, actorRole)
	if err != nil {
		return nil, err
	}
	o.ID = existing.ID
	o.UniqueID = existing.UniqueID
	o.CreatedBy = existing.CreatedBy
	o.CreatedAt = existing.CreatedAt

	if !authz.Can(actorRole, authz.ActionSetIncentive) || !in.IncentiveAmount.IsSet() {
		o.IncentiveAmount = existing.IncentiveAmount
		o.IncentiveReason = existing.IncentiveReason
		o.IncentiveAddedBy = existing.IncentiveAddedBy
		o.IncentiveAddedAt = existing.IncentiveAddedAt
	}

	if err := s.Repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOrderNotFound
	}
	return err
}

// BulkDelete removes each id in turn instead of failing the batch on the
// first miss. It reports which ids actually deleted so callers can audit
// them, plus a count of the ones that did not.
func (s *OrderService) BulkDelete(ctx context.Context, ids []string) (deleted []string, failed int) {
	for _, id := range ids {
		if err := s.Repo.Delete(ctx, id); err != nil {
			failed++
			continue
		}
		deleted = append(deleted, id)
	}
	return deleted, failed
}

func (s *OrderService) DeleteAll(ctx context.Context) (int64, error) {
	return s.Repo.DeleteAll(ctx)
}

// Revenue computes an order's revenue. Cash orders bill what was received;
// company orders bill from the configured rate:
// base_rate + max(0, kms - base_distance_km) * rate_per_km_beyond.
func Revenue(o *models.Order, rate *models.Rate) float64 {
	if o.OrderType == models.OrderTypeCash {
		if o.AmountReceived != nil {
			return *o.AmountReceived
		}
		return 0
	}
	if rate == nil {
		return 0
	}
	revenue := rate.BaseRate
	if o.KmsTravelled != nil && *o.KmsTravelled > rate.BaseDistanceKm {
		revenue += (*o.KmsTravelled - rate.BaseDistanceKm) * rate.RatePerKmBeyond
	}
	return revenue
}

// Expenses sums an order's direct costs: toll, diesel, care-off commission
// and incentive.
func Expenses(o *models.Order) float64 {
	var total float64
	for _, v := range []*float64{o.Toll, o.DieselCost, o.CareOffAmount, o.IncentiveAmount} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// Financials prices a single order. Company orders without a matching rate
// row return ErrRateNotFound so callers can surface the gap.
func (s *OrderService) Financials(ctx context.Context, id string) (*models.OrderFinancials, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	fin := &models.OrderFinancials{
		OrderID:   o.ID,
		OrderType: o.OrderType,
		Expenses:  Expenses(o),
	}

	if o.OrderType == models.OrderTypeCompany {
		rate, err := s.lookupRate(ctx, o)
		if err != nil {
			return nil, err
		}
		fin.RateApplied = rate
		fin.Revenue = Revenue(o, rate)
	} else {
		fin.Revenue = Revenue(o, nil)
	}
	fin.Profit = fin.Revenue - fin.Expenses
	return fin, nil
}

func (s *OrderService) lookupRate(ctx context.Context, o *models.Order) (*models.Rate, error) {
	var firm, company, service string
	if o.NameOfFirm != nil {
		firm = *o.NameOfFirm
	}
	if o.CompanyName != nil {
		company = *o.CompanyName
	}
	if o.ServiceType != nil {
		service = *o.ServiceType
	}
	rate, err := s.RateRepo.Lookup(ctx, firm, company, service)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRateNotFound
	}
	return rate, err
}

// SanitizeForRole hides the incentive block from data entry users. Mutates
// the order in place and returns it for chaining.
func SanitizeForRole(o *models.Order, role string) *models.Order {
	if authz.Can(role, authz.ActionViewFinancials) {
		return o
	}
	o.IncentiveAmount = nil
	o.IncentiveReason = nil
	o.IncentiveAddedBy = nil
	o.IncentiveAddedAt = nil
	return o
}
