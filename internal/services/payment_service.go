package services

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"crane-backend/internal/config"
	"crane-backend/internal/models"
)

var (
	ErrPaymentsNotConfigured = errors.New("payment gateway is not configured")
	ErrNothingOutstanding    = errors.New("order has no outstanding balance")
	ErrNotCashOrder          = errors.New("payment links apply to cash orders only")
)

// PaymentLink is the response for a created link.
type PaymentLink struct {
	OrderID  string  `json:"order_id"`
	LinkID   string  `json:"link_id"`
	ShortURL string  `json:"short_url"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

type PaymentService struct {
	client *razorpay.Client
	orders *OrderService
}

func NewPaymentService(cfg *config.Config, orders *OrderService) *PaymentService {
	s := &PaymentService{orders: orders}
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		s.client = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	}
	return s
}

// Outstanding is what the customer still owes on a cash order: the billed
// amount minus any advance already collected.
func Outstanding(o *models.Order) float64 {
	var billed, advance float64
	if o.AmountReceived != nil {
		billed = *o.AmountReceived
	}
	if o.AdvanceAmount != nil {
		advance = *o.AdvanceAmount
	}
	due := billed - advance
	if due < 0 {
		return 0
	}
	return due
}

// CreatePaymentLink creates a Razorpay payment link for a cash order's
// outstanding balance.
func (s *PaymentService) CreatePaymentLink(ctx context.Context, orderID string) (*PaymentLink, error) {
	if s.client == nil {
		return nil, ErrPaymentsNotConfigured
	}

	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OrderType != models.OrderTypeCash {
		return nil, ErrNotCashOrder
	}
	due := Outstanding(o)
	if due <= 0 {
		return nil, ErrNothingOutstanding
	}

	// Razorpay amounts are in paise.
	data := map[string]interface{}{
		"amount":      int64(due * 100),
		"currency":    "INR",
		"description": fmt.Sprintf("Towing service for %s", o.CustomerName),
		"reference_id": o.ID,
		"customer": map[string]interface{}{
			"name":    o.CustomerName,
			"contact": o.Phone,
		},
		"notify": map[string]interface{}{
			"sms": true,
		},
	}

	link, err := s.client.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, err
	}

	result := &PaymentLink{
		OrderID:  o.ID,
		Amount:   due,
		Currency: "INR",
	}
	if id, ok := link["id"].(string); ok {
		result.LinkID = id
	}
	if url, ok := link["short_url"].(string); ok {
		result.ShortURL = url
	}
	if status, ok := link["status"].(string); ok {
		result.Status = status
	}
	return result, nil
}
