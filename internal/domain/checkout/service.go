// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/cart"
	"github.com/your-org/mattress-storefront/internal/domain/order"
	"github.com/your-org/mattress-storefront/internal/pkg/money"
)

// Recorder receives placed orders
type Recorder interface {
	OrderPlaced(totalCents int64)
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced(int64) {}

// Service handles checkout business logic
type Service struct {
	carts    *cart.Service
	config   *config.Config
	validate *validator.Validate
	logger   *logrus.Entry
	recorder Recorder
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now, used for order dates and card expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new checkout service
func NewService(carts *cart.Service, cfg *config.Config, logger *logrus.Logger, recorder Recorder, opts ...Option) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	s := &Service{
		carts:    carts,
		config:   cfg,
		logger:   logger.WithField("component", "checkout"),
		recorder: recorder,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = newValidator(func() time.Time { return s.now() })
	return s
}

// Summary prices items: subtotal, shipping, tax on the subtotal and total
func (s *Service) Summary(items []cart.LineItem) (PricingSummary, error) {
	subtotal, err := cart.CartTotal(items)
	if err != nil {
		return PricingSummary{}, fmt.Errorf("%w: %v", ErrUnpriceableCart, err)
	}

	shipping := s.config.Checkout.ShippingCost
	tax := money.ApplyRate(subtotal, s.config.Checkout.TaxRate)

	return PricingSummary{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		FreeShipping: shipping == 0,
		TaxAmount:    tax,
		TaxRate:      s.config.Checkout.TaxRate.String(),
		TotalAmount:  subtotal + shipping + tax,
		Currency:     s.config.Checkout.Currency,
	}, nil
}

// GetCheckoutSummary returns the session cart with its pricing
func (s *Service) GetCheckoutSummary(ctx context.Context, sessionID string) (*Summary, error) {
	store, err := s.carts.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := store.State()
	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}

	pricing, err := s.Summary(state.Items)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Cart:    cart.BuildResponse(sessionID, state),
		Pricing: pricing,
		Steps:   Steps,
	}, nil
}

// ValidateStep checks one step of the form. input must be the step's type.
func (s *Service) ValidateStep(step Step, input interface{}) error {
	switch step {
	case StepContact:
		if _, ok := input.(*ContactInfo); !ok {
			return fmt.Errorf("%w: %s expects contact info", ErrUnknownStep, step)
		}
	case StepShipping:
		if _, ok := input.(*ShippingInfo); !ok {
			return fmt.Errorf("%w: %s expects shipping info", ErrUnknownStep, step)
		}
	case StepPayment:
		if _, ok := input.(*PaymentInfo); !ok {
			return fmt.Errorf("%w: %s expects payment info", ErrUnknownStep, step)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}

	if err := s.validate.Struct(input); err != nil {
		return toValidationError(step, err)
	}
	return nil
}

// PlaceOrder validates every step, prices the cart, builds the confirmation
// and clears the cart. Payment is simulated and the order is not persisted.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req *PlaceOrderRequest) (*order.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationError("", err)
	}

	store, err := s.carts.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := store.State()
	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}

	pricing, err := s.Summary(state.Items)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	placed := &order.Order{
		OrderNumber:    order.GenerateOrderNumber(now),
		Status:         order.StatusConfirmed,
		Currency:       pricing.Currency,
		Items:          make([]order.Item, 0, len(state.Items)),
		SubtotalAmount: pricing.Subtotal,
		ShippingAmount: pricing.ShippingCost,
		TaxAmount:      pricing.TaxAmount,
		TotalAmount:    pricing.TotalAmount,
		Email:          req.Contact.Email,
		Phone:          req.Contact.Phone,
		ShippingAddress: order.Address{
			FirstName: req.Shipping.FirstName,
			LastName:  req.Shipping.LastName,
			Address:   req.Shipping.Address,
			Apartment: req.Shipping.Apartment,
			City:      req.Shipping.City,
			State:     req.Shipping.State,
			ZipCode:   req.Shipping.ZipCode,
		},
		Payment: order.Payment{
			CardholderName: req.Payment.CardName,
			CardLast4:      order.Last4(req.Payment.CardNumber),
		},
		CreatedAt: now,
	}

	for _, item := range state.Items {
		// Summary already priced every line
		unit, _ := cart.UnitPrice(item)
		placed.Items = append(placed.Items, order.Item{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Size:      item.Size,
			SizeLabel: item.Size.Label(),
			Quantity:  item.Quantity,
			UnitPrice: unit,
			LineTotal: unit * int64(item.Quantity),
		})
	}

	store.Clear(ctx)
	s.recorder.OrderPlaced(placed.TotalAmount)

	s.logger.WithFields(logrus.Fields{
		"session_id":   sessionID,
		"order_number": placed.OrderNumber,
		"items":        placed.ItemCount(),
		"total":        placed.TotalAmount,
	}).Info("Order placed")

	return placed, nil
}
