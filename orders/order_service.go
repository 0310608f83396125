package orders

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/catalog"
	"github.com/taskcart/taskcart/payments"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentFailed     = errors.New("payment failed")
)

const defaultCurrency = "usd"

// Line is a requested quantity of a product, before pricing.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Service places orders: it resolves each product by explicit lookup, prices
// the order server-side and delegates the charge to the payment gateway.
type Service struct {
	repo     Repo
	products catalog.Repo
	charger  payments.Charger
	currency string
	nowTime  func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithCurrency sets the currency passed to the gateway.
func WithCurrency(currency string) ServiceOption {
	return func(s *Service) {
		s.currency = currency
	}
}

func NewService(repo Repo, products catalog.Repo, charger payments.Charger, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[orders.NewService] orders repo is required")
	}
	if products == nil {
		return nil, errors.New("[orders.NewService] products repo is required")
	}
	if charger == nil {
		return nil, errors.New("[orders.NewService] charger is required")
	}

	service := &Service{
		repo:     repo,
		products: products,
		charger:  charger,
		currency: defaultCurrency,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Place prices the requested lines against the catalog and charges the card
// token for the total. A paid order decrements the stock of every line; a
// declined charge still records the order, marked failed, and returns
// ErrPaymentFailed.
func (s *Service) Place(ctx context.Context, accountID string, lines []Line, cardToken string) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]Item, 0, len(lines))
	resolved := make([]*catalog.Product, 0, len(lines))
	var total int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrEmptyOrder
		}
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, ErrUnknownProduct
			}
			return nil, errors.Wrap(err, "[Service.Place] products.Get")
		}
		if product.Stock < line.Quantity {
			return nil, ErrInsufficientStock
		}
		items = append(items, Item{
			ProductID:      product.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		resolved = append(resolved, product)
		total += product.PriceCents * int64(line.Quantity)
	}

	order := &Order{
		AccountID:  accountID,
		Items:      items,
		TotalCents: total,
		Status:     StatusPending,
		CreatedAt:  s.nowTime(),
	}

	charge, chargeErr := s.charger.CreateCharge(ctx, total, s.currency, cardToken)
	if chargeErr != nil {
		if errors.Is(chargeErr, payments.ErrChargeDeclined) {
			order.Status = StatusFailed
			if err := s.repo.Create(ctx, order); err != nil {
				return nil, errors.Wrap(err, "[Service.Place] record failed order")
			}
			return nil, ErrPaymentFailed
		}
		return nil, errors.Wrap(chargeErr, "[Service.Place] CreateCharge")
	}

	// Stock only moves on a successful charge; declined attempts leave the
	// catalog untouched.
	for i, product := range resolved {
		product.Stock -= items[i].Quantity
		if err := s.products.Update(ctx, product); err != nil {
			return nil, errors.Wrap(err, "[Service.Place] update stock")
		}
	}

	order.Status = StatusPaid
	order.ChargeID = charge.ID
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "[Service.Place] Create")
	}
	return order, nil
}

// Get returns an order only to the account that placed it.
func (s *Service) Get(ctx context.Context, accountID, orderID string) (*Order, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, ErrNotFound
	}
	return order, nil
}

// List returns the account's orders, oldest first.
func (s *Service) List(ctx context.Context, accountID string) ([]*Order, error) {
	return s.repo.ListByAccount(ctx, accountID)
}
