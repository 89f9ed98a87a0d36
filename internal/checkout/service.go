package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DragonsUnit/AeroCommerce/internal/orders"
	"github.com/DragonsUnit/AeroCommerce/internal/users"
	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
	"github.com/DragonsUnit/AeroCommerce/pkg/metrics"
	"github.com/DragonsUnit/AeroCommerce/pkg/outbox"
)

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CouponValidator resolves an optional coupon code for a user.
type CouponValidator interface {
	Validate(ctx context.Context, code string, userID uuid.UUID, isMember bool) (*models.Coupon, error)
}

// PlaceOrderInput is the validated checkout request.
type PlaceOrderInput struct {
	UserID        uuid.UUID
	AddressID     uuid.UUID
	Lines         []CartLine
	CouponCode    string
	PaymentMethod enums.PaymentMethod
	IsMember      bool
}

// PlacedOrder summarizes one created order.
type PlacedOrder struct {
	ID      uuid.UUID `json:"id"`
	StoreID uuid.UUID `json:"store_id"`
	Total   string    `json:"total"`
}

// Service splits a cart into per-store orders and persists them atomically.
type Service struct {
	tx       Transactor
	orders   orders.Repository
	users    *users.Repository
	catalog  Catalog
	coupons  CouponValidator
	outbox   *outbox.Service
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	checkout config.CheckoutConfig
}

func NewService(
	tx Transactor,
	ordersRepo orders.Repository,
	usersRepo *users.Repository,
	catalog Catalog,
	coupons CouponValidator,
	outboxSvc *outbox.Service,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
	cfg config.CheckoutConfig,
) *Service {
	return &Service{
		tx:       tx,
		orders:   ordersRepo,
		users:    usersRepo,
		catalog:  catalog,
		coupons:  coupons,
		outbox:   outboxSvc,
		metrics:  checkoutMetrics,
		logg:     logg,
		checkout: cfg,
	}
}

// PlaceOrder runs the whole checkout. Order rows, their items, the cart clear,
// and the outbox events commit in one transaction; any failure rolls
// everything back.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) ([]PlacedOrder, error) {
	started := time.Now()
	placed, err := s.placeOrder(ctx, input)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.ObserveDuration(outcome, time.Since(started))
	return placed, err
}

func (s *Service) placeOrder(ctx context.Context, input PlaceOrderInput) ([]PlacedOrder, error) {
	if input.UserID == uuid.Nil || input.AddressID == uuid.Nil || len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing order details")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	for _, line := range input.Lines {
		if line.ProductID == uuid.Nil || line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing order details")
		}
	}

	coupon, err := s.coupons.Validate(ctx, input.CouponCode, input.UserID, input.IsMember)
	if err != nil {
		s.metrics.IncCouponDenied(couponDenialReason(err))
		return nil, err
	}

	groups, storeOrder, err := GroupCartItems(ctx, s.catalog, input.Lines, s.checkout.MissingProductPolicy)
	if err != nil {
		return nil, err
	}
	if len(storeOrder) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no purchasable items in cart")
	}

	fee := s.checkout.ShippingFeeAmount()
	var placed []PlacedOrder

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.orders.WithTx(tx)
		usersRepo := s.users.WithTx(tx)

		shippingCharged := false
		for _, storeID := range storeOrder {
			items := groups[storeID]

			var discount *decimal.Decimal
			if coupon != nil {
				discount = &coupon.Discount
			}
			total, charged := PriceGroup(items, discount, input.IsMember, shippingCharged, fee)
			shippingCharged = charged

			order := &models.Order{
				ID:            uuid.New(),
				UserID:        input.UserID,
				StoreID:       storeID,
				AddressID:     input.AddressID,
				Total:         total,
				PaymentMethod: input.PaymentMethod,
				Status:        enums.OrderStatusPlaced,
				IsCouponUsed:  coupon != nil,
			}
			if coupon != nil {
				order.CouponID = &coupon.ID
			}
			if _, err := ordersRepo.CreateOrder(ctx, order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
			}

			rows := make([]models.OrderItem, 0, len(items))
			for _, item := range items {
				rows = append(rows, models.OrderItem{
					ID:        uuid.New(),
					OrderID:   order.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Price:     item.UnitPrice,
				})
			}
			if err := ordersRepo.CreateOrderItems(ctx, rows); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
			}

			if err := s.emitOrderPlaced(ctx, tx, order, len(rows)); err != nil {
				return err
			}

			placed = append(placed, PlacedOrder{
				ID:      order.ID,
				StoreID: storeID,
				Total:   total.StringFixed(2),
			})
		}

		if err := usersRepo.ClearCart(ctx, input.UserID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}
		if s.outbox != nil {
			err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventCartCleared,
				AggregateType: enums.AggregateUser,
				AggregateID:   input.UserID,
				Actor:         &outbox.ActorRef{UserID: input.UserID},
				Data:          outbox.CartClearedData{UserID: input.UserID},
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "queueing cart event")
			}
		}
		return nil
	})
	if err != nil {
		placed = nil
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "placing order")
	}

	s.metrics.IncOrdersPlaced(input.PaymentMethod.String(), len(placed))
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":     input.UserID.String(),
			"order_count": len(placed),
			"coupon_used": coupon != nil,
		})
		s.logg.Info(logCtx, "checkout completed")
	}
	return placed, nil
}

func (s *Service) emitOrderPlaced(ctx context.Context, tx *gorm.DB, order *models.Order, itemCount int) error {
	if s.outbox == nil {
		return nil
	}
	err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderPlaced,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: order.UserID},
		Data: outbox.OrderPlacedData{
			OrderID:       order.ID,
			UserID:        order.UserID,
			StoreID:       order.StoreID,
			Total:         order.Total.StringFixed(2),
			PaymentMethod: order.PaymentMethod.String(),
			ItemCount:     itemCount,
		},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "queueing order event")
	}
	return nil
}

func couponDenialReason(err error) string {
	appErr := pkgerrors.As(err)
	if appErr == nil {
		return "error"
	}
	switch appErr.Code() {
	case pkgerrors.CodeNotFound:
		return "not_found"
	case pkgerrors.CodeIneligible:
		return "ineligible"
	default:
		return "error"
	}
}

// ListOrders returns the user's order history, newest first.
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID) ([]orders.OrderView, error) {
	rows, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return orders.ToOrderViews(rows), nil
}
