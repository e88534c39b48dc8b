package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/pkg/razorpay"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/priyathamsetti1/aditya-foods/utils"
	"gorm.io/gorm"
)

// CheckoutState tracks one checkout attempt. The order of the middle states
// is fixed: a price is locked before the gateway is called, and an order is
// only written against that locked price.
type CheckoutState string

const (
	StateIdle             CheckoutState = "IDLE"
	StatePriceLocked      CheckoutState = "PRICE_LOCKED"
	StatePaymentPending   CheckoutState = "PAYMENT_PENDING"
	StateOrderPersisted   CheckoutState = "ORDER_PERSISTED"
	StatePaymentRejected  CheckoutState = "PAYMENT_REJECTED"
	StateSubmissionFailed CheckoutState = "SUBMISSION_FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == StateOrderPersisted || s == StatePaymentRejected || s == StateSubmissionFailed
}

func (s CheckoutState) String() string { return string(s) }

// OrderNotifier fans a freshly persisted order out to the restaurant.
// Failures are the notifier's problem; checkout never rolls back for them.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, order *entity.Order)
}

// CheckoutService runs the cart-to-order flow: lock the price, charge it,
// persist the order and clear the cart atomically.
type CheckoutService struct {
	DB        *gorm.DB
	CartRepo  *repository.CartRepository
	OrderRepo *repository.OrderRepository
	Adapter   *PaymentAdapter
	Notifier  OrderNotifier

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo *repository.CartRepository,
	orderRepo *repository.OrderRepository,
	adapter *PaymentAdapter,
	notifier OrderNotifier,
) *CheckoutService {
	return &CheckoutService{
		DB:        db,
		CartRepo:  cartRepo,
		OrderRepo: orderRepo,
		Adapter:   adapter,
		Notifier:  notifier,
		inflight:  make(map[string]struct{}),
	}
}

type CheckoutIn struct {
	RestaurantID   uint           `json:"restaurantId" binding:"required"`
	Payer          razorpay.Payer `json:"payer"`
	IdempotencyKey string         `json:"idempotencyKey"`
}

type CheckoutResult struct {
	State     CheckoutState `json:"state"`
	OrderID   uint          `json:"id"`
	Total     int64         `json:"total"`
	PaymentID string        `json:"payment_id"`
}

// acquire claims the single checkout slot for (user, restaurant).
func (s *CheckoutService) acquire(userID, restaurantID uint) (release func(), ok bool) {
	key := fmt.Sprintf("%d:%d", userID, restaurantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, false
	}
	s.inflight[key] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}, true
}

// Checkout runs one attempt of the submission state machine. A second call
// for the same user and restaurant while one is pending gets
// ErrCheckoutInProgress instead of a second charge.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, in *CheckoutIn) (*CheckoutResult, error) {
	release, ok := s.acquire(userID, in.RestaurantID)
	if !ok {
		return nil, ErrCheckoutInProgress
	}
	defer release()

	// A replayed idempotency key returns the order it already produced. If
	// the lookup itself fails we must not proceed: charging past an unknown
	// replay state risks a double charge.
	if in.IdempotencyKey != "" {
		existing, err := s.OrderRepo.GetByIdempotencyKey(in.IdempotencyKey)
		if err == nil {
			return &CheckoutResult{
				State:     StateOrderPersisted,
				OrderID:   existing.ID,
				Total:     existing.Total,
				PaymentID: existing.PaymentID,
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// Idle -> PriceLocked: snapshot the cart and its breakdown. Mutations
	// after this point cannot change what gets charged.
	items, err := s.CartRepo.Items(userID, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	locked := Price(items)

	// PriceLocked -> PaymentPending. The gateway call is detached from the
	// request context: if the user abandons the attempt after the charge is
	// dispatched, an Authorized result must still land as an order.
	state := StatePaymentPending
	payCtx := context.WithoutCancel(ctx)
	outcome, err := s.Adapter.Authorize(payCtx, locked.Total, in.Payer)
	if err != nil {
		return nil, err
	}

	switch outcome.Status {
	case PaymentCancelled:
		state = StatePaymentRejected
		log.Printf("checkout rejected for user %d: %s", userID, outcome.Reason)
		return &CheckoutResult{State: state}, ErrPaymentCancelled
	case PaymentFailed:
		state = StateSubmissionFailed
		log.Printf("checkout failed for user %d: %s", userID, outcome.Reason)
		return &CheckoutResult{State: state}, &PaymentFailedError{Reason: outcome.Reason}
	}

	// Authorized: persist the order and clear the cart in one transaction,
	// so the cart can never be emptied ahead of a durable order write.
	order, err := s.persistOrder(userID, in, items, locked, outcome.PaymentID)
	if err != nil {
		state = StateSubmissionFailed
		return &CheckoutResult{State: state, PaymentID: outcome.PaymentID},
			&OrderNotRecordedError{PaymentID: outcome.PaymentID, Err: err}
	}
	state = StateOrderPersisted

	if s.Notifier != nil {
		s.Notifier.NotifyNewOrder(context.WithoutCancel(ctx), order)
	}

	return &CheckoutResult{
		State:     state,
		OrderID:   order.ID,
		Total:     order.Total,
		PaymentID: order.PaymentID,
	}, nil
}

func (s *CheckoutService) persistOrder(
	userID uint,
	in *CheckoutIn,
	items []entity.CartItem,
	locked PriceBreakdown,
	paymentID string,
) (*entity.Order, error) {
	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	var idemKey *string
	if in.IdempotencyKey != "" {
		idemKey = &in.IdempotencyKey
	}

	order := entity.Order{
		Subtotal:       locked.Subtotal,
		PlatformFee:    locked.PlatformFee,
		Total:          locked.Total,
		UserID:         userID,
		AdminID:        in.RestaurantID,
		PaymentID:      paymentID,
		IdempotencyKey: idemKey,
		Status:         entity.OrderStatusPending,
		OTP:            otp,
		OrderDate:      time.Now().UTC(),
	}

	// Clear exactly the lines that were charged. Anything added to the cart
	// while payment was in flight stays.
	lineIDs := make([]uint, 0, len(items))
	for _, it := range items {
		lineIDs = append(lineIDs, it.ID)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.OrderRepo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, it := range items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				FoodItemID: it.FoodItemID,
				Name:       it.ItemName,
				UnitPrice:  it.UnitPrice,
				Quantity:   it.Quantity,
				Total:      it.UnitPrice * int64(it.Quantity),
			}
			if err := s.OrderRepo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return s.CartRepo.RemoveLines(tx, lineIDs)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
