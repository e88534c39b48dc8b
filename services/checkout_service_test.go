package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/pkg/razorpay"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	orders []*entity.Order
}

func (n *recordingNotifier) NotifyNewOrder(_ context.Context, o *entity.Order) {
	n.orders = append(n.orders, o)
}

func authorizedGateway(paymentID string) gatewayFunc {
	return func(context.Context, int64, razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		return &razorpay.AuthorizeResult{PaymentID: paymentID}, nil
	}
}

func newCheckoutFixture(t *testing.T, gw PaymentGateway) (*CheckoutService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := testDB(t)
	notifier := &recordingNotifier{}
	svc := NewCheckoutService(
		db,
		repository.NewCartRepository(db),
		repository.NewOrderRepository(db),
		NewPaymentAdapter(gw, time.Second),
		notifier,
	)
	return svc, db, notifier
}

func fillCart(t *testing.T, db *gorm.DB, userID, adminID uint, items ...entity.FoodItem) {
	t.Helper()
	cartSvc := NewCartService(db, repository.NewCartRepository(db), repository.NewCatalogRepository(db))
	for _, it := range items {
		require.NoError(t, cartSvc.Add(userID, &AddToCartIn{RestaurantID: adminID, ItemID: it.ID, Quantity: 1}))
	}
}

func TestCheckoutAuthorizedPersistsOrderAndClearsCart(t *testing.T) {
	svc, db, notifier := newCheckoutFixture(t, authorizedGateway("pay_ok_1"))
	admin, dosa, biryani := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa, biryani)

	res, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
	require.NoError(t, err)
	assert.Equal(t, StateOrderPersisted, res.State)
	assert.True(t, res.State.IsTerminal())
	assert.Equal(t, int64(21000), res.Total)
	assert.Equal(t, "pay_ok_1", res.PaymentID)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order, res.OrderID).Error)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "pay_ok_1", order.PaymentID)
	assert.Equal(t, int64(20000), order.Subtotal)
	assert.Equal(t, int64(21000), order.Total)
	assert.Len(t, order.OTP, 6)
	require.Len(t, order.Items, 2)

	assert.Empty(t, cartLines(t, db, 1, admin.ID))
	require.Len(t, notifier.orders, 1)
	assert.Equal(t, order.ID, notifier.orders[0].ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, db, _ := newCheckoutFixture(t, authorizedGateway("pay_never"))
	admin, _, _ := seedRestaurant(t, db)

	_, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
	assert.ErrorIs(t, err, ErrCartEmpty)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutCancelledLeavesCartIntact(t *testing.T) {
	gw := gatewayFunc(func(context.Context, int64, razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		return &razorpay.AuthorizeResult{Declined: true, Reason: "Payment process was cancelled"}, nil
	})
	svc, db, notifier := newCheckoutFixture(t, gw)
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	res, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
	assert.ErrorIs(t, err, ErrPaymentCancelled)
	assert.Equal(t, StatePaymentRejected, res.State)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Len(t, cartLines(t, db, 1, admin.ID), 1)
	assert.Empty(t, notifier.orders)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	gw := gatewayFunc(func(context.Context, int64, razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		return nil, errors.New("connection refused")
	})
	svc, db, _ := newCheckoutFixture(t, gw)
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	res, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
	var pfe *PaymentFailedError
	require.ErrorAs(t, err, &pfe)
	assert.Equal(t, StateSubmissionFailed, res.State)
	assert.Len(t, cartLines(t, db, 1, admin.ID), 1)
}

func TestCheckoutDoubleSubmitGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	gw := gatewayFunc(func(context.Context, int64, razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		close(entered)
		<-release
		return &razorpay.AuthorizeResult{PaymentID: "pay_slow"}, nil
	})
	svc, db, _ := newCheckoutFixture(t, gw)
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
		done <- err
	}()

	<-entered
	_, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(release)
	require.NoError(t, <-done)

	// Exactly one order despite two submissions.
	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCheckoutIdempotencyKeyReplay(t *testing.T) {
	calls := 0
	gw := gatewayFunc(func(context.Context, int64, razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		calls++
		return &razorpay.AuthorizeResult{PaymentID: "pay_once"}, nil
	})
	svc, db, _ := newCheckoutFixture(t, gw)
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	key := uuid.NewString()
	first, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID, IdempotencyKey: key})
	require.NoError(t, err)

	second, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID, IdempotencyKey: key})
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.PaymentID, second.PaymentID)
	assert.Equal(t, 1, calls, "replay must not charge again")

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCheckoutIdempotencyLookupFailureAborts(t *testing.T) {
	calls := 0
	gw := gatewayFunc(func(context.Context, int64, razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		calls++
		return &razorpay.AuthorizeResult{PaymentID: "pay_unreachable"}, nil
	})
	svc, db, _ := newCheckoutFixture(t, gw)
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	// The replay check cannot answer; charging anyway could double-charge.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID, IdempotencyKey: uuid.NewString()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, calls, "gateway must not be called when the replay lookup fails")
}

func TestCheckoutPriceLockedAgainstCartMutation(t *testing.T) {
	svc, db, _ := newCheckoutFixture(t, nil)
	admin, dosa, biryani := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	// Cart grows mid-payment; the charge and the order must not see it.
	var charged int64
	svc.Adapter = NewPaymentAdapter(gatewayFunc(func(_ context.Context, amount int64, _ razorpay.Payer) (*razorpay.AuthorizeResult, error) {
		charged = amount
		fillCart(t, db, 1, admin.ID, biryani)
		return &razorpay.AuthorizeResult{PaymentID: "pay_locked"}, nil
	}), time.Second)

	res, err := svc.Checkout(context.Background(), 1, &CheckoutIn{RestaurantID: admin.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), charged)
	assert.Equal(t, int64(9000), res.Total)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order, res.OrderID).Error)
	require.Len(t, order.Items, 1)
	assert.Equal(t, dosa.ID, order.Items[0].FoodItemID)

	// Only the line added mid-payment survives the atomic clear.
	lines := cartLines(t, db, 1, admin.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, biryani.ID, lines[0].FoodItemID)
}

func TestCheckoutSurvivesAbandonedRequest(t *testing.T) {
	svc, db, _ := newCheckoutFixture(t, authorizedGateway("pay_abandoned"))
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	// The caller walked away, but the charge was dispatched.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Checkout(ctx, 1, &CheckoutIn{RestaurantID: admin.ID})
	require.NoError(t, err)
	assert.Equal(t, StateOrderPersisted, res.State)

	var order entity.Order
	require.NoError(t, db.First(&order, res.OrderID).Error)
	assert.Equal(t, "pay_abandoned", order.PaymentID)
}
