package services

import (
	"context"
	"testing"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderFixture(t *testing.T) (*OrderService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := testDB(t)
	notifier := &recordingNotifier{}
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewCatalogRepository(db),
		notifier,
	)
	return svc, db, notifier
}

func placeOrderReq(adminID uint) *PlaceOrderReq {
	return &PlaceOrderReq{
		Items: []PlaceOrderItemIn{
			{ID: 1, Name: "Masala Dosa", Quantity: 2, Price: 5000},
			{ID: 2, Name: "Veg Biryani", Quantity: 1, Price: 10000},
		},
		TotalAmount: 21000,
		AdminID:     adminID,
		PaymentID:   "pay_client_1",
	}
}

func TestPlaceOrder(t *testing.T) {
	svc, db, notifier := newOrderFixture(t)
	admin, dosa, _ := seedRestaurant(t, db)
	fillCart(t, db, 1, admin.ID, dosa)

	out, err := svc.PlaceOrder(context.Background(), 1, placeOrderReq(admin.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(21000), out.Total)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order, out.ID).Error)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "pay_client_1", order.PaymentID)
	assert.Equal(t, int64(20000), order.Subtotal)
	assert.Len(t, order.OTP, 6)
	assert.Len(t, order.Items, 2)

	// The submission clears the cart for that restaurant too.
	assert.Empty(t, cartLines(t, db, 1, admin.ID))
	assert.Len(t, notifier.orders, 1)
}

func TestPlaceOrderAcceptsSubtotalOnlyAmount(t *testing.T) {
	svc, db, _ := newOrderFixture(t)
	admin, _, _ := seedRestaurant(t, db)

	// Older clients report the amount without the platform fee folded in.
	req := placeOrderReq(admin.ID)
	req.TotalAmount = 20000
	out, err := svc.PlaceOrder(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, int64(21000), out.Total)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, db, _ := newOrderFixture(t)
	admin, _, _ := seedRestaurant(t, db)

	var verr *ValidationError

	req := placeOrderReq(admin.ID)
	req.Items = nil
	_, err := svc.PlaceOrder(context.Background(), 1, req)
	assert.ErrorAs(t, err, &verr)

	req = placeOrderReq(admin.ID)
	req.PaymentID = ""
	_, err = svc.PlaceOrder(context.Background(), 1, req)
	assert.ErrorAs(t, err, &verr)

	req = placeOrderReq(admin.ID)
	req.TotalAmount = 12345
	_, err = svc.PlaceOrder(context.Background(), 1, req)
	assert.ErrorAs(t, err, &verr)

	req = placeOrderReq(admin.ID)
	req.Items[0].Quantity = 0
	_, err = svc.PlaceOrder(context.Background(), 1, req)
	assert.ErrorAs(t, err, &verr)

	req = placeOrderReq(9999)
	_, err = svc.PlaceOrder(context.Background(), 1, req)
	assert.ErrorAs(t, err, &verr)
}

func TestPlaceOrderRejectsMismatchedUser(t *testing.T) {
	svc, db, _ := newOrderFixture(t)
	admin, _, _ := seedRestaurant(t, db)

	req := placeOrderReq(admin.ID)
	req.UserID = 2
	_, err := svc.PlaceOrder(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPlaceOrderDedupesByPaymentID(t *testing.T) {
	svc, db, notifier := newOrderFixture(t)
	admin, _, _ := seedRestaurant(t, db)

	first, err := svc.PlaceOrder(context.Background(), 1, placeOrderReq(admin.ID))
	require.NoError(t, err)

	second, err := svc.PlaceOrder(context.Background(), 1, placeOrderReq(admin.ID))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Len(t, notifier.orders, 1, "a replay must not re-notify")
}

func TestListForCallerScoping(t *testing.T) {
	svc, db, _ := newOrderFixture(t)
	admin, _, _ := seedRestaurant(t, db)
	other := entity.Admin{Name: "Other Kitchen", Password: "x"}
	require.NoError(t, db.Create(&other).Error)

	req := placeOrderReq(admin.ID)
	_, err := svc.PlaceOrder(context.Background(), 1, req)
	require.NoError(t, err)

	req2 := placeOrderReq(other.ID)
	req2.PaymentID = "pay_client_2"
	_, err = svc.PlaceOrder(context.Background(), 2, req2)
	require.NoError(t, err)

	mine, err := svc.ListForCaller(1, "customer")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(1), mine[0].UserID)

	restaurant, err := svc.ListForCaller(other.ID, "admin")
	require.NoError(t, err)
	require.Len(t, restaurant, 1)
	assert.Equal(t, other.ID, restaurant[0].AdminID)

	none, err := svc.ListForCaller(42, "customer")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderDetailOwnership(t *testing.T) {
	svc, db, _ := newOrderFixture(t)
	admin, _, _ := seedRestaurant(t, db)

	out, err := svc.PlaceOrder(context.Background(), 1, placeOrderReq(admin.ID))
	require.NoError(t, err)

	got, err := svc.Detail(1, "customer", out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	_, err = svc.Detail(2, "customer", out.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Detail(admin.ID+1, "admin", out.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Detail(1, "customer", 9999)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
