package services

import (
	"context"
	"errors"
	"time"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/priyathamsetti1/aditya-foods/utils"
	"gorm.io/gorm"
)

// OrderService covers the read side of orders plus the legacy place-order
// contract, where the mobile client has already charged the customer and
// submits the receipt.
type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	CartRepo    *repository.CartRepository
	CatalogRepo *repository.CatalogRepository
	Notifier    OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	catalogRepo *repository.CatalogRepository,
	notifier OrderNotifier,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, CatalogRepo: catalogRepo, Notifier: notifier}
}

// ----- DTOs from Controller -----

type PlaceOrderItemIn struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // minor units
}

type PlaceOrderReq struct {
	Items       []PlaceOrderItemIn `json:"items"`
	TotalAmount int64              `json:"totalAmount"`
	OrderDate   time.Time          `json:"orderDate"`
	Status      string             `json:"status"`
	UserID      uint               `json:"user_id"`
	AdminID     uint               `json:"admin_id"`
	PaymentID   string             `json:"payment_id"`
}

type PlaceOrderRes struct {
	ID    uint  `json:"id"`
	Total int64 `json:"total"`
}

// PlaceOrder persists an order for a payment that was captured client-side.
// The server is still the authority: items are required, the amount must add
// up, the status is forced to pending, the OTP is issued here, and the cart
// is cleared in the same transaction as the order write.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderReq) (*PlaceOrderRes, error) {
	if len(req.Items) == 0 {
		return nil, validation("items is required")
	}
	if req.PaymentID == "" {
		return nil, validation("payment_id is required")
	}
	if req.UserID != 0 && req.UserID != userID {
		return nil, ErrForbidden
	}

	ok, err := s.CatalogRepo.RestaurantExists(req.AdminID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validation("restaurant not found")
	}

	var subtotal int64
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, validation("item %d has non-positive quantity", it.ID)
		}
		subtotal += it.Price * int64(it.Quantity)
	}
	// The client reports what it believes it charged; accept it with or
	// without the platform fee folded in, reject anything else.
	if req.TotalAmount != subtotal && req.TotalAmount != subtotal+PlatformFee {
		return nil, validation("totalAmount %d does not match items", req.TotalAmount)
	}

	// A retried submission with the same payment id must not create a
	// second order.
	if existing, err := s.Repo.GetByPaymentID(req.PaymentID); err == nil {
		return &PlaceOrderRes{ID: existing.ID, Total: existing.Total}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	order := entity.Order{
		Subtotal:    subtotal,
		PlatformFee: PlatformFee,
		Total:       subtotal + PlatformFee,
		UserID:      userID,
		AdminID:     req.AdminID,
		PaymentID:   req.PaymentID,
		Status:      entity.OrderStatusPending,
		OTP:         otp,
		OrderDate:   orderDate,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, it := range req.Items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				FoodItemID: it.ID,
				Name:       it.Name,
				UnitPrice:  it.Price,
				Quantity:   it.Quantity,
				Total:      it.Price * int64(it.Quantity),
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return s.CartRepo.Clear(tx, userID, req.AdminID)
	})
	if err != nil {
		return nil, &OrderNotRecordedError{PaymentID: req.PaymentID, Err: err}
	}

	if s.Notifier != nil {
		s.Notifier.NotifyNewOrder(context.WithoutCancel(ctx), &order)
	}

	return &PlaceOrderRes{ID: order.ID, Total: order.Total}, nil
}

// ----- List & Detail -----

// ListForCaller scopes the order list server-side: customers see their own
// orders, admins their restaurant's. Nobody gets the whole table.
func (s *OrderService) ListForCaller(callerID uint, role string) ([]entity.Order, error) {
	if role == "admin" {
		return s.Repo.ListForAdmin(callerID)
	}
	return s.Repo.ListForUser(callerID)
}

func (s *OrderService) Detail(callerID uint, role string, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, err
	}
	if role == "admin" {
		if o.AdminID != callerID {
			return nil, ErrForbidden
		}
	} else if o.UserID != callerID {
		return nil, ErrForbidden
	}
	return o, nil
}
