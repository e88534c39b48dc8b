package repository

import (
	"errors"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByIdempotencyKey(key string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").Where("idempotency_key = ?", key).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByPaymentID(paymentID string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").Where("payment_id = ?", paymentID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListForAdmin(adminID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").
		Where("admin_id = ?", adminID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// ---------------- Fulfillment guards ----------------

// MarkVerified stamps a pending order as OTP-verified. Guarded so a
// completed or cancelled order can never become verifiable again.
func (r *OrderRepository) MarkVerified(tx *gorm.DB, orderID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, entity.OrderStatusPending).
		Update("otp_verified_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CompleteGuard transitions pending -> completed, but only after a
// successful OTP verification. Zero rows means unverified, already
// completed, or a concurrent transition won.
func (r *OrderRepository) CompleteGuard(tx *gorm.DB, orderID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND otp_verified_at IS NOT NULL", orderID, entity.OrderStatusPending).
		Update("status", entity.OrderStatusCompleted)
	return res.RowsAffected, res.Error
}

var ErrOrderNotFound = errors.New("order not found")
