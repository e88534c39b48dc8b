package services

import (
	"errors"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"gorm.io/gorm"
)

// FulfillmentService is the admin-side handoff check: verify the customer's
// OTP, then complete the order. Verify and Complete stay two calls for the
// existing console, but Complete is unreachable without a recorded Verify.
type FulfillmentService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
}

func NewFulfillmentService(db *gorm.DB, repo *repository.OrderRepository) *FulfillmentService {
	return &FulfillmentService{DB: db, Repo: repo}
}

// Verify compares the supplied OTP against the order's issued code. The
// match is exact: no trimming, no case folding. A mismatch is a clean false,
// not an error, and leaves the order untouched.
func (s *FulfillmentService) Verify(adminID, orderID uint, suppliedOtp string) (bool, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, repository.ErrOrderNotFound
		}
		return false, err
	}
	if o.AdminID != adminID {
		return false, ErrForbidden
	}
	if o.Status != entity.OrderStatusPending {
		return false, ErrInvalidTransition
	}
	if suppliedOtp == "" || o.OTP != suppliedOtp {
		return false, nil
	}

	var stamped bool
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.MarkVerified(tx, orderID)
		stamped = ok
		return err
	})
	if err != nil {
		return false, err
	}
	if !stamped {
		// Lost a race with a completion or cancellation.
		return false, ErrInvalidTransition
	}
	return true, nil
}

// Complete transitions pending -> completed. Only a verified order can pass
// the guard; everything else is reported precisely so the console can tell
// "re-verify" apart from "retry completion".
func (s *FulfillmentService) Complete(adminID, orderID uint) error {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrOrderNotFound
		}
		return err
	}
	if o.AdminID != adminID {
		return ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.CompleteGuard(tx, orderID)
		if err != nil {
			return err
		}
		if affected == 0 {
			if o.Status != entity.OrderStatusPending {
				return ErrInvalidTransition
			}
			return ErrNotVerified
		}
		return nil
	})
}
