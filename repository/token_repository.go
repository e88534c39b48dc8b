package repository

import (
	"errors"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"gorm.io/gorm"
)

type TokenRepository struct{ DB *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{DB: db} }

// Store registers a device token for a user or an admin. A token already
// known moves to its new owner, so a device that logs in as someone else
// stops receiving the previous account's pushes.
func (r *TokenRepository) Store(tx *gorm.DB, token string, userID, adminID *uint) error {
	var existing entity.DeviceToken
	err := tx.Where("token = ?", token).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&entity.DeviceToken{Token: token, UserID: userID, AdminID: adminID}).Error
	}
	if err != nil {
		return err
	}
	existing.UserID = userID
	existing.AdminID = adminID
	return tx.Save(&existing).Error
}

func (r *TokenRepository) FindByToken(token string) (*entity.DeviceToken, error) {
	var t entity.DeviceToken
	if err := r.DB.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) DeleteByToken(tx *gorm.DB, token string) error {
	return tx.Where("token = ?", token).Delete(&entity.DeviceToken{}).Error
}

func (r *TokenRepository) TokensForAdmin(adminID uint) ([]string, error) {
	var tokens []string
	err := r.DB.Model(&entity.DeviceToken{}).
		Where("admin_id = ?", adminID).
		Pluck("token", &tokens).Error
	return tokens, err
}
