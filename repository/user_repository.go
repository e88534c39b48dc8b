package repository

import (
	"github.com/priyathamsetti1/aditya-foods/entity"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByPhone(phone string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("phone_number = ?", phone).Count(&cnt).Error
	return cnt, err
}

// ---------------- Admins (restaurant accounts) ----------------

func (r *UserRepository) FindAdminByID(id uint) (*entity.Admin, error) {
	var a entity.Admin
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
