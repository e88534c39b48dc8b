package services

import (
	"errors"
	"strings"
	"time"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/priyathamsetti1/aditya-foods/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles customer and restaurant logins plus device token
// sessions. Customers authenticate by numeric user id; the device token is
// how a phone re-enters a session without retyping credentials.
type AuthService struct {
	DB        *gorm.DB
	UserRepo  *repository.UserRepository
	TokenRepo *repository.TokenRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(db *gorm.DB, ur *repository.UserRepository, tr *repository.TokenRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, UserRepo: ur, TokenRepo: tr, jwtSecret: secret, jwtTTL: ttl}
}

var ErrInvalidCredentials = errors.New("invalid credentials")

func (s *AuthService) Register(name, phone, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || password == "" {
		return nil, validation("name and password are required")
	}
	if phone != "" {
		count, err := s.UserRepo.CountByPhone(phone)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, validation("phone number already registered")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Name:        name,
		PhoneNumber: phone,
		Password:    string(hashed),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(userID uint, password string) (string, *entity.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, "customer", s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

func (s *AuthService) AdminLogin(adminID uint, password string) (string, *entity.Admin, error) {
	admin, err := s.UserRepo.FindAdminByID(adminID)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.ID, "admin", s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, admin, nil
}

// ---------------- Device token sessions ----------------

// VerifyDeviceToken resolves a stored device token back to its owner and
// issues a fresh API token, so a known device skips the login screen.
func (s *AuthService) VerifyDeviceToken(token string) (*entity.DeviceToken, string, error) {
	if strings.TrimSpace(token) == "" {
		return nil, "", validation("token is required")
	}
	dt, err := s.TokenRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}

	var jwtToken string
	switch {
	case dt.UserID != nil:
		jwtToken, err = utils.GenerateToken(*dt.UserID, "customer", s.jwtSecret, s.jwtTTL)
	case dt.AdminID != nil:
		jwtToken, err = utils.GenerateToken(*dt.AdminID, "admin", s.jwtSecret, s.jwtTTL)
	default:
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return dt, jwtToken, nil
}

func (s *AuthService) StoreToken(userID, adminID *uint, token string) error {
	if strings.TrimSpace(token) == "" {
		return validation("token is required")
	}
	if (userID == nil) == (adminID == nil) {
		return validation("exactly one of user_id or admin_id is required")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.TokenRepo.Store(tx, token, userID, adminID)
	})
}

func (s *AuthService) DeleteToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return validation("token is required")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.TokenRepo.DeleteByToken(tx, token)
	})
}
