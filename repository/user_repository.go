package repository

import (
	"time"

	"github.com/Deji-py/eco-rider/entity"

	"gorm.io/gorm"
)

// UserRepository only talks to the users table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(userID uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetOTP stores a fresh email verification code with its expiry.
func (r *UserRepository) SetOTP(userID uint, code string, expiresAt time.Time) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]any{"otp_code": code, "otp_expires_at": expiresAt}).Error
}

// ClearOTP wipes the pending code after a successful verify.
func (r *UserRepository) ClearOTP(userID uint, verified bool) error {
	updates := map[string]any{"otp_code": "", "otp_expires_at": nil}
	if verified {
		updates["email_verified"] = true
	}
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *UserRepository) SetPassword(userID uint, hashed string) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Update("password", hashed).Error
}
