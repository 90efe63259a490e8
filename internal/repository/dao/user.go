package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserCodeExists  = errors.New("melinia code already taken")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Code  string `gorm:"uniqueIndex;not null"`
	Email string `gorm:"unique;not null"`

	Password  string `gorm:"not null"`
	FirstName string `gorm:"not null"`
	LastName  string

	Role          string `gorm:"not null;default:participant"`
	Status        string `gorm:"not null;default:ACTIVE"`
	PaymentStatus string `gorm:"not null;default:UNPAID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, "email") {
				return User{}, ErrUserEmailExists
			}
			return User{}, ErrUserCodeExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByCode(ctx context.Context, code string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByCodes(ctx context.Context, codes []string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("code IN ?", codes).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Search matches the query against code, email and name. Codes are exact,
// the rest is a case-insensitive substring match.
func (d *UserDAO) Search(ctx context.Context, query string, limit int) ([]User, error) {
	var users []User

	like := "%" + strings.ToLower(query) + "%"
	result := d.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(query)).
		Or("LOWER(email) LIKE ?", like).
		Or("LOWER(first_name || ' ' || last_name) LIKE ?", like).
		Limit(limit).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdatePaymentStatus(ctx context.Context, id uint, paymentStatus string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("payment_status", paymentStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
