package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrAlreadyCheckedIn = errors.New("user is already checked in for this round")

type CheckIn struct {
	ID uint `gorm:"primaryKey"`

	RoundID uint  `gorm:"not null;uniqueIndex:idx_round_user"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_round_user"`
	TeamID  *uint

	CheckedInBy uint      `gorm:"not null"`
	CheckedInAt time.Time `gorm:"not null"`
}

type CheckInDAO struct {
	db *gorm.DB
}

func NewCheckInDAO(db *gorm.DB) *CheckInDAO {
	return &CheckInDAO{
		db: db,
	}
}

// Insert writes one check-in record. The unique index on (round_id,
// user_id) is the idempotence guarantee: a concurrent or repeated
// check-in for the same user surfaces as ErrAlreadyCheckedIn and never
// creates a second row.
func (d *CheckInDAO) Insert(ctx context.Context, record CheckIn) (CheckIn, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return CheckIn{}, ErrAlreadyCheckedIn
		}

		return CheckIn{}, result.Error
	}

	return record, nil
}

func (d *CheckInDAO) FindByRoundAndUsers(ctx context.Context, roundID uint, userIDs []uint) ([]CheckIn, error) {
	var records []CheckIn

	result := d.db.WithContext(ctx).
		Where("round_id = ? AND user_id IN ?", roundID, userIDs).
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
