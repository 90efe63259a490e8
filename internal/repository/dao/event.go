package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrRoundNotFound     = errors.New("round not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string
	Venue       string
	StartsAt    time.Time `gorm:"not null"`
	TeamEvent   bool      `gorm:"not null;default:false"`

	Rounds []Round `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Round struct {
	ID uint `gorm:"primaryKey"`

	EventID uint   `gorm:"not null;uniqueIndex:idx_event_round"`
	Number  int    `gorm:"not null;uniqueIndex:idx_event_round"`
	Name    string `gorm:"not null"`
}

// Registration ties a user (solo) or a team to an event. Exactly one of
// UserID and TeamID is set.
type Registration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:idx_event_user;uniqueIndex:idx_event_team"`
	UserID  *uint `gorm:"uniqueIndex:idx_event_user"`
	TeamID  *uint `gorm:"uniqueIndex:idx_event_team"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Preload("Rounds").Order("starts_at").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("Rounds").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindRound(ctx context.Context, eventID uint, number int) (Round, error) {
	var round Round

	result := d.db.WithContext(ctx).First(&round, "event_id = ? AND number = ?", eventID, number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Round{}, ErrRoundNotFound
		}

		return Round{}, result.Error
	}

	return round, nil
}

func (d *EventDAO) InsertRegistration(ctx context.Context, reg Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&reg)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Registration{}, ErrAlreadyRegistered
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

// IsUserRegistered reports whether the user is covered by a registration
// for the event, either solo or through a registered team.
func (d *EventDAO) IsUserRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	if count > 0 {
		return true, nil
	}

	result = d.db.WithContext(ctx).Model(&Registration{}).
		Joins("JOIN team_members ON team_members.team_id = registrations.team_id").
		Where("registrations.event_id = ? AND team_members.user_id = ?", eventID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// IsTeamRegistered reports whether the team itself holds a registration
// for the event.
func (d *EventDAO) IsTeamRegistered(ctx context.Context, eventID, teamID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("event_id = ? AND team_id = ?", eventID, teamID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
