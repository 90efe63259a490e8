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
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamCodeExists    = errors.New("team code already taken")
	ErrAlreadyTeamMember = errors.New("user is already a member of this team")
)

type Team struct {
	ID uint `gorm:"primaryKey"`

	Code     string `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
	LeaderID uint   `gorm:"not null"`

	Members []User `gorm:"many2many:team_members;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Create(&team)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Team{}, ErrTeamCodeExists
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).Preload("Members").First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByCode(ctx context.Context, code string) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).Preload("Members").First(&team, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) AddMember(ctx context.Context, teamID, userID uint) error {
	team := Team{ID: teamID}
	user := User{ID: userID}

	var count int64
	d.db.WithContext(ctx).Table("team_members").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count)
	if count > 0 {
		return ErrAlreadyTeamMember
	}

	if err := d.db.WithContext(ctx).Model(&team).Association("Members").Append(&user); err != nil {
		return err
	}

	return nil
}

func (d *TeamDAO) RemoveMember(ctx context.Context, teamID, userID uint) error {
	team := Team{ID: teamID}
	user := User{ID: userID}

	return d.db.WithContext(ctx).Model(&team).Association("Members").Delete(&user)
}
