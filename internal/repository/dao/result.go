package dao

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoundResult holds the outcome assigned to one user or one team for one
// round. Re-submitting the same (round, subject) overwrites the status:
// last write wins, no history is kept.
type RoundResult struct {
	ID uint `gorm:"primaryKey"`

	RoundID uint  `gorm:"not null;uniqueIndex:idx_round_result_user;uniqueIndex:idx_round_result_team"`
	UserID  *uint `gorm:"uniqueIndex:idx_round_result_user"`
	TeamID  *uint `gorm:"uniqueIndex:idx_round_result_team"`

	Status string `gorm:"not null"`
}

type RoundResultDAO struct {
	db *gorm.DB
}

func NewRoundResultDAO(db *gorm.DB) *RoundResultDAO {
	return &RoundResultDAO{
		db: db,
	}
}

func (d *RoundResultDAO) UpsertForUser(ctx context.Context, roundID, userID uint, status string) error {
	record := RoundResult{RoundID: roundID, UserID: &userID, Status: status}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "round_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&record)

	return result.Error
}

func (d *RoundResultDAO) UpsertForTeam(ctx context.Context, roundID, teamID uint, status string) error {
	record := RoundResult{RoundID: roundID, TeamID: &teamID, Status: status}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "round_id"}, {Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&record)

	return result.Error
}

func (d *RoundResultDAO) FindByRound(ctx context.Context, roundID uint) ([]RoundResult, error) {
	var records []RoundResult

	result := d.db.WithContext(ctx).Where("round_id = ?", roundID).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
