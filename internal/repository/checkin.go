package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

var ErrAlreadyCheckedIn = dao.ErrAlreadyCheckedIn

type CheckInDAO interface {
	Insert(ctx context.Context, record dao.CheckIn) (dao.CheckIn, error)
	FindByRoundAndUsers(ctx context.Context, roundID uint, userIDs []uint) ([]dao.CheckIn, error)
}

type CheckInRepository struct {
	dao CheckInDAO
}

func NewCheckInRepository(dao CheckInDAO) *CheckInRepository {
	return &CheckInRepository{
		dao: dao,
	}
}

func (r *CheckInRepository) Create(ctx context.Context, record domain.CheckInRecord) (domain.CheckInRecord, error) {
	created, err := r.dao.Insert(ctx, dao.CheckIn{
		RoundID:     record.RoundID,
		UserID:      record.UserID,
		TeamID:      record.TeamID,
		CheckedInBy: record.CheckedInBy,
		CheckedInAt: record.CheckedInAt,
	})
	if err != nil {
		return domain.CheckInRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return checkInDaoToDomain(created), nil
}

func (r *CheckInRepository) FindByRoundAndUsers(ctx context.Context, roundID uint, userIDs []uint) ([]domain.CheckInRecord, error) {
	found, err := r.dao.FindByRoundAndUsers(ctx, roundID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRoundAndUsers -> %w", err)
	}

	records := make([]domain.CheckInRecord, len(found))
	for i, c := range found {
		records[i] = checkInDaoToDomain(c)
	}

	return records, nil
}

func checkInDaoToDomain(c dao.CheckIn) domain.CheckInRecord {
	return domain.CheckInRecord{
		ID:          c.ID,
		RoundID:     c.RoundID,
		UserID:      c.UserID,
		TeamID:      c.TeamID,
		CheckedInBy: c.CheckedInBy,
		CheckedInAt: c.CheckedInAt,
	}
}
