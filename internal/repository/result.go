package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

type RoundResultDAO interface {
	UpsertForUser(ctx context.Context, roundID, userID uint, status string) error
	UpsertForTeam(ctx context.Context, roundID, teamID uint, status string) error
	FindByRound(ctx context.Context, roundID uint) ([]dao.RoundResult, error)
}

type RoundResultRepository struct {
	dao RoundResultDAO
}

func NewRoundResultRepository(dao RoundResultDAO) *RoundResultRepository {
	return &RoundResultRepository{
		dao: dao,
	}
}

func (r *RoundResultRepository) AssignToUser(ctx context.Context, roundID, userID uint, outcome domain.RoundOutcome) error {
	if err := r.dao.UpsertForUser(ctx, roundID, userID, string(outcome)); err != nil {
		return fmt.Errorf("r.dao.UpsertForUser -> %w", err)
	}

	return nil
}

func (r *RoundResultRepository) AssignToTeam(ctx context.Context, roundID, teamID uint, outcome domain.RoundOutcome) error {
	if err := r.dao.UpsertForTeam(ctx, roundID, teamID, string(outcome)); err != nil {
		return fmt.Errorf("r.dao.UpsertForTeam -> %w", err)
	}

	return nil
}
