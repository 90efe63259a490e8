package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

var (
	ErrTeamNotFound      = dao.ErrTeamNotFound
	ErrTeamCodeExists    = dao.ErrTeamCodeExists
	ErrAlreadyTeamMember = dao.ErrAlreadyTeamMember
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	FindByCode(ctx context.Context, code string) (dao.Team, error)
	AddMember(ctx context.Context, teamID, userID uint) error
	RemoveMember(ctx context.Context, teamID, userID uint) error
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{
		Code:     team.Code,
		Name:     team.Name,
		LeaderID: team.LeaderID,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return teamDaoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return teamDaoToDomain(found), nil
}

func (r *TeamRepository) FindByCode(ctx context.Context, code string) (domain.Team, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return teamDaoToDomain(found), nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uint) error {
	if err := r.dao.AddMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("r.dao.AddMember -> %w", err)
	}

	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uint) error {
	if err := r.dao.RemoveMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("r.dao.RemoveMember -> %w", err)
	}

	return nil
}

func teamDaoToDomain(t dao.Team) domain.Team {
	members := make([]domain.User, len(t.Members))
	for i, m := range t.Members {
		members[i] = userDaoToDomain(m)
	}

	return domain.Team{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		LeaderID:  t.LeaderID,
		Members:   members,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
