package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var ErrAlreadyTeamMember = repository.ErrAlreadyTeamMember

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindByCode(ctx context.Context, code string) (domain.Team, error)
	AddMember(ctx context.Context, teamID, userID uint) error
	RemoveMember(ctx context.Context, teamID, userID uint) error
}

type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{
		repo: repo,
	}
}

// CreateTeam allocates a team code and enrolls the creator as leader and
// first member.
func (s *TeamService) CreateTeam(ctx context.Context, name string, leaderID uint) (domain.Team, error) {
	team := domain.Team{
		Name:     name,
		LeaderID: leaderID,
	}

	var created domain.Team
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		team.Code = identifier.New()

		created, err = s.repo.Create(ctx, team)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrTeamCodeExists) {
			continue
		}

		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	if err != nil {
		return domain.Team{}, errors.New("could not allocate a unique team code")
	}

	if err := s.repo.AddMember(ctx, created.ID, leaderID); err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return s.GetTeam(ctx, created.ID)
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return team, nil
}

func (s *TeamService) GetTeamByCode(ctx context.Context, code string) (domain.Team, error) {
	// Codes are stored uppercase; accept lowercase or padded input.
	code, err := identifier.Normalize(code)
	if err != nil {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	team, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	return team, nil
}

// JoinTeam adds the user to the team identified by code.
func (s *TeamService) JoinTeam(ctx context.Context, code string, userID uint) (domain.Team, error) {
	code, err := identifier.Normalize(code)
	if err != nil {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	team, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	if err := s.repo.AddMember(ctx, team.ID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyTeamMember) {
			return domain.Team{}, ErrAlreadyTeamMember
		}

		return domain.Team{}, fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return s.GetTeam(ctx, team.ID)
}

func (s *TeamService) LeaveTeam(ctx context.Context, teamID, userID uint) error {
	if err := s.repo.RemoveMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	return nil
}
