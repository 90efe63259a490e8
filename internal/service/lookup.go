package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var (
	// ErrCodeNotFound means the code matches neither a participant nor a
	// team. Distinct from ErrNotRegistered: the remediation differs
	// (re-scan vs contact an organizer).
	ErrCodeNotFound  = errors.New("no participant or team with this code")
	ErrNotRegistered = errors.New("not registered for this event")
	ErrRoundNotFound = repository.ErrRoundNotFound
)

type LookupEventRepository interface {
	FindRound(ctx context.Context, eventID uint, number int) (domain.Round, error)
	IsUserRegistered(ctx context.Context, eventID, userID uint) (bool, error)
	IsTeamRegistered(ctx context.Context, eventID, teamID uint) (bool, error)
}

type LookupTeamRepository interface {
	FindByCode(ctx context.Context, code string) (domain.Team, error)
}

type LookupCheckInRepository interface {
	FindByRoundAndUsers(ctx context.Context, roundID uint, userIDs []uint) ([]domain.CheckInRecord, error)
}

type LookupService struct {
	users    UserRepository
	teams    LookupTeamRepository
	events   LookupEventRepository
	checkins LookupCheckInRepository
}

func NewLookupService(users UserRepository, teams LookupTeamRepository, events LookupEventRepository, checkins LookupCheckInRepository) *LookupService {
	return &LookupService{
		users:    users,
		teams:    teams,
		events:   events,
		checkins: checkins,
	}
}

// Lookup resolves a validated code against a round. The code space is
// shared between users and teams; the user namespace is consulted first
// and the mode is only known from the result.
func (s *LookupService) Lookup(ctx context.Context, eventID uint, roundNo int, code string) (domain.LookupResult, error) {
	round, err := s.events.FindRound(ctx, eventID, roundNo)
	if err != nil {
		if errors.Is(err, repository.ErrRoundNotFound) {
			return domain.LookupResult{}, ErrRoundNotFound
		}

		return domain.LookupResult{}, fmt.Errorf("s.events.FindRound -> %w", err)
	}

	user, err := s.users.FindByCode(ctx, code)
	switch {
	case err == nil:
		return s.soloResult(ctx, round, user)
	case errors.Is(err, repository.ErrUserNotFound):
		return s.teamResult(ctx, round, code)
	default:
		return domain.LookupResult{}, fmt.Errorf("s.users.FindByCode -> %w", err)
	}
}

func (s *LookupService) soloResult(ctx context.Context, round domain.Round, user domain.User) (domain.LookupResult, error) {
	registered, err := s.events.IsUserRegistered(ctx, round.EventID, user.ID)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("s.events.IsUserRegistered -> %w", err)
	}
	if !registered {
		return domain.LookupResult{}, ErrNotRegistered
	}

	records, err := s.checkins.FindByRoundAndUsers(ctx, round.ID, []uint{user.ID})
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("s.checkins.FindByRoundAndUsers -> %w", err)
	}

	return domain.LookupResult{
		Mode: domain.LookupSolo,
		Solo: &domain.RosterEntry{
			User:      user,
			Eligible:  user.EligibleForCheckIn(),
			CheckedIn: len(records) > 0,
		},
	}, nil
}

func (s *LookupService) teamResult(ctx context.Context, round domain.Round, code string) (domain.LookupResult, error) {
	team, err := s.teams.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return domain.LookupResult{}, ErrCodeNotFound
		}

		return domain.LookupResult{}, fmt.Errorf("s.teams.FindByCode -> %w", err)
	}

	registered, err := s.events.IsTeamRegistered(ctx, round.EventID, team.ID)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("s.events.IsTeamRegistered -> %w", err)
	}
	if !registered {
		return domain.LookupResult{}, ErrNotRegistered
	}

	memberIDs := make([]uint, len(team.Members))
	for i, m := range team.Members {
		memberIDs[i] = m.ID
	}

	records, err := s.checkins.FindByRoundAndUsers(ctx, round.ID, memberIDs)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("s.checkins.FindByRoundAndUsers -> %w", err)
	}
	checkedIn := make(map[uint]bool, len(records))
	for _, rec := range records {
		checkedIn[rec.UserID] = true
	}

	members := make([]domain.RosterEntry, len(team.Members))
	for i, m := range team.Members {
		members[i] = domain.RosterEntry{
			User:      m,
			Eligible:  m.EligibleForCheckIn(),
			CheckedIn: checkedIn[m.ID],
		}
	}

	return domain.LookupResult{
		Mode: domain.LookupTeam,
		Team: &domain.TeamLookup{
			TeamID:   team.ID,
			TeamCode: team.Code,
			Name:     team.Name,
			Members:  members,
		},
	}, nil
}
