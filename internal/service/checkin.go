package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var (
	ErrUnknownParticipant    = errors.New("unknown participant code")
	ErrIneligibleParticipant = errors.New("participant is not eligible for check-in")
	ErrNoUsersToCheckIn      = errors.New("cannot check in zero participants")
	ErrTeamNotFound          = repository.ErrTeamNotFound
)

type CheckInRepository interface {
	Create(ctx context.Context, record domain.CheckInRecord) (domain.CheckInRecord, error)
	FindByRoundAndUsers(ctx context.Context, roundID uint, userIDs []uint) ([]domain.CheckInRecord, error)
}

type CheckInTeamRepository interface {
	FindByCode(ctx context.Context, code string) (domain.Team, error)
}

type CheckInService struct {
	users    UserRepository
	teams    CheckInTeamRepository
	events   LookupEventRepository
	checkins CheckInRepository
}

func NewCheckInService(users UserRepository, teams CheckInTeamRepository, events LookupEventRepository, checkins CheckInRepository) *CheckInService {
	return &CheckInService{
		users:    users,
		teams:    teams,
		events:   events,
		checkins: checkins,
	}
}

// CheckIn marks the given participants as present for a round, stamped
// with the acting operator. The client pre-filters the set, but nothing
// it sends is trusted: unknown, ineligible and unregistered codes fail
// the call here. A participant who is already checked in is a per-item
// conflict, not a failure: the rest of the set still goes through and
// the conflict is reported in the summary.
func (s *CheckInService) CheckIn(ctx context.Context, eventID uint, roundNo int, operatorID uint, userCodes []string, teamCode *string) (domain.CheckInSummary, error) {
	if len(userCodes) == 0 {
		return domain.CheckInSummary{}, ErrNoUsersToCheckIn
	}

	// Codes are stored uppercase; scanner output may be lowercase or padded.
	codes := make([]string, len(userCodes))
	for i, raw := range userCodes {
		code, err := identifier.Normalize(raw)
		if err != nil {
			return domain.CheckInSummary{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, raw)
		}
		codes[i] = code
	}
	if teamCode != nil {
		code, err := identifier.Normalize(*teamCode)
		if err != nil {
			return domain.CheckInSummary{}, ErrTeamNotFound
		}
		teamCode = &code
	}

	round, err := s.events.FindRound(ctx, eventID, roundNo)
	if err != nil {
		if errors.Is(err, repository.ErrRoundNotFound) {
			return domain.CheckInSummary{}, ErrRoundNotFound
		}

		return domain.CheckInSummary{}, fmt.Errorf("s.events.FindRound -> %w", err)
	}

	var teamID *uint
	if teamCode != nil {
		team, err := s.teams.FindByCode(ctx, *teamCode)
		if err != nil {
			if errors.Is(err, repository.ErrTeamNotFound) {
				return domain.CheckInSummary{}, ErrTeamNotFound
			}

			return domain.CheckInSummary{}, fmt.Errorf("s.teams.FindByCode -> %w", err)
		}
		teamID = &team.ID
	}

	users, err := s.users.FindByCodes(ctx, codes)
	if err != nil {
		return domain.CheckInSummary{}, fmt.Errorf("s.users.FindByCodes -> %w", err)
	}
	byCode := make(map[string]domain.User, len(users))
	for _, u := range users {
		byCode[u.Code] = u
	}

	for _, code := range codes {
		user, ok := byCode[code]
		if !ok {
			return domain.CheckInSummary{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, code)
		}
		if !user.EligibleForCheckIn() {
			return domain.CheckInSummary{}, fmt.Errorf("%w: %s", ErrIneligibleParticipant, code)
		}

		registered, err := s.events.IsUserRegistered(ctx, eventID, user.ID)
		if err != nil {
			return domain.CheckInSummary{}, fmt.Errorf("s.events.IsUserRegistered -> %w", err)
		}
		if !registered {
			return domain.CheckInSummary{}, fmt.Errorf("%w: %s", ErrNotRegistered, code)
		}
	}

	now := time.Now()
	summary := domain.CheckInSummary{TeamCode: teamCode}
	for _, code := range codes {
		user := byCode[code]

		_, err := s.checkins.Create(ctx, domain.CheckInRecord{
			RoundID:     round.ID,
			UserID:      user.ID,
			TeamID:      teamID,
			CheckedInBy: operatorID,
			CheckedInAt: now,
		})
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyCheckedIn) {
				summary.AlreadyCheckedIn = append(summary.AlreadyCheckedIn, code)
				continue
			}

			return domain.CheckInSummary{}, fmt.Errorf("s.checkins.Create -> %w", err)
		}

		summary.CheckedIn = append(summary.CheckedIn, code)
	}

	summary.Message = fmt.Sprintf("checked in %d of %d participants", len(summary.CheckedIn), len(codes))

	return summary, nil
}
