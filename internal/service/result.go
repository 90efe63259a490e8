package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

type RoundResultRepository interface {
	AssignToUser(ctx context.Context, roundID, userID uint, outcome domain.RoundOutcome) error
	AssignToTeam(ctx context.Context, roundID, teamID uint, outcome domain.RoundOutcome) error
}

type ResultService struct {
	users   UserRepository
	teams   CheckInTeamRepository
	events  LookupEventRepository
	results RoundResultRepository
}

func NewResultService(users UserRepository, teams CheckInTeamRepository, events LookupEventRepository, results RoundResultRepository) *ResultService {
	return &ResultService{
		users:   users,
		teams:   teams,
		events:  events,
		results: results,
	}
}

// AssignBulk applies a batch of round outcomes with per-item error
// isolation: every item is validated and persisted independently, and a
// bad item never aborts the rest. The consolidated report says exactly
// which inputs landed and why the others did not. Re-submitting an item
// overwrites the previous outcome (last write wins).
func (s *ResultService) AssignBulk(ctx context.Context, eventID uint, roundNo int, items []domain.ResultAssignment) (domain.BulkOperationResult, error) {
	round, err := s.events.FindRound(ctx, eventID, roundNo)
	if err != nil {
		if errors.Is(err, repository.ErrRoundNotFound) {
			return domain.BulkOperationResult{}, ErrRoundNotFound
		}

		return domain.BulkOperationResult{}, fmt.Errorf("s.events.FindRound -> %w", err)
	}

	report := domain.BulkOperationResult{Attempted: len(items)}
	for _, item := range items {
		switch {
		case item.UserCode != "" && item.TeamCode != "":
			report.UserErrors = append(report.UserErrors, domain.ItemError{
				Code:   item.UserCode,
				Reason: "item names both a participant and a team",
			})
		case item.UserCode != "":
			s.assignToUser(ctx, round, item, &report)
		case item.TeamCode != "":
			s.assignToTeam(ctx, round, item, &report)
		default:
			report.UserErrors = append(report.UserErrors, domain.ItemError{
				Reason: "item names neither a participant nor a team",
			})
		}
	}

	report.Succeeded = len(report.Successes)

	return report, nil
}

func (s *ResultService) assignToUser(ctx context.Context, round domain.Round, item domain.ResultAssignment, report *domain.BulkOperationResult) {
	fail := func(reason string) {
		report.UserErrors = append(report.UserErrors, domain.ItemError{Code: item.UserCode, Reason: reason})
	}

	if !domain.ValidOutcome(string(item.Outcome)) {
		fail(fmt.Sprintf("unknown outcome %q", item.Outcome))
		return
	}

	// Codes are stored uppercase; accept lowercase or padded input.
	code, err := identifier.Normalize(item.UserCode)
	if err != nil {
		fail("malformed participant code")
		return
	}

	user, err := s.users.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fail("no participant with this code")
			return
		}
		fail("lookup failed: " + err.Error())
		return
	}

	registered, err := s.events.IsUserRegistered(ctx, round.EventID, user.ID)
	if err != nil {
		fail("registration check failed: " + err.Error())
		return
	}
	if !registered {
		fail("not registered for this event")
		return
	}

	if err := s.results.AssignToUser(ctx, round.ID, user.ID, item.Outcome); err != nil {
		fail("could not record result: " + err.Error())
		return
	}

	report.Successes = append(report.Successes, code)
}

func (s *ResultService) assignToTeam(ctx context.Context, round domain.Round, item domain.ResultAssignment, report *domain.BulkOperationResult) {
	fail := func(reason string) {
		report.TeamErrors = append(report.TeamErrors, domain.ItemError{Code: item.TeamCode, Reason: reason})
	}

	if !domain.ValidOutcome(string(item.Outcome)) {
		fail(fmt.Sprintf("unknown outcome %q", item.Outcome))
		return
	}

	code, err := identifier.Normalize(item.TeamCode)
	if err != nil {
		fail("malformed team code")
		return
	}

	team, err := s.teams.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			fail("no team with this code")
			return
		}
		fail("lookup failed: " + err.Error())
		return
	}

	registered, err := s.events.IsTeamRegistered(ctx, round.EventID, team.ID)
	if err != nil {
		fail("registration check failed: " + err.Error())
		return
	}
	if !registered {
		fail("not registered for this event")
		return
	}

	if err := s.results.AssignToTeam(ctx, round.ID, team.ID, item.Outcome); err != nil {
		fail("could not record result: " + err.Error())
		return
	}

	report.Successes = append(report.Successes, code)
}
