package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrAlreadyRegistered = repository.ErrAlreadyRegistered
	ErrNotTeamLeader     = errors.New("only the team leader can register the team")
	ErrSoloOnlyEvent     = errors.New("this event does not take team registrations")
	ErrTeamOnlyEvent     = errors.New("this event only takes team registrations")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindRound(ctx context.Context, eventID uint, number int) (domain.Round, error)
	RegisterUser(ctx context.Context, eventID, userID uint) (domain.Registration, error)
	RegisterTeam(ctx context.Context, eventID, teamID uint) (domain.Registration, error)
	IsUserRegistered(ctx context.Context, eventID, userID uint) (bool, error)
	IsTeamRegistered(ctx context.Context, eventID, teamID uint) (bool, error)
}

type EventService struct {
	repo  EventRepository
	teams TeamRepository
}

func NewEventService(repo EventRepository, teams TeamRepository) *EventService {
	return &EventService{
		repo:  repo,
		teams: teams,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) RegisterSolo(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.TeamEvent {
		return domain.Registration{}, ErrTeamOnlyEvent
	}

	reg, err := s.repo.RegisterUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return domain.Registration{}, ErrAlreadyRegistered
		}

		return domain.Registration{}, fmt.Errorf("s.repo.RegisterUser -> %w", err)
	}

	return reg, nil
}

// RegisterTeam registers a whole team; only the leader may do it.
func (s *EventService) RegisterTeam(ctx context.Context, eventID, teamID, byUserID uint) (domain.Registration, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !event.TeamEvent {
		return domain.Registration{}, ErrSoloOnlyEvent
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}
	if team.LeaderID != byUserID {
		return domain.Registration{}, ErrNotTeamLeader
	}

	reg, err := s.repo.RegisterTeam(ctx, eventID, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return domain.Registration{}, ErrAlreadyRegistered
		}

		return domain.Registration{}, fmt.Errorf("s.repo.RegisterTeam -> %w", err)
	}

	return reg, nil
}
