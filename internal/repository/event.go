package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

var (
	ErrEventNotFound     = dao.ErrEventNotFound
	ErrRoundNotFound     = dao.ErrRoundNotFound
	ErrAlreadyRegistered = dao.ErrAlreadyRegistered
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindRound(ctx context.Context, eventID uint, number int) (dao.Round, error)
	InsertRegistration(ctx context.Context, reg dao.Registration) (dao.Registration, error)
	IsUserRegistered(ctx context.Context, eventID, userID uint) (bool, error)
	IsTeamRegistered(ctx context.Context, eventID, teamID uint) (bool, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	rounds := make([]dao.Round, len(event.Rounds))
	for i, round := range event.Rounds {
		rounds[i] = dao.Round{
			Number: round.Number,
			Name:   round.Name,
		}
	}

	created, err := r.dao.Insert(ctx, dao.Event{
		Name:        event.Name,
		Description: event.Description,
		Venue:       event.Venue,
		StartsAt:    event.StartsAt,
		TeamEvent:   event.TeamEvent,
		Rounds:      rounds,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = eventDaoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) FindRound(ctx context.Context, eventID uint, number int) (domain.Round, error) {
	found, err := r.dao.FindRound(ctx, eventID, number)
	if err != nil {
		return domain.Round{}, fmt.Errorf("r.dao.FindRound -> %w", err)
	}

	return roundDaoToDomain(found), nil
}

func (r *EventRepository) RegisterUser(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	created, err := r.dao.InsertRegistration(ctx, dao.Registration{
		EventID: eventID,
		UserID:  &userID,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertRegistration -> %w", err)
	}

	return registrationDaoToDomain(created), nil
}

func (r *EventRepository) RegisterTeam(ctx context.Context, eventID, teamID uint) (domain.Registration, error) {
	created, err := r.dao.InsertRegistration(ctx, dao.Registration{
		EventID: eventID,
		TeamID:  &teamID,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertRegistration -> %w", err)
	}

	return registrationDaoToDomain(created), nil
}

func (r *EventRepository) IsUserRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	registered, err := r.dao.IsUserRegistered(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsUserRegistered -> %w", err)
	}

	return registered, nil
}

func (r *EventRepository) IsTeamRegistered(ctx context.Context, eventID, teamID uint) (bool, error) {
	registered, err := r.dao.IsTeamRegistered(ctx, eventID, teamID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsTeamRegistered -> %w", err)
	}

	return registered, nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	rounds := make([]domain.Round, len(e.Rounds))
	for i, round := range e.Rounds {
		rounds[i] = roundDaoToDomain(round)
	}

	return domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		TeamEvent:   e.TeamEvent,
		Rounds:      rounds,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func roundDaoToDomain(r dao.Round) domain.Round {
	return domain.Round{
		ID:      r.ID,
		EventID: r.EventID,
		Number:  r.Number,
		Name:    r.Name,
	}
}

func registrationDaoToDomain(r dao.Registration) domain.Registration {
	return domain.Registration{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		TeamID:    r.TeamID,
		CreatedAt: r.CreatedAt,
	}
}
