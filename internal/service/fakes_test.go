package service

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

// In-memory fakes shared by the service tests. They return the same
// sentinels as the real repositories so errors.Is behaves identically.

type fakeUserRepo struct {
	users map[string]domain.User // keyed by code
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByCode(_ context.Context, code string) (domain.User, error) {
	u, ok := f.users[code]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByCodes(_ context.Context, codes []string) ([]domain.User, error) {
	var found []domain.User
	for _, code := range codes {
		if u, ok := f.users[code]; ok {
			found = append(found, u)
		}
	}
	return found, nil
}

func (f *fakeUserRepo) Search(_ context.Context, _ string, _ int) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id uint, status domain.UserStatus) error {
	for code, u := range f.users {
		if u.ID == id {
			u.Status = status
			f.users[code] = u
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePaymentStatus(_ context.Context, id uint, ps domain.PaymentStatus) error {
	for code, u := range f.users {
		if u.ID == id {
			u.PaymentStatus = ps
			f.users[code] = u
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type fakeTeamRepo struct {
	teams map[string]domain.Team // keyed by code
}

func (f *fakeTeamRepo) FindByCode(_ context.Context, code string) (domain.Team, error) {
	t, ok := f.teams[code]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return t, nil
}

type fakeEventRepo struct {
	rounds          map[string]domain.Round // keyed by "eventID/roundNo"
	registeredUsers map[uint]bool
	registeredTeams map[uint]bool
}

func roundKey(eventID uint, roundNo int) string {
	return fmt.Sprintf("%d/%d", eventID, roundNo)
}

func (f *fakeEventRepo) FindRound(_ context.Context, eventID uint, number int) (domain.Round, error) {
	r, ok := f.rounds[roundKey(eventID, number)]
	if !ok {
		return domain.Round{}, repository.ErrRoundNotFound
	}
	return r, nil
}

func (f *fakeEventRepo) IsUserRegistered(_ context.Context, _ uint, userID uint) (bool, error) {
	return f.registeredUsers[userID], nil
}

func (f *fakeEventRepo) IsTeamRegistered(_ context.Context, _ uint, teamID uint) (bool, error) {
	return f.registeredTeams[teamID], nil
}

type checkInKey struct {
	roundID uint
	userID  uint
}

type fakeCheckInRepo struct {
	records map[checkInKey]domain.CheckInRecord
}

func newFakeCheckInRepo() *fakeCheckInRepo {
	return &fakeCheckInRepo{records: make(map[checkInKey]domain.CheckInRecord)}
}

func (f *fakeCheckInRepo) Create(_ context.Context, record domain.CheckInRecord) (domain.CheckInRecord, error) {
	key := checkInKey{roundID: record.RoundID, userID: record.UserID}
	if _, exists := f.records[key]; exists {
		return domain.CheckInRecord{}, repository.ErrAlreadyCheckedIn
	}
	record.ID = uint(len(f.records) + 1)
	f.records[key] = record
	return record, nil
}

func (f *fakeCheckInRepo) FindByRoundAndUsers(_ context.Context, roundID uint, userIDs []uint) ([]domain.CheckInRecord, error) {
	var found []domain.CheckInRecord
	for _, id := range userIDs {
		if rec, ok := f.records[checkInKey{roundID: roundID, userID: id}]; ok {
			found = append(found, rec)
		}
	}
	return found, nil
}

type resultKey struct {
	roundID uint
	userID  uint
	teamID  uint
}

type fakeResultRepo struct {
	assigned map[resultKey]domain.RoundOutcome
	writes   int
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{assigned: make(map[resultKey]domain.RoundOutcome)}
}

func (f *fakeResultRepo) AssignToUser(_ context.Context, roundID, userID uint, outcome domain.RoundOutcome) error {
	f.writes++
	f.assigned[resultKey{roundID: roundID, userID: userID}] = outcome
	return nil
}

func (f *fakeResultRepo) AssignToTeam(_ context.Context, roundID, teamID uint, outcome domain.RoundOutcome) error {
	f.writes++
	f.assigned[resultKey{roundID: roundID, teamID: teamID}] = outcome
	return nil
}
