package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

func activeUser(id uint, code string) domain.User {
	return domain.User{
		ID:            id,
		Code:          code,
		Status:        domain.StatusActive,
		PaymentStatus: domain.PaymentPaid,
	}
}

func newCheckInFixture() (*CheckInService, *fakeCheckInRepo, *fakeUserRepo, *fakeEventRepo) {
	users := &fakeUserRepo{users: map[string]domain.User{
		"MLNUX7K2QZ": activeUser(1, "MLNUX7K2QZ"),
		"MLNUP9A1LM": activeUser(2, "MLNUP9A1LM"),
		"MLNUUNPAID": {ID: 3, Code: "MLNUUNPAID", Status: domain.StatusActive, PaymentStatus: domain.PaymentUnpaid},
	}}
	teams := &fakeTeamRepo{teams: map[string]domain.Team{
		"MLNUTEAM01": {
			ID:   100,
			Code: "MLNUTEAM01",
			Members: []domain.User{
				users.users["MLNUX7K2QZ"],
				users.users["MLNUP9A1LM"],
			},
		},
	}}
	events := &fakeEventRepo{
		rounds:          map[string]domain.Round{roundKey(7, 1): {ID: 71, EventID: 7, Number: 1}},
		registeredUsers: map[uint]bool{1: true, 2: true, 3: true},
		registeredTeams: map[uint]bool{100: true},
	}
	checkins := newFakeCheckInRepo()

	return NewCheckInService(users, teams, events, checkins), checkins, users, events
}

func TestCheckInSolo(t *testing.T) {
	svc, checkins, _, _ := newCheckInFixture()

	summary, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"MLNUX7K2QZ"}, summary.CheckedIn)
	assert.Empty(t, summary.AlreadyCheckedIn)
	assert.Equal(t, "checked in 1 of 1 participants", summary.Message)

	rec := checkins.records[checkInKey{roundID: 71, userID: 1}]
	assert.Equal(t, uint(99), rec.CheckedInBy)
	assert.False(t, rec.CheckedInAt.IsZero())
}

// Scanner output may be lowercase or padded; codes are matched against
// their canonical uppercase form and echoed back canonicalized.
func TestCheckInNormalizesScannedCodes(t *testing.T) {
	svc, checkins, _, _ := newCheckInFixture()
	teamCode := " mlnuteam01 "

	summary, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"mlnux7k2qz", " MLNUp9a1lm "}, &teamCode)
	require.NoError(t, err)

	assert.Equal(t, []string{"MLNUX7K2QZ", "MLNUP9A1LM"}, summary.CheckedIn)
	require.NotNil(t, summary.TeamCode)
	assert.Equal(t, "MLNUTEAM01", *summary.TeamCode)
	assert.Len(t, checkins.records, 2)

	rec := checkins.records[checkInKey{roundID: 71, userID: 1}]
	require.NotNil(t, rec.TeamID)
	assert.Equal(t, uint(100), *rec.TeamID)

	// A replay in canonical case is the same check-in, not a new one.
	summary, err = svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MLNUX7K2QZ"}, summary.AlreadyCheckedIn)
	assert.Len(t, checkins.records, 2)
}

// Checking in an already-present user is a per-item conflict, not a
// failure, and never creates a second record.
func TestCheckInIdempotent(t *testing.T) {
	svc, checkins, _, _ := newCheckInFixture()

	_, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ"}, nil)
	require.NoError(t, err)

	summary, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ"}, nil)
	require.NoError(t, err)

	assert.Empty(t, summary.CheckedIn)
	assert.Equal(t, []string{"MLNUX7K2QZ"}, summary.AlreadyCheckedIn)
	assert.Len(t, checkins.records, 1)
}

// A team check-in with one member excluded records only the included
// members; the conflict on a re-run touches only the overlap.
func TestCheckInTeamWithExclusion(t *testing.T) {
	svc, checkins, _, _ := newCheckInFixture()
	teamCode := "MLNUTEAM01"

	summary, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ"}, &teamCode)
	require.NoError(t, err)

	require.Equal(t, []string{"MLNUX7K2QZ"}, summary.CheckedIn)
	require.NotNil(t, summary.TeamCode)
	assert.Equal(t, teamCode, *summary.TeamCode)

	rec := checkins.records[checkInKey{roundID: 71, userID: 1}]
	require.NotNil(t, rec.TeamID)
	assert.Equal(t, uint(100), *rec.TeamID)

	// Excluded member was not touched.
	_, excludedPresent := checkins.records[checkInKey{roundID: 71, userID: 2}]
	assert.False(t, excludedPresent)

	// Second pass with the full roster: only the new member lands.
	summary, err = svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ", "MLNUP9A1LM"}, &teamCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"MLNUP9A1LM"}, summary.CheckedIn)
	assert.Equal(t, []string{"MLNUX7K2QZ"}, summary.AlreadyCheckedIn)
	assert.Len(t, checkins.records, 2)
}

func TestCheckInRejectsEmptySet(t *testing.T) {
	svc, _, _, _ := newCheckInFixture()

	_, err := svc.CheckIn(context.Background(), 7, 1, 99, nil, nil)
	assert.ErrorIs(t, err, ErrNoUsersToCheckIn)
}

func TestCheckInRejectsUnknownCode(t *testing.T) {
	svc, checkins, _, _ := newCheckInFixture()

	_, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUNOBODY"}, nil)
	assert.ErrorIs(t, err, ErrUnknownParticipant)
	assert.Empty(t, checkins.records)
}

// The server re-validates eligibility even though the client is supposed
// to pre-filter.
func TestCheckInRejectsIneligible(t *testing.T) {
	svc, checkins, _, _ := newCheckInFixture()

	_, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUUNPAID"}, nil)
	assert.ErrorIs(t, err, ErrIneligibleParticipant)
	assert.Empty(t, checkins.records)
}

func TestCheckInRejectsUnregistered(t *testing.T) {
	svc, checkins, _, events := newCheckInFixture()
	events.registeredUsers[1] = false

	_, err := svc.CheckIn(context.Background(), 7, 1, 99, []string{"MLNUX7K2QZ"}, nil)
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Empty(t, checkins.records)
}

func TestCheckInUnknownRound(t *testing.T) {
	svc, _, _, _ := newCheckInFixture()

	_, err := svc.CheckIn(context.Background(), 7, 9, 99, []string{"MLNUX7K2QZ"}, nil)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}
