package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

func newLookupFixture() (*LookupService, *fakeCheckInRepo) {
	solo := activeUser(1, "MLNUX7K2QZ")
	teammate := activeUser(2, "MLNUP9A1LM")
	unpaid := domain.User{ID: 3, Code: "MLNUUNPAID", Status: domain.StatusActive, PaymentStatus: domain.PaymentUnpaid}

	users := &fakeUserRepo{users: map[string]domain.User{
		solo.Code:     solo,
		teammate.Code: teammate,
		unpaid.Code:   unpaid,
	}}
	teams := &fakeTeamRepo{teams: map[string]domain.Team{
		"MLNUTEAM01": {
			ID:      100,
			Code:    "MLNUTEAM01",
			Name:    "Null Pointers",
			Members: []domain.User{teammate, unpaid},
		},
	}}
	events := &fakeEventRepo{
		rounds:          map[string]domain.Round{roundKey(7, 1): {ID: 71, EventID: 7, Number: 1}},
		registeredUsers: map[uint]bool{1: true, 2: true, 3: true},
		registeredTeams: map[uint]bool{100: true},
	}
	checkins := newFakeCheckInRepo()

	return NewLookupService(users, teams, events, checkins), checkins
}

func TestLookupSolo(t *testing.T) {
	svc, checkins := newLookupFixture()

	result, err := svc.Lookup(context.Background(), 7, 1, "MLNUX7K2QZ")
	require.NoError(t, err)

	require.Equal(t, domain.LookupSolo, result.Mode)
	require.NotNil(t, result.Solo)
	assert.True(t, result.Solo.Eligible)
	assert.False(t, result.Solo.CheckedIn)

	// Check the user in and look them up again.
	_, err = checkins.Create(context.Background(), domain.CheckInRecord{RoundID: 71, UserID: 1})
	require.NoError(t, err)

	result, err = svc.Lookup(context.Background(), 7, 1, "MLNUX7K2QZ")
	require.NoError(t, err)
	assert.True(t, result.Solo.CheckedIn)
}

func TestLookupTeamRoster(t *testing.T) {
	svc, checkins := newLookupFixture()

	_, err := checkins.Create(context.Background(), domain.CheckInRecord{RoundID: 71, UserID: 2})
	require.NoError(t, err)

	result, err := svc.Lookup(context.Background(), 7, 1, "MLNUTEAM01")
	require.NoError(t, err)

	require.Equal(t, domain.LookupTeam, result.Mode)
	require.NotNil(t, result.Team)
	assert.Equal(t, "Null Pointers", result.Team.Name)
	require.Len(t, result.Team.Members, 2)

	byCode := map[string]domain.RosterEntry{}
	for _, m := range result.Team.Members {
		byCode[m.User.Code] = m
	}

	assert.True(t, byCode["MLNUP9A1LM"].Eligible)
	assert.True(t, byCode["MLNUP9A1LM"].CheckedIn)
	assert.False(t, byCode["MLNUUNPAID"].Eligible, "unpaid member shows as ineligible")
	assert.False(t, byCode["MLNUUNPAID"].CheckedIn)
}

func TestLookupUnknownCode(t *testing.T) {
	svc, _ := newLookupFixture()

	_, err := svc.Lookup(context.Background(), 7, 1, "MLNUNOBODY")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestLookupNotRegistered(t *testing.T) {
	svc, _ := newLookupFixture()
	svc.events.(*fakeEventRepo).registeredUsers[1] = false
	svc.events.(*fakeEventRepo).registeredTeams[100] = false

	_, err := svc.Lookup(context.Background(), 7, 1, "MLNUX7K2QZ")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = svc.Lookup(context.Background(), 7, 1, "MLNUTEAM01")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestLookupUnknownRound(t *testing.T) {
	svc, _ := newLookupFixture()

	_, err := svc.Lookup(context.Background(), 7, 3, "MLNUX7K2QZ")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}
