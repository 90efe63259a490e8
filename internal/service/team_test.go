package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

// fakeTeamStore implements the full TeamRepository, unlike fakeTeamRepo
// which only serves code lookups.
type fakeTeamStore struct {
	teams   map[uint]domain.Team
	members map[uint][]uint // teamID -> userIDs
	nextID  uint
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{
		teams:   make(map[uint]domain.Team),
		members: make(map[uint][]uint),
		nextID:  1,
	}
}

func (f *fakeTeamStore) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	for _, t := range f.teams {
		if t.Code == team.Code {
			return domain.Team{}, repository.ErrTeamCodeExists
		}
	}
	team.ID = f.nextID
	f.nextID++
	f.teams[team.ID] = team
	return team, nil
}

func (f *fakeTeamStore) FindByID(_ context.Context, id uint) (domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return t, nil
}

func (f *fakeTeamStore) FindByCode(_ context.Context, code string) (domain.Team, error) {
	for _, t := range f.teams {
		if t.Code == code {
			return t, nil
		}
	}
	return domain.Team{}, repository.ErrTeamNotFound
}

func (f *fakeTeamStore) AddMember(_ context.Context, teamID, userID uint) error {
	for _, id := range f.members[teamID] {
		if id == userID {
			return repository.ErrAlreadyTeamMember
		}
	}
	f.members[teamID] = append(f.members[teamID], userID)
	return nil
}

func (f *fakeTeamStore) RemoveMember(_ context.Context, teamID, userID uint) error {
	ids := f.members[teamID]
	for i, id := range ids {
		if id == userID {
			f.members[teamID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCreateTeamEnrollsLeader(t *testing.T) {
	store := newFakeTeamStore()
	svc := NewTeamService(store)

	team, err := svc.CreateTeam(context.Background(), "Null Pointers", 42)
	require.NoError(t, err)

	assert.Equal(t, "Null Pointers", team.Name)
	assert.Equal(t, uint(42), team.LeaderID)
	assert.NotEmpty(t, team.Code)
	assert.Equal(t, []uint{42}, store.members[team.ID])
}

// Codes shared by hand are often typed lowercase; joining must resolve
// them against the canonical uppercase form.
func TestJoinTeamNormalizesCode(t *testing.T) {
	store := newFakeTeamStore()
	svc := NewTeamService(store)

	created, err := svc.CreateTeam(context.Background(), "Null Pointers", 42)
	require.NoError(t, err)

	typed := " " + strings.ToLower(created.Code) + " "
	joined, err := svc.JoinTeam(context.Background(), typed, 43)
	require.NoError(t, err)

	assert.Equal(t, created.ID, joined.ID)
	assert.Equal(t, []uint{42, 43}, store.members[created.ID])
}

func TestJoinTeamTwiceConflicts(t *testing.T) {
	store := newFakeTeamStore()
	svc := NewTeamService(store)

	created, err := svc.CreateTeam(context.Background(), "Null Pointers", 42)
	require.NoError(t, err)

	_, err = svc.JoinTeam(context.Background(), created.Code, 43)
	require.NoError(t, err)

	_, err = svc.JoinTeam(context.Background(), created.Code, 43)
	assert.ErrorIs(t, err, ErrAlreadyTeamMember)
}

func TestJoinTeamMalformedCode(t *testing.T) {
	svc := NewTeamService(newFakeTeamStore())

	_, err := svc.JoinTeam(context.Background(), "not-a-code", 43)
	assert.ErrorIs(t, err, repository.ErrTeamNotFound)
}

func TestGetTeamByCodeNormalizes(t *testing.T) {
	store := newFakeTeamStore()
	svc := NewTeamService(store)

	created, err := svc.CreateTeam(context.Background(), "Null Pointers", 42)
	require.NoError(t, err)

	found, err := svc.GetTeamByCode(context.Background(), strings.ToLower(created.Code))
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}
