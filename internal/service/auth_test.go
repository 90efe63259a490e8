package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

type fakeAuthUserRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}
	for _, u := range f.byEmail {
		if u.Code == user.Code {
			return domain.User{}, repository.ErrUserCodeExists
		}
	}

	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	byHash map[string]domain.RefreshToken
	nextID uint
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: make(map[string]domain.RefreshToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token domain.RefreshToken, hash string) (domain.RefreshToken, error) {
	f.nextID++
	token.ID = f.nextID
	f.byHash[hash] = token

	return token, nil
}

func (f *fakeTokenRepo) FindByHash(_ context.Context, hash string) (domain.RefreshToken, error) {
	token, ok := f.byHash[hash]
	if !ok {
		return domain.RefreshToken{}, repository.ErrRefreshTokenNotFound
	}
	return token, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, id uint) error {
	for hash, token := range f.byHash {
		if token.ID == id {
			token.Revoked = true
			f.byHash[hash] = token
			return nil
		}
	}
	return repository.ErrRefreshTokenNotFound
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID uint) error {
	for hash, token := range f.byHash {
		if token.UserID == userID {
			token.Revoked = true
			f.byHash[hash] = token
		}
	}
	return nil
}

func newAuthFixture() (*AuthService, *fakeAuthUserRepo, *fakeTokenRepo) {
	users := &fakeAuthUserRepo{byEmail: make(map[string]domain.User)}
	tokens := newFakeTokenRepo()

	return NewAuthService(users, tokens, 24*time.Hour), users, tokens
}

func TestSignupAssignsCodeAndHashesPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Signup(context.Background(), domain.User{
		FirstName: "Priya",
		Email:     "priya@cit.edu",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)

	assert.True(t, identifier.Valid(user.Code))
	assert.True(t, strings.HasPrefix(user.Code, identifier.Prefix))
	assert.Equal(t, domain.RoleParticipant, user.Role)
	assert.Equal(t, domain.StatusActive, user.Status)
	assert.Equal(t, domain.PaymentUnpaid, user.PaymentStatus)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cretpass")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(context.Background(), domain.User{Email: "a@cit.edu", Password: "s3cretpass"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "a@cit.edu", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, err := svc.Signup(context.Background(), domain.User{Email: "a@cit.edu", Password: "s3cretpass"})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "a@cit.edu", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(context.Background(), "a@cit.edu", "wrongpass1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@cit.edu", "s3cretpass")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Refresh consumes the presented token: a second use of the same token
// must be rejected.
func TestRefreshRotation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, err := svc.Signup(context.Background(), domain.User{Email: "a@cit.edu", Password: "s3cretpass"})
	require.NoError(t, err)

	first, err := svc.IssueRefreshToken(context.Background(), created.ID)
	require.NoError(t, err)

	user, second, err := svc.Refresh(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEqual(t, first, second)

	_, _, err = svc.Refresh(context.Background(), first)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = svc.Refresh(context.Background(), second)
	assert.NoError(t, err)
}

func TestRefreshExpiredToken(t *testing.T) {
	users := &fakeAuthUserRepo{byEmail: make(map[string]domain.User)}
	tokens := newFakeTokenRepo()
	svc := NewAuthService(users, tokens, -time.Hour) // already expired at issue

	created, err := svc.Signup(context.Background(), domain.User{Email: "a@cit.edu", Password: "s3cretpass"})
	require.NoError(t, err)

	plain, err := svc.IssueRefreshToken(context.Background(), created.ID)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), plain)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, err := svc.Signup(context.Background(), domain.User{Email: "a@cit.edu", Password: "s3cretpass"})
	require.NoError(t, err)

	first, err := svc.IssueRefreshToken(context.Background(), created.ID)
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken(context.Background(), created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), created.ID))

	_, _, err = svc.Refresh(context.Background(), first)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, _, err = svc.Refresh(context.Background(), second)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
