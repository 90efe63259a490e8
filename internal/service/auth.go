package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var (
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrWrongPassword       = errors.New("wrong password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token domain.RefreshToken, hash string) (domain.RefreshToken, error)
	FindByHash(ctx context.Context, hash string) (domain.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type AuthService struct {
	repo       AuthUserRepository
	tokens     RefreshTokenRepository
	refreshTTL time.Duration
}

func NewAuthService(repo AuthUserRepository, tokens RefreshTokenRepository, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		refreshTTL: refreshTTL,
	}
}

// Signup creates a participant account with a fresh melinia code.
// Collisions on the generated code are retried a few times before giving up.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)
	user.Role = domain.RoleParticipant
	user.Status = domain.StatusActive
	user.PaymentStatus = domain.PaymentUnpaid

	for attempt := 0; attempt < 3; attempt++ {
		user.Code = identifier.New()

		created, err := s.repo.Create(ctx, user)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, repository.ErrUserCodeExists) {
			continue
		}
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return domain.User{}, errors.New("could not allocate a unique melinia code")
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// IssueRefreshToken mints an opaque refresh token for the user. Only the
// hash is persisted; the plain token goes to the client once.
func (s *AuthService) IssueRefreshToken(ctx context.Context, userID uint) (string, error) {
	plain := uuid.NewString() + uuid.NewString()

	_, err := s.tokens.Create(ctx, domain.RefreshToken{
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}, hashToken(plain))
	if err != nil {
		return "", fmt.Errorf("s.tokens.Create -> %w", err)
	}

	return plain, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new one issued together with the user it belongs to.
func (s *AuthService) Refresh(ctx context.Context, plain string) (domain.User, string, error) {
	token, err := s.tokens.FindByHash(ctx, hashToken(plain))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return domain.User{}, "", ErrInvalidRefreshToken
		}

		return domain.User{}, "", fmt.Errorf("s.tokens.FindByHash -> %w", err)
	}

	if token.Revoked || time.Now().After(token.ExpiresAt) {
		return domain.User{}, "", ErrInvalidRefreshToken
	}

	if err = s.tokens.Revoke(ctx, token.ID); err != nil {
		return domain.User{}, "", fmt.Errorf("s.tokens.Revoke -> %w", err)
	}

	user, err := s.repo.FindByID(ctx, token.UserID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	next, err := s.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, next, nil
}

// Logout revokes every refresh token the user holds.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("s.tokens.RevokeAllForUser -> %w", err)
	}

	return nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
