package service

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByCode(ctx context.Context, code string) (domain.User, error)
	FindByCodes(ctx context.Context, codes []string) ([]domain.User, error)
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
	UpdateStatus(ctx context.Context, id uint, status domain.UserStatus) error
	UpdatePaymentStatus(ctx context.Context, id uint, paymentStatus domain.PaymentStatus) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserByCode(ctx context.Context, code string) (domain.User, error) {
	user, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	return user, nil
}

func (s *UserService) Search(ctx context.Context, query string) ([]domain.User, error) {
	users, err := s.repo.Search(ctx, query, 25)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	return users, nil
}

// SetStatus transitions the account status. Accounts are never deleted,
// only transitioned between ACTIVE, INACTIVE and SUSPEND.
func (s *UserService) SetStatus(ctx context.Context, id uint, status domain.UserStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

func (s *UserService) ExemptPayment(ctx context.Context, id uint) error {
	if err := s.repo.UpdatePaymentStatus(ctx, id, domain.PaymentExempted); err != nil {
		return fmt.Errorf("s.repo.UpdatePaymentStatus -> %w", err)
	}

	return nil
}
