package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

var ErrRefreshTokenNotFound = dao.ErrRefreshTokenNotFound

type RefreshTokenDAO interface {
	Insert(ctx context.Context, token dao.RefreshToken) (dao.RefreshToken, error)
	FindByHash(ctx context.Context, hash string) (dao.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type RefreshTokenRepository struct {
	dao RefreshTokenDAO
}

func NewRefreshTokenRepository(dao RefreshTokenDAO) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		dao: dao,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token domain.RefreshToken, hash string) (domain.RefreshToken, error) {
	created, err := r.dao.Insert(ctx, dao.RefreshToken{
		UserID:    token.UserID,
		TokenHash: hash,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return refreshTokenDaoToDomain(created), nil
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	found, err := r.dao.FindByHash(ctx, hash)
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("r.dao.FindByHash -> %w", err)
	}

	return refreshTokenDaoToDomain(found), nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	if err := r.dao.Revoke(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Revoke -> %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	if err := r.dao.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.RevokeAllForUser -> %w", err)
	}

	return nil
}

func refreshTokenDaoToDomain(t dao.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		ID:        t.ID,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
		CreatedAt: t.CreatedAt,
	}
}
