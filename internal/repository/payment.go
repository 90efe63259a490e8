package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

var ErrPaymentNotFound = dao.ErrPaymentNotFound

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByIntentID(ctx context.Context, intentID string) (dao.Payment, error)
	UpdateStatusByIntentID(ctx context.Context, intentID, status string) error
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.Insert(ctx, dao.Payment{
		UserID:         payment.UserID,
		Reference:      payment.Reference,
		StripeIntentID: payment.StripeIntentID,
		AmountPaise:    payment.AmountPaise,
		Currency:       payment.Currency,
		Status:         payment.Status,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return paymentDaoToDomain(created), nil
}

func (r *PaymentRepository) FindByIntentID(ctx context.Context, intentID string) (domain.Payment, error) {
	found, err := r.dao.FindByIntentID(ctx, intentID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindByIntentID -> %w", err)
	}

	return paymentDaoToDomain(found), nil
}

func (r *PaymentRepository) MarkStatusByIntentID(ctx context.Context, intentID, status string) error {
	if err := r.dao.UpdateStatusByIntentID(ctx, intentID, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatusByIntentID -> %w", err)
	}

	return nil
}

func paymentDaoToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:             p.ID,
		UserID:         p.UserID,
		Reference:      p.Reference,
		StripeIntentID: p.StripeIntentID,
		AmountPaise:    p.AmountPaise,
		Currency:       p.Currency,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
