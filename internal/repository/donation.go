package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type DonationRepository struct {
	crud[domain.Donation, dao.Donation]
	dao *dao.DonationDAO
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{
		crud: crud[domain.Donation, dao.Donation]{
			store:    dao.NewStore[dao.Donation](db, "created_at DESC"),
			toDomain: donationDaoToDomain,
			toDAO:    donationDomainToDao,
		},
		dao: dao.NewDonationDAO(db),
	}
}

func (r *DonationRepository) List(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	f := dao.Filter{}
	if status != "" {
		f = f.Eq("status", string(status))
	}

	return r.list(ctx, f)
}

// Totals sums the amount and count of donations with the given status and currency.
func (r *DonationRepository) Totals(ctx context.Context, status domain.DonationStatus, currency string) (float64, int64, error) {
	total, count, err := r.dao.Sum(ctx, string(status), currency)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.Sum -> %w", err)
	}

	return total, count, nil
}

func donationDaoToDomain(d dao.Donation) domain.Donation {
	return domain.Donation{
		ID:               d.ID,
		Amount:           d.Amount,
		Currency:         d.Currency,
		DonorName:        d.DonorName,
		DonorEmail:       d.DonorEmail,
		IsAnonymous:      d.IsAnonymous,
		PaymentMethod:    domain.PaymentMethod(d.PaymentMethod),
		Message:          d.Message,
		Status:           domain.DonationStatus(d.Status),
		PaymentReference: d.PaymentReference,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func donationDomainToDao(d domain.Donation) dao.Donation {
	return dao.Donation{
		Base:             dao.Base{ID: d.ID},
		Amount:           d.Amount,
		Currency:         d.Currency,
		DonorName:        d.DonorName,
		DonorEmail:       d.DonorEmail,
		IsAnonymous:      d.IsAnonymous,
		PaymentMethod:    string(d.PaymentMethod),
		Message:          d.Message,
		Status:           string(d.Status),
		PaymentReference: d.PaymentReference,
	}
}
