package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type SubscriptionRepository struct {
	crud[domain.Subscription, dao.Subscription]
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		crud: crud[domain.Subscription, dao.Subscription]{
			store:    dao.NewStore[dao.Subscription](db, "created_at DESC"),
			toDomain: subscriptionDaoToDomain,
			toDAO:    subscriptionDomainToDao,
		},
	}
}

func (r *SubscriptionRepository) List(ctx context.Context, activeOnly bool) ([]domain.Subscription, error) {
	f := dao.Filter{}
	if activeOnly {
		f = f.Eq("active", true)
	}

	return r.list(ctx, f)
}

func (r *SubscriptionRepository) FindByEmail(ctx context.Context, email string) (domain.Subscription, error) {
	return r.first(ctx, dao.Filter{}.Eq("email", email))
}

func subscriptionDaoToDomain(s dao.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:          s.ID,
		Email:       s.Email,
		Name:        s.Name,
		Active:      s.Active,
		ConfirmedAt: s.ConfirmedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func subscriptionDomainToDao(s domain.Subscription) dao.Subscription {
	return dao.Subscription{
		Base:        dao.Base{ID: s.ID},
		Email:       s.Email,
		Name:        s.Name,
		Active:      s.Active,
		ConfirmedAt: s.ConfirmedAt,
	}
}
