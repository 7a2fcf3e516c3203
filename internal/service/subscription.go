package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asclub/club-api/internal/domain"
)

type SubscriptionRepository interface {
	CRUDRepository[domain.Subscription]
	List(ctx context.Context, activeOnly bool) ([]domain.Subscription, error)
	FindByEmail(ctx context.Context, email string) (domain.Subscription, error)
}

type ConfirmationMailer interface {
	SendSubscriptionConfirmation(to, name string) error
}

type SubscriptionService struct {
	crudService[domain.Subscription]
	repo   SubscriptionRepository
	mailer ConfirmationMailer
	now    func() time.Time
}

// NewSubscriptionService builds the service. mailer may be nil when SMTP is
// not configured.
func NewSubscriptionService(repo SubscriptionRepository, mailer ConfirmationMailer) *SubscriptionService {
	return &SubscriptionService{
		crudService: crudService[domain.Subscription]{repo: repo},
		repo:        repo,
		mailer:      mailer,
		now:         time.Now,
	}
}

func (s *SubscriptionService) List(ctx context.Context, activeOnly bool) ([]domain.Subscription, error) {
	subscriptions, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return subscriptions, nil
}

// Subscribe registers an email for the newsletter. Subscribing an address
// twice returns the existing subscription, reactivating it if needed.
func (s *SubscriptionService) Subscribe(ctx context.Context, email, name string) (domain.Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Active {
			return existing, nil
		}
		existing.Active = true
		if name != "" {
			existing.Name = name
		}
		updated, err := s.repo.Update(ctx, existing.ID, existing)
		if err != nil {
			return domain.Subscription{}, fmt.Errorf("s.repo.Update -> %w", err)
		}
		return updated, nil
	case !errors.Is(err, ErrNotFound):
		return domain.Subscription{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Subscription{Email: email, Name: name, Active: true})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			// subscribed concurrently
			return s.repo.FindByEmail(ctx, email)
		}
		return domain.Subscription{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return s.confirm(ctx, created), nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, id uuid.UUID) (domain.Subscription, error) {
	subscription, err := s.Get(ctx, id)
	if err != nil {
		return domain.Subscription{}, err
	}
	if !subscription.Active {
		return subscription, nil
	}
	subscription.Active = false

	return s.Update(ctx, id, subscription)
}

func (s *SubscriptionService) confirm(ctx context.Context, subscription domain.Subscription) domain.Subscription {
	if s.mailer == nil {
		return subscription
	}

	if err := s.mailer.SendSubscriptionConfirmation(subscription.Email, subscription.Name); err != nil {
		zap.L().Warn("failed to send subscription confirmation", zap.String("email", subscription.Email), zap.Error(err))
		return subscription
	}

	now := s.now()
	subscription.ConfirmedAt = &now
	updated, err := s.repo.Update(ctx, subscription.ID, subscription)
	if err != nil {
		zap.L().Warn("failed to record subscription confirmation", zap.String("email", subscription.Email), zap.Error(err))
		return subscription
	}

	return updated
}
