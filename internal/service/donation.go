package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/asclub/club-api/internal/domain"
)

var (
	ErrPaymentFailed      = errors.New("payment could not be initiated")
	ErrDonationPageNotSet = errors.New("donation page url is not configured")
)

type DonationRepository interface {
	CRUDRepository[domain.Donation]
	List(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error)
	Totals(ctx context.Context, status domain.DonationStatus, currency string) (float64, int64, error)
}

// PaymentGateway opens a card payment for a donation and returns the
// provider reference together with the client secret the browser confirms.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, donation domain.Donation) (reference string, clientSecret string, err error)
}

type DonationSettings struct {
	Goal     float64
	Currency string
	PageURL  string
}

type DonationService struct {
	crudService[domain.Donation]
	repo     DonationRepository
	gateway  PaymentGateway
	settings DonationSettings
}

// NewDonationService builds the service. gateway may be nil, in which case
// card donations are recorded as pending without a payment intent.
func NewDonationService(repo DonationRepository, gateway PaymentGateway, settings DonationSettings) *DonationService {
	if settings.Currency == "" {
		settings.Currency = domain.DefaultCurrency
	}

	return &DonationService{
		crudService: crudService[domain.Donation]{repo: repo},
		repo:        repo,
		gateway:     gateway,
		settings:    settings,
	}
}

func (s *DonationService) List(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	donations, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return donations, nil
}

func (s *DonationService) Create(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	return s.crudService.Create(ctx, s.normalize(donation))
}

func (s *DonationService) Update(ctx context.Context, id uuid.UUID, donation domain.Donation) (domain.Donation, error) {
	return s.crudService.Update(ctx, id, s.normalize(donation))
}

func (s *DonationService) normalize(donation domain.Donation) domain.Donation {
	if donation.Currency == "" {
		donation.Currency = s.settings.Currency
	}
	donation.Currency = strings.ToUpper(donation.Currency)
	if donation.Status == "" {
		donation.Status = domain.DonationPending
	}

	return donation
}

// Donate records a donation made from the public site. The status is always
// pending; card donations get a payment intent when a gateway is configured.
func (s *DonationService) Donate(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	donation.Status = domain.DonationPending
	donation.PaymentReference = ""

	created, err := s.Create(ctx, donation)
	if err != nil {
		return domain.Donation{}, err
	}

	if created.PaymentMethod != domain.PaymentCard || s.gateway == nil {
		return created, nil
	}

	reference, secret, err := s.gateway.CreateIntent(ctx, created)
	if err != nil {
		zap.L().Error("failed to create payment intent", zap.String("donation_id", created.ID.String()), zap.Error(err))

		created.Status = domain.DonationFailed
		if _, uerr := s.repo.Update(ctx, created.ID, created); uerr != nil {
			zap.L().Error("failed to mark donation as failed", zap.String("donation_id", created.ID.String()), zap.Error(uerr))
		}

		return domain.Donation{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	created.PaymentReference = reference
	updated, err := s.repo.Update(ctx, created.ID, created)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	updated.ClientSecret = secret

	return updated, nil
}

func (s *DonationService) Progress(ctx context.Context) (domain.DonationProgress, error) {
	total, count, err := s.repo.Totals(ctx, domain.DonationCompleted, s.settings.Currency)
	if err != nil {
		return domain.DonationProgress{}, fmt.Errorf("s.repo.Totals -> %w", err)
	}

	progress := domain.DonationProgress{
		Total:          total,
		Goal:           s.settings.Goal,
		Currency:       s.settings.Currency,
		Count:          count,
		FormattedTotal: formatAmount(total, s.settings.Currency),
		FormattedGoal:  formatAmount(s.settings.Goal, s.settings.Currency),
	}
	if s.settings.Goal > 0 {
		progress.Percent = math.Round(total/s.settings.Goal*1000) / 10
	}

	return progress, nil
}

// QRCode renders a PNG pointing to the public donation page.
func (s *DonationService) QRCode(size int) ([]byte, error) {
	if s.settings.PageURL == "" {
		return nil, ErrDonationPageNotSet
	}

	png, err := qrcode.Encode(s.settings.PageURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}

func formatAmount(amount float64, currency string) string {
	return humanize.CommafWithDigits(amount, 2) + " " + currency
}
