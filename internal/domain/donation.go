package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCash     PaymentMethod = "cash"
	PaymentCheck    PaymentMethod = "check"
)

var PaymentMethods = []PaymentMethod{PaymentCard, PaymentTransfer, PaymentCash, PaymentCheck}

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

var DonationStatuses = []DonationStatus{DonationPending, DonationCompleted, DonationFailed}

const DefaultCurrency = "EUR"

type Donation struct {
	ID               uuid.UUID      `json:"id"`
	Amount           float64        `json:"amount"`
	Currency         string         `json:"currency"`
	DonorName        string         `json:"donor_name,omitempty"`
	DonorEmail       string         `json:"donor_email,omitempty"`
	IsAnonymous      bool           `json:"is_anonymous"`
	PaymentMethod    PaymentMethod  `json:"payment_method"`
	Message          string         `json:"message"`
	Status           DonationStatus `json:"status"`
	PaymentReference string         `json:"payment_reference,omitempty"`
	ClientSecret     string         `json:"client_secret,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Public hides the donor identity of anonymous donations.
func (d Donation) Public() Donation {
	if d.IsAnonymous {
		d.DonorName = ""
		d.DonorEmail = ""
	}
	d.PaymentReference = ""
	return d
}

type DonationProgress struct {
	Total          float64 `json:"total"`
	Goal           float64 `json:"goal"`
	Currency       string  `json:"currency"`
	Count          int64   `json:"count"`
	Percent        float64 `json:"percent"`
	FormattedTotal string  `json:"formatted_total"`
	FormattedGoal  string  `json:"formatted_goal"`
}
