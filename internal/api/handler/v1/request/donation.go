package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/asclub/club-api/internal/domain"
)

var errDonorNameRequired = errors.New("donor_name is required unless the donation is anonymous")

type DonationRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	DonorName     string  `json:"donor_name"`
	DonorEmail    string  `json:"donor_email"`
	IsAnonymous   bool    `json:"is_anonymous"`
	PaymentMethod string  `json:"payment_method"`
	Message       string  `json:"message"`
}

func (req *DonationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(1.0), validation.Max(100000.0)),
		validation.Field(&req.Currency, validation.Length(3, 3), is.UpperCase),
		validation.Field(&req.DonorEmail, is.Email),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(paymentMethods...)),
		validation.Field(&req.Message, validation.Length(0, 1000)),
	)
	if err != nil {
		return err
	}

	if !req.IsAnonymous && req.DonorName == "" {
		return errDonorNameRequired
	}

	return nil
}

func (req *DonationRequest) ToDomain() domain.Donation {
	return domain.Donation{
		Amount:        req.Amount,
		Currency:      req.Currency,
		DonorName:     req.DonorName,
		DonorEmail:    req.DonorEmail,
		IsAnonymous:   req.IsAnonymous,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Message:       req.Message,
	}
}

// AdminDonationRequest lets staff record offline donations and settle their status.
type AdminDonationRequest struct {
	DonationRequest
	Status           string `json:"status"`
	PaymentReference string `json:"payment_reference"`
}

func (req *AdminDonationRequest) Validate() error {
	if err := req.DonationRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(donationStatuses...)),
	)
}

func (req *AdminDonationRequest) ToDomain() domain.Donation {
	donation := req.DonationRequest.ToDomain()
	donation.Status = domain.DonationStatus(req.Status)
	donation.PaymentReference = req.PaymentReference

	return donation
}

type DonationQuery struct {
	Status string `form:"status"`
}

func (req *DonationQuery) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(donationStatuses...)),
	)
}

type SubscriptionRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (req *SubscriptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Name, validation.Length(0, 120)),
	)
}

type AdminSubscriptionRequest struct {
	SubscriptionRequest
	Active *bool `json:"active"`
}

func (req *AdminSubscriptionRequest) ToDomain() domain.Subscription {
	return domain.Subscription{
		Email:  req.Email,
		Name:   req.Name,
		Active: boolOr(req.Active, true),
	}
}
