package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/asclub/club-api/internal/domain"
)

// StripeGateway opens card payments as Stripe PaymentIntents.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		api: client.New(secretKey, nil),
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, donation domain.Donation) (string, string, error) {
	params := IntentParams(donation)
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", "", fmt.Errorf("g.api.PaymentIntents.New -> %w", err)
	}

	return intent.ID, intent.ClientSecret, nil
}

// IntentParams converts a donation into PaymentIntent parameters. Amounts are
// sent in the currency's minor unit.
func IntentParams(donation domain.Donation) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(donation.Amount * 100))),
		Currency:           stripe.String(strings.ToLower(donation.Currency)),
		Description:        stripe.String("Don au club"),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if donation.DonorEmail != "" {
		params.ReceiptEmail = stripe.String(donation.DonorEmail)
	}
	params.AddMetadata("donation_id", donation.ID.String())

	return params
}
