package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/asclub/club-api/internal/domain"
)

func TestIntentParams(t *testing.T) {
	id := uuid.New()

	params := IntentParams(domain.Donation{
		ID:         id,
		Amount:     12.5,
		Currency:   "EUR",
		DonorEmail: "fan@example.org",
	})

	assert.Equal(t, int64(1250), *params.Amount)
	assert.Equal(t, "eur", *params.Currency)
	assert.Equal(t, "fan@example.org", *params.ReceiptEmail)
	assert.Equal(t, id.String(), params.Metadata["donation_id"])

	params = IntentParams(domain.Donation{ID: id, Amount: 5, Currency: "EUR"})
	assert.Nil(t, params.ReceiptEmail)
	assert.Equal(t, int64(500), *params.Amount)
}
