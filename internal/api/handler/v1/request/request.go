package request

import (
	"github.com/asclub/club-api/internal/domain"
)

func oneOf[T ~string](values []T) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

var (
	positions        = oneOf(domain.Positions)
	staffRoles       = oneOf(domain.StaffRoles)
	competitionTypes = oneOf(domain.CompetitionTypes)
	matchStatuses    = oneOf(domain.MatchStatuses)
	paymentMethods   = oneOf(domain.PaymentMethods)
	donationStatuses = oneOf(domain.DonationStatuses)
	entityTypes      = oneOf(domain.EntityTypes)
	reactionTypes    = oneOf([]domain.ReactionType{domain.ReactionLike, domain.ReactionDislike})
)
