package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type MatchRepository struct {
	crud[domain.Match, dao.Match]
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{
		crud: crud[domain.Match, dao.Match]{
			store:    dao.NewStore[dao.Match](db, "match_date ASC", "Competition"),
			toDomain: matchDaoToDomain,
			toDAO:    matchDomainToDao,
		},
	}
}

func (r *MatchRepository) List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, error) {
	f := dao.Filter{}
	if filter.Status != "" {
		f = f.Eq("status", string(filter.Status))
	}
	if filter.From != nil {
		f = f.Gte("match_date", *filter.From)
	}
	if filter.Limit > 0 {
		f = f.Limit(filter.Limit)
	}

	return r.list(ctx, f)
}

// Next returns the earliest upcoming match scheduled at or after now.
func (r *MatchRepository) Next(ctx context.Context, now time.Time) (domain.Match, error) {
	return r.first(ctx, dao.Filter{}.
		Eq("status", string(domain.MatchUpcoming)).
		Gte("match_date", now).
		Order("match_date ASC"))
}

// Results returns finished matches, most recent first.
func (r *MatchRepository) Results(ctx context.Context, limit int) ([]domain.Match, error) {
	return r.list(ctx, dao.Filter{}.
		Eq("status", string(domain.MatchFinished)).
		Order("match_date DESC").
		Limit(limit))
}

func matchDaoToDomain(m dao.Match) domain.Match {
	match := domain.Match{
		ID:            m.ID,
		OpponentTeam:  m.OpponentTeam,
		MatchDate:     m.MatchDate,
		Venue:         m.Venue,
		IsHome:        m.IsHome,
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
		Status:        domain.MatchStatus(m.Status),
		CompetitionID: m.CompetitionID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Competition != nil {
		c := competitionDaoToDomain(*m.Competition)
		match.Competition = &c
	}

	return match
}

func matchDomainToDao(m domain.Match) dao.Match {
	return dao.Match{
		Base:          dao.Base{ID: m.ID},
		OpponentTeam:  m.OpponentTeam,
		MatchDate:     m.MatchDate,
		Venue:         m.Venue,
		IsHome:        m.IsHome,
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
		Status:        string(m.Status),
		CompetitionID: m.CompetitionID,
		Notes:         m.Notes,
	}
}
