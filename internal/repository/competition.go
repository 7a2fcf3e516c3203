package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type CompetitionRepository struct {
	crud[domain.Competition, dao.Competition]
}

func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{
		crud: crud[domain.Competition, dao.Competition]{
			store:    dao.NewStore[dao.Competition](db, "season DESC, name ASC"),
			toDomain: competitionDaoToDomain,
			toDAO:    competitionDomainToDao,
		},
	}
}

func (r *CompetitionRepository) List(ctx context.Context, activeOnly bool) ([]domain.Competition, error) {
	f := dao.Filter{}
	if activeOnly {
		f = f.Eq("active", true)
	}

	return r.list(ctx, f)
}

func competitionDaoToDomain(c dao.Competition) domain.Competition {
	return domain.Competition{
		ID:        c.ID,
		Name:      c.Name,
		Type:      domain.CompetitionType(c.Type),
		Season:    c.Season,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func competitionDomainToDao(c domain.Competition) dao.Competition {
	return dao.Competition{
		Base:      dao.Base{ID: c.ID},
		Name:      c.Name,
		Type:      string(c.Type),
		Season:    c.Season,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Active:    c.Active,
	}
}
