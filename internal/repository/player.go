package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type PlayerRepository struct {
	crud[domain.Player, dao.Player]
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{
		crud: crud[domain.Player, dao.Player]{
			store:    dao.NewStore[dao.Player](db, "jersey_number ASC, name ASC"),
			toDomain: playerDaoToDomain,
			toDAO:    playerDomainToDao,
		},
	}
}

func (r *PlayerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Player, error) {
	f := dao.Filter{}
	if activeOnly {
		f = f.Eq("active", true)
	}

	return r.list(ctx, f)
}

func playerDaoToDomain(p dao.Player) domain.Player {
	return domain.Player{
		ID:           p.ID,
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     domain.Position(p.Position),
		Age:          p.Age,
		HeightCM:     p.HeightCM,
		WeightKG:     p.WeightKG,
		PhotoURL:     p.PhotoURL,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func playerDomainToDao(p domain.Player) dao.Player {
	return dao.Player{
		Base:         dao.Base{ID: p.ID},
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		Age:          p.Age,
		HeightCM:     p.HeightCM,
		WeightKG:     p.WeightKG,
		PhotoURL:     p.PhotoURL,
		Active:       p.Active,
	}
}
