package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type CompositionRepository struct {
	crud[domain.Composition, dao.TeamComposition]
}

func NewCompositionRepository(db *gorm.DB) *CompositionRepository {
	return &CompositionRepository{
		crud: crud[domain.Composition, dao.TeamComposition]{
			store:    dao.NewStore[dao.TeamComposition](db, "updated_at DESC"),
			toDomain: compositionDaoToDomain,
			toDAO:    compositionDomainToDao,
		},
	}
}

func (r *CompositionRepository) List(ctx context.Context) ([]domain.Composition, error) {
	return r.list(ctx, dao.Filter{})
}

// The formation column is authoritative; the blob copy follows it.
func compositionDaoToDomain(c dao.TeamComposition) domain.Composition {
	set := domain.NewPositionSet(c.Formation)
	if len(c.PlayerPositions) > 0 {
		if err := json.Unmarshal(c.PlayerPositions, &set); err != nil {
			zap.L().Warn("unreadable player positions, resetting board",
				zap.String("composition_id", c.ID.String()), zap.Error(err))
			set = domain.NewPositionSet(c.Formation)
		}
	}
	set.Version = domain.PositionSetVersion
	set.Formation = c.Formation

	return domain.Composition{
		ID:        c.ID,
		Title:     c.Title,
		Formation: c.Formation,
		Positions: set,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func compositionDomainToDao(c domain.Composition) dao.TeamComposition {
	set := c.Positions
	set.Version = domain.PositionSetVersion
	set.Formation = c.Formation
	if set.Positions == nil {
		set.Positions = []domain.PlayerPosition{}
	}

	// a PositionSet of plain numbers and uuids always marshals
	blob, _ := json.Marshal(set)

	return dao.TeamComposition{
		Base:            dao.Base{ID: c.ID},
		Title:           c.Title,
		Formation:       c.Formation,
		PlayerPositions: datatypes.JSON(blob),
	}
}
