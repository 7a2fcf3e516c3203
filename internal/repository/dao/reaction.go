package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionCount struct {
	EntityType string
	EntityID   uuid.UUID
	Likes      int64
	Dislikes   int64
}

type ReactionDAO struct {
	db *gorm.DB
}

func NewReactionDAO(db *gorm.DB) *ReactionDAO {
	return &ReactionDAO{
		db: db,
	}
}

func (d *ReactionDAO) Find(ctx context.Context, voterID, entityType string, entityID uuid.UUID) (UserReaction, error) {
	var reaction UserReaction

	result := d.db.WithContext(ctx).
		Where("voter_id = ? AND entity_type = ? AND entity_id = ?", voterID, entityType, entityID).
		Take(&reaction)
	if result.Error != nil {
		return UserReaction{}, translate(result.Error)
	}

	return reaction, nil
}

// Upsert writes the reaction keyed on (voter_id, entity_type, entity_id).
// An existing row is only overwritten once it has expired at now; otherwise
// the stored row is returned with ErrReactionActive and nothing changes.
func (d *ReactionDAO) Upsert(ctx context.Context, reaction UserReaction, now time.Time) (UserReaction, error) {
	reaction.ExpiresAt = reaction.ExpiresAt.UTC()
	expired := clause.Lte{Column: clause.Column{Table: "user_reactions", Name: "expires_at"}, Value: now.UTC()}

	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "voter_id"}, {Name: "entity_type"}, {Name: "entity_id"}},
			Where:     clause.Where{Exprs: []clause.Expression{expired}},
			DoUpdates: clause.AssignmentColumns([]string{"reaction_type", "expires_at", "updated_at"}),
		}).
		Create(&reaction)
	if result.Error != nil {
		return UserReaction{}, translate(result.Error)
	}

	stored, err := d.Find(ctx, reaction.VoterID, reaction.EntityType, reaction.EntityID)
	if err != nil {
		return UserReaction{}, err
	}
	if result.RowsAffected == 0 {
		return stored, ErrReactionActive
	}

	return stored, nil
}

// ReactionTarget identifies an entity that received reactions.
type ReactionTarget struct {
	EntityType string
	EntityID   uuid.UUID
}

// DeleteExpired removes reactions expired before now and returns the
// entities whose counts changed.
func (d *ReactionDAO) DeleteExpired(ctx context.Context, now time.Time) ([]ReactionTarget, int64, error) {
	var (
		targets []ReactionTarget
		removed int64
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&UserReaction{}).
			Distinct("entity_type", "entity_id").
			Where("expires_at < ?", now.UTC()).
			Scan(&targets).Error; err != nil {
			return err
		}
		if len(targets) == 0 {
			return nil
		}

		result := tx.Where("expires_at < ?", now.UTC()).Delete(&UserReaction{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return nil
	})
	if err != nil {
		return nil, 0, translate(err)
	}

	return targets, removed, nil
}

// Counts aggregates likes and dislikes for one entity. Postgres reads the
// reaction_counts view, other dialects aggregate the table directly.
func (d *ReactionDAO) Counts(ctx context.Context, entityType string, entityID uuid.UUID) (ReactionCount, error) {
	rows, err := d.counts(ctx, entityType, &entityID)
	if err != nil {
		return ReactionCount{}, err
	}
	if len(rows) == 0 {
		return ReactionCount{EntityType: entityType, EntityID: entityID}, nil
	}

	return rows[0], nil
}

func (d *ReactionDAO) CountsByType(ctx context.Context, entityType string) ([]ReactionCount, error) {
	return d.counts(ctx, entityType, nil)
}

func (d *ReactionDAO) counts(ctx context.Context, entityType string, entityID *uuid.UUID) ([]ReactionCount, error) {
	var q *gorm.DB
	if d.db.Dialector.Name() == "postgres" {
		q = d.db.WithContext(ctx).Table(reactionCountsView).
			Select("entity_type, entity_id, likes, dislikes")
	} else {
		q = d.db.WithContext(ctx).Model(&UserReaction{}).
			Select(`entity_type, entity_id,
				SUM(CASE WHEN reaction_type = 'like' THEN 1 ELSE 0 END) AS likes,
				SUM(CASE WHEN reaction_type = 'dislike' THEN 1 ELSE 0 END) AS dislikes`).
			Group("entity_type, entity_id")
	}

	q = q.Where("entity_type = ?", entityType)
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}

	var rows []ReactionCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}

	return rows, nil
}
