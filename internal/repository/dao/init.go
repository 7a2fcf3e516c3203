package dao

import "gorm.io/gorm"

const reactionCountsView = "reaction_counts"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Competition{},
		&Player{},
		&Staff{},
		&Match{},
		&Article{},
		&Gallery{},
		&Photo{},
		&Donation{},
		&Subscription{},
		&UserReaction{},
		&TeamComposition{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec(`CREATE OR REPLACE VIEW ` + reactionCountsView + ` AS
			SELECT entity_type,
			       entity_id,
			       COUNT(*) FILTER (WHERE reaction_type = 'like')    AS likes,
			       COUNT(*) FILTER (WHERE reaction_type = 'dislike') AS dislikes
			FROM user_reactions
			GROUP BY entity_type, entity_id`).Error
	}

	return nil
}
