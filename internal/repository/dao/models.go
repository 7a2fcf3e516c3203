package dao

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (b Base) PrimaryKey() uuid.UUID {
	return b.ID
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Player struct {
	Base
	Name         string `gorm:"not null"`
	JerseyNumber int    `gorm:"not null;index"`
	Position     string `gorm:"not null"` // gardien, defenseur, milieu or attaquant
	Age          *int
	HeightCM     *int
	WeightKG     *int
	PhotoURL     string
	Active       bool `gorm:"not null;index"`
}

type Staff struct {
	Base
	Name     string `gorm:"not null"`
	Role     string `gorm:"not null"`
	Email    string
	Phone    string
	PhotoURL string
	Active   bool `gorm:"not null"`
}

func (Staff) TableName() string {
	return "staff"
}

type Competition struct {
	Base
	Name      string `gorm:"not null"`
	Type      string `gorm:"not null"`
	Season    string `gorm:"not null;index"`
	StartDate *time.Time
	EndDate   *time.Time
	Active    bool `gorm:"not null"`
}

type Match struct {
	Base
	OpponentTeam  string    `gorm:"not null"`
	MatchDate     time.Time `gorm:"not null;index"`
	Venue         string
	IsHome        bool `gorm:"not null"`
	HomeScore     *int
	AwayScore     *int
	Status        string       `gorm:"not null;index"` // a_venir, en_cours, termine or reporte
	CompetitionID *uuid.UUID   `gorm:"type:uuid;index"`
	Competition   *Competition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Notes         string
}

type Article struct {
	Base
	Title         string `gorm:"not null"`
	Content       string `gorm:"not null"`
	Excerpt       string
	Author        string
	Published     bool `gorm:"not null;index"`
	FeaturedImage string
	PublishedAt   *time.Time
}

type Gallery struct {
	Base
	Title       string `gorm:"not null"`
	Description string
	EventDate   *time.Time `gorm:"index"`
	CoverImage  string
	Photos      []Photo `gorm:"foreignKey:GalleryID;constraint:OnDelete:CASCADE;"`
}

type Photo struct {
	Base
	GalleryID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL     string    `gorm:"not null"`
	ThumbnailURL string
	Caption      string
	OrderIndex   int `gorm:"not null;default:0"`
}

type Donation struct {
	Base
	Amount           float64 `gorm:"not null"`
	Currency         string  `gorm:"not null;size:3"`
	DonorName        string
	DonorEmail       string
	IsAnonymous      bool   `gorm:"not null"`
	PaymentMethod    string `gorm:"not null"`
	Message          string
	Status           string `gorm:"not null;index"`
	PaymentReference string `gorm:"index"`
}

type Subscription struct {
	Base
	Email       string `gorm:"not null;uniqueIndex"`
	Name        string
	Active      bool `gorm:"not null"`
	ConfirmedAt *time.Time
}

type UserReaction struct {
	Base
	VoterID      string    `gorm:"not null;uniqueIndex:idx_reaction_voter_entity"`
	EntityType   string    `gorm:"not null;uniqueIndex:idx_reaction_voter_entity;index:idx_reaction_entity"`
	EntityID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_voter_entity;index:idx_reaction_entity"`
	ReactionType string    `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

type TeamComposition struct {
	Base
	Title           string         `gorm:"not null"`
	Formation       string         `gorm:"not null"`
	PlayerPositions datatypes.JSON `gorm:"not null"`
}

type User struct {
	Base
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`
}
