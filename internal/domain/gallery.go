package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gallery struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	CoverImage  string     `json:"cover_image"`
	Photos      []Photo    `json:"photos,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Photo struct {
	ID           uuid.UUID `json:"id"`
	GalleryID    uuid.UUID `json:"gallery_id"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Caption      string    `json:"caption"`
	OrderIndex   int       `json:"order_index"`
	CreatedAt    time.Time `json:"created_at"`
}
