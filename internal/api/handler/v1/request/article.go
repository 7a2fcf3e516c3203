package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/asclub/club-api/internal/domain"
)

type ArticleRequest struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	Published     bool       `json:"published"`
	FeaturedImage string     `json:"featured_image"`
	PublishedAt   *time.Time `json:"published_at"`
}

func (req *ArticleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Excerpt, validation.Length(0, 500)),
		validation.Field(&req.FeaturedImage, is.URL),
	)
}

func (req *ArticleRequest) ToDomain() domain.Article {
	return domain.Article{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Author:        req.Author,
		Published:     req.Published,
		FeaturedImage: req.FeaturedImage,
		PublishedAt:   req.PublishedAt,
	}
}

type GalleryRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	CoverImage  string     `json:"cover_image"`
}

func (req *GalleryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.CoverImage, is.URL),
	)
}

func (req *GalleryRequest) ToDomain() domain.Gallery {
	return domain.Gallery{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		CoverImage:  req.CoverImage,
	}
}

type PhotoRequest struct {
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Caption      string `json:"caption"`
	OrderIndex   int    `json:"order_index"`
}

func (req *PhotoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ImageURL, validation.Required, is.URL),
		validation.Field(&req.ThumbnailURL, is.URL),
		validation.Field(&req.OrderIndex, validation.Min(0)),
	)
}

func (req *PhotoRequest) ToDomain() domain.Photo {
	return domain.Photo{
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		Caption:      req.Caption,
		OrderIndex:   req.OrderIndex,
	}
}
