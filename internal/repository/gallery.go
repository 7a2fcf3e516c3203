package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type GalleryRepository struct {
	crud[domain.Gallery, dao.Gallery]
	photos crud[domain.Photo, dao.Photo]
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{
		crud: crud[domain.Gallery, dao.Gallery]{
			store:    dao.NewStore[dao.Gallery](db, "event_date DESC, created_at DESC", "Photos"),
			toDomain: galleryDaoToDomain,
			toDAO:    galleryDomainToDao,
		},
		photos: crud[domain.Photo, dao.Photo]{
			store:    dao.NewStore[dao.Photo](db, "order_index ASC, created_at ASC"),
			toDomain: photoDaoToDomain,
			toDAO:    photoDomainToDao,
		},
	}
}

func (r *GalleryRepository) List(ctx context.Context) ([]domain.Gallery, error) {
	return r.list(ctx, dao.Filter{})
}

func (r *GalleryRepository) ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]domain.Photo, error) {
	return r.photos.list(ctx, dao.Filter{}.Eq("gallery_id", galleryID))
}

func (r *GalleryRepository) GetPhoto(ctx context.Context, id uuid.UUID) (domain.Photo, error) {
	return r.photos.Get(ctx, id)
}

func (r *GalleryRepository) CreatePhoto(ctx context.Context, photo domain.Photo) (domain.Photo, error) {
	return r.photos.Create(ctx, photo)
}

func (r *GalleryRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photo domain.Photo) (domain.Photo, error) {
	return r.photos.Update(ctx, id, photo)
}

func (r *GalleryRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	return r.photos.Delete(ctx, id)
}

func galleryDaoToDomain(g dao.Gallery) domain.Gallery {
	gallery := domain.Gallery{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		EventDate:   g.EventDate,
		CoverImage:  g.CoverImage,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}

	if len(g.Photos) > 0 {
		gallery.Photos = make([]domain.Photo, 0, len(g.Photos))
		for _, p := range g.Photos {
			gallery.Photos = append(gallery.Photos, photoDaoToDomain(p))
		}
		sort.SliceStable(gallery.Photos, func(i, j int) bool {
			return gallery.Photos[i].OrderIndex < gallery.Photos[j].OrderIndex
		})
	}

	return gallery
}

func galleryDomainToDao(g domain.Gallery) dao.Gallery {
	return dao.Gallery{
		Base:        dao.Base{ID: g.ID},
		Title:       g.Title,
		Description: g.Description,
		EventDate:   g.EventDate,
		CoverImage:  g.CoverImage,
	}
}

func photoDaoToDomain(p dao.Photo) domain.Photo {
	return domain.Photo{
		ID:           p.ID,
		GalleryID:    p.GalleryID,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		Caption:      p.Caption,
		OrderIndex:   p.OrderIndex,
		CreatedAt:    p.CreatedAt,
	}
}

func photoDomainToDao(p domain.Photo) dao.Photo {
	return dao.Photo{
		Base:         dao.Base{ID: p.ID},
		GalleryID:    p.GalleryID,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		Caption:      p.Caption,
		OrderIndex:   p.OrderIndex,
	}
}
