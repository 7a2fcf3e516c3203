package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/domain"
)

type GalleryRepository interface {
	CRUDRepository[domain.Gallery]
	List(ctx context.Context) ([]domain.Gallery, error)
	ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]domain.Photo, error)
	GetPhoto(ctx context.Context, id uuid.UUID) (domain.Photo, error)
	CreatePhoto(ctx context.Context, photo domain.Photo) (domain.Photo, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo domain.Photo) (domain.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type GalleryService struct {
	crudService[domain.Gallery]
	repo GalleryRepository
}

func NewGalleryService(repo GalleryRepository) *GalleryService {
	return &GalleryService{
		crudService: crudService[domain.Gallery]{repo: repo},
		repo:        repo,
	}
}

func (s *GalleryService) List(ctx context.Context) ([]domain.Gallery, error) {
	galleries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return galleries, nil
}

func (s *GalleryService) ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]domain.Photo, error) {
	if _, err := s.Get(ctx, galleryID); err != nil {
		return nil, err
	}

	photos, err := s.repo.ListPhotos(ctx, galleryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPhotos -> %w", err)
	}

	return photos, nil
}

func (s *GalleryService) AddPhoto(ctx context.Context, galleryID uuid.UUID, photo domain.Photo) (domain.Photo, error) {
	if _, err := s.Get(ctx, galleryID); err != nil {
		return domain.Photo{}, err
	}
	photo.GalleryID = galleryID

	created, err := s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("s.repo.CreatePhoto -> %w", err)
	}

	return created, nil
}

func (s *GalleryService) UpdatePhoto(ctx context.Context, galleryID, photoID uuid.UUID, photo domain.Photo) (domain.Photo, error) {
	if _, err := s.photoOf(ctx, galleryID, photoID); err != nil {
		return domain.Photo{}, err
	}
	photo.GalleryID = galleryID

	updated, err := s.repo.UpdatePhoto(ctx, photoID, photo)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("s.repo.UpdatePhoto -> %w", err)
	}

	return updated, nil
}

func (s *GalleryService) DeletePhoto(ctx context.Context, galleryID, photoID uuid.UUID) error {
	if _, err := s.photoOf(ctx, galleryID, photoID); err != nil {
		return err
	}

	if err := s.repo.DeletePhoto(ctx, photoID); err != nil {
		return fmt.Errorf("s.repo.DeletePhoto -> %w", err)
	}

	return nil
}

// photoOf loads a photo and checks it belongs to the gallery.
func (s *GalleryService) photoOf(ctx context.Context, galleryID, photoID uuid.UUID) (domain.Photo, error) {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("s.repo.GetPhoto -> %w", err)
	}
	if photo.GalleryID != galleryID {
		return domain.Photo{}, ErrNotFound
	}

	return photo, nil
}
