package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/domain"
)

type ArticleRepository interface {
	CRUDRepository[domain.Article]
	List(ctx context.Context, publishedOnly bool, limit int) ([]domain.Article, error)
}

type ArticleService struct {
	crudService[domain.Article]
	repo ArticleRepository
	now  func() time.Time
}

func NewArticleService(repo ArticleRepository) *ArticleService {
	return &ArticleService{
		crudService: crudService[domain.Article]{repo: repo},
		repo:        repo,
		now:         time.Now,
	}
}

func (s *ArticleService) List(ctx context.Context, publishedOnly bool, limit int) ([]domain.Article, error) {
	articles, err := s.repo.List(ctx, publishedOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return articles, nil
}

// GetPublished hides drafts from public readers.
func (s *ArticleService) GetPublished(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	if !article.Published {
		return domain.Article{}, ErrNotFound
	}

	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, article domain.Article) (domain.Article, error) {
	s.stampPublication(&article)
	return s.crudService.Create(ctx, article)
}

func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, article domain.Article) (domain.Article, error) {
	s.stampPublication(&article)
	return s.crudService.Update(ctx, id, article)
}

func (s *ArticleService) stampPublication(article *domain.Article) {
	if article.Published && article.PublishedAt == nil {
		now := s.now()
		article.PublishedAt = &now
	}
}
