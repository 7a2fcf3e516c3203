package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type ArticleRepository struct {
	crud[domain.Article, dao.Article]
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{
		crud: crud[domain.Article, dao.Article]{
			store:    dao.NewStore[dao.Article](db, "created_at DESC"),
			toDomain: articleDaoToDomain,
			toDAO:    articleDomainToDao,
		},
	}
}

func (r *ArticleRepository) List(ctx context.Context, publishedOnly bool, limit int) ([]domain.Article, error) {
	f := dao.Filter{}.Limit(limit)
	if publishedOnly {
		f = f.Eq("published", true)
	}

	return r.list(ctx, f)
}

func articleDaoToDomain(a dao.Article) domain.Article {
	return domain.Article{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		Excerpt:       a.Excerpt,
		Author:        a.Author,
		Published:     a.Published,
		FeaturedImage: a.FeaturedImage,
		PublishedAt:   a.PublishedAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func articleDomainToDao(a domain.Article) dao.Article {
	return dao.Article{
		Base:          dao.Base{ID: a.ID},
		Title:         a.Title,
		Content:       a.Content,
		Excerpt:       a.Excerpt,
		Author:        a.Author,
		Published:     a.Published,
		FeaturedImage: a.FeaturedImage,
		PublishedAt:   a.PublishedAt,
	}
}
