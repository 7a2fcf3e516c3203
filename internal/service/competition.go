package service

import (
	"context"
	"fmt"

	"github.com/asclub/club-api/internal/domain"
)

type CompetitionRepository interface {
	CRUDRepository[domain.Competition]
	List(ctx context.Context, activeOnly bool) ([]domain.Competition, error)
}

type CompetitionService struct {
	crudService[domain.Competition]
	repo CompetitionRepository
}

func NewCompetitionService(repo CompetitionRepository) *CompetitionService {
	return &CompetitionService{
		crudService: crudService[domain.Competition]{repo: repo},
		repo:        repo,
	}
}

func (s *CompetitionService) List(ctx context.Context, activeOnly bool) ([]domain.Competition, error) {
	competitions, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return competitions, nil
}
