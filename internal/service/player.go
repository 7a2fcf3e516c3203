package service

import (
	"context"
	"fmt"

	"github.com/asclub/club-api/internal/domain"
)

type PlayerRepository interface {
	CRUDRepository[domain.Player]
	List(ctx context.Context, activeOnly bool) ([]domain.Player, error)
}

type PlayerService struct {
	crudService[domain.Player]
	repo PlayerRepository
}

func NewPlayerService(repo PlayerRepository) *PlayerService {
	return &PlayerService{
		crudService: crudService[domain.Player]{repo: repo},
		repo:        repo,
	}
}

func (s *PlayerService) List(ctx context.Context, activeOnly bool) ([]domain.Player, error) {
	players, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return players, nil
}
