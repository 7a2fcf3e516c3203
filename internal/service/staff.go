package service

import (
	"context"
	"fmt"

	"github.com/asclub/club-api/internal/domain"
)

type StaffRepository interface {
	CRUDRepository[domain.Staff]
	List(ctx context.Context, activeOnly bool) ([]domain.Staff, error)
}

type StaffService struct {
	crudService[domain.Staff]
	repo StaffRepository
}

func NewStaffService(repo StaffRepository) *StaffService {
	return &StaffService{
		crudService: crudService[domain.Staff]{repo: repo},
		repo:        repo,
	}
}

func (s *StaffService) List(ctx context.Context, activeOnly bool) ([]domain.Staff, error) {
	staff, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return staff, nil
}
