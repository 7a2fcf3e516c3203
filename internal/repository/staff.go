package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type StaffRepository struct {
	crud[domain.Staff, dao.Staff]
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{
		crud: crud[domain.Staff, dao.Staff]{
			store:    dao.NewStore[dao.Staff](db, "name ASC"),
			toDomain: staffDaoToDomain,
			toDAO:    staffDomainToDao,
		},
	}
}

func (r *StaffRepository) List(ctx context.Context, activeOnly bool) ([]domain.Staff, error) {
	f := dao.Filter{}
	if activeOnly {
		f = f.Eq("active", true)
	}

	return r.list(ctx, f)
}

func staffDaoToDomain(s dao.Staff) domain.Staff {
	return domain.Staff{
		ID:        s.ID,
		Name:      s.Name,
		Role:      domain.StaffRole(s.Role),
		Email:     s.Email,
		Phone:     s.Phone,
		PhotoURL:  s.PhotoURL,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func staffDomainToDao(s domain.Staff) dao.Staff {
	return dao.Staff{
		Base:     dao.Base{ID: s.ID},
		Name:     s.Name,
		Role:     string(s.Role),
		Email:    s.Email,
		Phone:    s.Phone,
		PhotoURL: s.PhotoURL,
		Active:   s.Active,
	}
}
