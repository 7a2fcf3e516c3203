package dao

import (
	"context"

	"gorm.io/gorm"
)

type DonationDAO struct {
	db *gorm.DB
}

func NewDonationDAO(db *gorm.DB) *DonationDAO {
	return &DonationDAO{
		db: db,
	}
}

func (d *DonationDAO) Sum(ctx context.Context, status, currency string) (float64, int64, error) {
	var row struct {
		Total float64
		Count int64
	}

	result := d.db.WithContext(ctx).Model(&Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND currency = ?", status, currency).
		Scan(&row)
	if result.Error != nil {
		return 0, 0, translate(result.Error)
	}

	return row.Total, row.Count, nil
}
