package repository

import (
	"context"
	"math"

	"gigmarket/internal/models"

	"gorm.io/gorm"
)

// StatsRepository computes the aggregate counts for the base-info endpoint.
type StatsRepository interface {
	BaseInfo(ctx context.Context) (*models.BaseInfo, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// BaseInfo returns the review count, mean rating rounded to one decimal,
// business profile count, and offer count. An empty store yields zeros, the
// average included; the mean is only computed when at least one review
// exists, so there is no division by zero.
func (r *statsRepository) BaseInfo(ctx context.Context) (*models.BaseInfo, error) {
	info := &models.BaseInfo{}

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&info.ReviewCount).Error; err != nil {
		return nil, err
	}

	if info.ReviewCount > 0 {
		var avg float64
		err := r.db.WithContext(ctx).
			Model(&models.Review{}).
			Select("AVG(rating)").
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		info.AverageRating = math.Round(avg*10) / 10
	}

	if err := r.db.WithContext(ctx).Model(&models.BusinessProfile{}).Count(&info.BusinessProfileCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Offer{}).Count(&info.OfferCount).Error; err != nil {
		return nil, err
	}

	return info, nil
}
