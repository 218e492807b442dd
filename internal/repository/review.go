package repository

import (
	"context"

	"gigmarket/internal/models"
	"gigmarket/internal/query"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	List(ctx context.Context, params *query.ReviewListParams) ([]*models.Review, int64, error)
	ExistsForPair(ctx context.Context, reviewerID, businessUserID uint) (bool, error)
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) applyFilters(db *gorm.DB, params *query.ReviewListParams) *gorm.DB {
	if params.BusinessUserID != nil {
		db = db.Where("business_user_id = ?", *params.BusinessUserID)
	}
	if params.ReviewerID != nil {
		db = db.Where("reviewer_id = ?", *params.ReviewerID)
	}
	return db
}

func (r *reviewRepository) applyOrdering(db *gorm.DB, ordering string) *gorm.DB {
	switch ordering {
	case query.OrderingUpdatedAt:
		return db.Order("updated_at ASC, id ASC")
	case query.OrderingRating:
		return db.Order("rating ASC, id ASC")
	case query.OrderingRatingDesc:
		return db.Order("rating DESC, id ASC")
	default:
		// -updated_at, also the default when no ordering was requested.
		return db.Order("updated_at DESC, id ASC")
	}
}

// List applies the validated filters and ordering. Slicing happens only when
// pagination was explicitly requested; otherwise the full filtered set comes
// back and the count equals its length.
func (r *reviewRepository) List(ctx context.Context, params *query.ReviewListParams) ([]*models.Review, int64, error) {
	var count int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Review{}), params)
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Review{}), params)
	listQuery = r.applyOrdering(listQuery, params.Ordering)
	if params.PageSize != nil {
		listQuery = listQuery.Limit(*params.PageSize).Offset((params.Page - 1) * *params.PageSize)
	}

	var reviews []*models.Review
	if err := listQuery.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, count, nil
}

func (r *reviewRepository) ExistsForPair(ctx context.Context, reviewerID, businessUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("reviewer_id = ? AND business_user_id = ?", reviewerID, businessUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Save(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}
