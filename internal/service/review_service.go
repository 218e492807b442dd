package service

import (
	"context"
	"errors"
	"fmt"

	"gigmarket/internal/cache"
	"gigmarket/internal/models"
	"gigmarket/internal/observability"
	"gigmarket/internal/repository"

	"gorm.io/gorm"
)

// CreateReviewInput carries the fields a customer submits when reviewing a
// business user.
type CreateReviewInput struct {
	BusinessUser uint   `json:"business_user"`
	Rating       int    `json:"rating"`
	Description  string `json:"description"`
}

// UpdateReviewInput carries the editable review fields. Pointers distinguish
// absent fields from zero values.
type UpdateReviewInput struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

// ReviewService carries the review write-path rules.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, userRepo: userRepo}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return models.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// CreateReview validates the target and the one-review-per-pair rule, then
// inserts. The application-level pre-check gives a friendly error; the unique
// index on (reviewer, business_user) closes the race behind it, and a
// violation there maps to the same Conflict.
func (s *ReviewService) CreateReview(ctx context.Context, reviewer *models.User, input CreateReviewInput) (*models.Review, error) {
	if input.BusinessUser == 0 {
		return nil, models.NewValidationError("business_user is required")
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, input.BusinessUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Business user", input.BusinessUser)
		}
		return nil, models.NewInternalError(err)
	}
	if !target.IsBusiness() {
		return nil, models.NewValidationError(
			fmt.Sprintf("user %d is not a business user", input.BusinessUser))
	}

	exists, err := s.reviewRepo.ExistsForPair(ctx, reviewer.ID, target.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if exists {
		observability.ReviewConflicts.Inc()
		return nil, models.NewConflictError("you have already reviewed this business user")
	}

	review := &models.Review{
		BusinessUserID: target.ID,
		ReviewerID:     reviewer.ID,
		Rating:         input.Rating,
		Description:    input.Description,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			observability.ReviewConflicts.Inc()
			return nil, models.NewConflictError("you have already reviewed this business user")
		}
		return nil, models.NewInternalError(err)
	}

	observability.ReviewsCreated.Inc()
	cache.InvalidateBaseInfo(ctx)
	return review, nil
}

// UpdateReview patches rating and description. The reviewer and business user
// of an existing review never change.
func (s *ReviewService) UpdateReview(ctx context.Context, review *models.Review, input UpdateReviewInput) (*models.Review, error) {
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
		review.Rating = *input.Rating
	}
	if input.Description != nil {
		review.Description = *input.Description
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateBaseInfo(ctx)
	return review, nil
}

// DeleteReview removes a review and frees the (reviewer, business_user) pair
// for a future review.
func (s *ReviewService) DeleteReview(ctx context.Context, review *models.Review) error {
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBaseInfo(ctx)
	return nil
}

// GetReview loads one review, mapping missing rows to NotFound.
func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return review, nil
}
