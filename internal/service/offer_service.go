// Package service implements the write-path business rules on top of the
// repositories. Services validate payloads and orchestrate transactions;
// authorization happens before they are called.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gigmarket/internal/cache"
	"gigmarket/internal/models"
	"gigmarket/internal/observability"
	"gigmarket/internal/repository"

	"gorm.io/gorm"
)

// OfferDetailInput is one tier of an offer payload. Numeric fields are
// pointers so an absent value can be defaulted to zero rather than rejected.
type OfferDetailInput struct {
	OfferType          string   `json:"offer_type"`
	Title              string   `json:"title"`
	Revisions          *int     `json:"revisions"`
	DeliveryTimeInDays *int     `json:"delivery_time_in_days"`
	Price              *float64 `json:"price"`
	Features           []string `json:"features"`
}

// CreateOfferInput is the payload for publishing an offer.
type CreateOfferInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Details     []OfferDetailInput `json:"details"`
}

// UpdateOfferInput patches offer fields and individual tiers. Tiers are
// matched by offer_type; the tier set itself can never change.
type UpdateOfferInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Details     []OfferDetailInput `json:"details"`
}

// OfferService carries the offer write-path rules.
type OfferService struct {
	offerRepo repository.OfferRepository
}

// NewOfferService creates a new offer service.
func NewOfferService(offerRepo repository.OfferRepository) *OfferService {
	return &OfferService{offerRepo: offerRepo}
}

// validateTierSet checks that the details cover exactly the three tiers,
// naming the first missing or duplicated one.
func validateTierSet(details []OfferDetailInput) error {
	if len(details) != 3 {
		return models.NewValidationError(
			fmt.Sprintf("An offer must contain exactly 3 details, got %d", len(details)))
	}

	seen := make(map[models.OfferType]bool, 3)
	for _, d := range details {
		tier := models.OfferType(d.OfferType)
		if !tier.Valid() {
			return models.NewValidationError(
				fmt.Sprintf("Unknown offer_type %q; details must be 'basic', 'standard' and 'premium'", d.OfferType))
		}
		if seen[tier] {
			return models.NewValidationError(
				fmt.Sprintf("Duplicate %q tier; each offer_type may appear only once", tier))
		}
		seen[tier] = true
	}
	for _, tier := range models.OfferTypes {
		if !seen[tier] {
			return models.NewValidationError(
				fmt.Sprintf("Missing %q tier; details must cover 'basic', 'standard' and 'premium'", tier))
		}
	}
	return nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func validateDetailValues(d OfferDetailInput) error {
	if d.Title != "" && strings.TrimSpace(d.Title) == "" {
		return models.NewValidationError("Detail title cannot be blank")
	}
	if d.Price != nil && *d.Price < 0 {
		return models.NewValidationError("Price cannot be negative")
	}
	if d.DeliveryTimeInDays != nil && *d.DeliveryTimeInDays < 0 {
		return models.NewValidationError("Delivery time cannot be negative")
	}
	if d.Revisions != nil && *d.Revisions < 0 {
		return models.NewValidationError("Revisions cannot be negative")
	}
	return nil
}

// CreateOffer validates the payload and inserts the offer with its three
// tiers atomically.
func (s *OfferService) CreateOffer(ctx context.Context, creator *models.User, in CreateOfferInput) (*models.Offer, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if err := validateTierSet(in.Details); err != nil {
		return nil, err
	}

	offer := &models.Offer{
		CreatorID:   creator.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Image:       in.Image,
	}
	for _, d := range in.Details {
		if err := validateDetailValues(d); err != nil {
			return nil, err
		}
		features := d.Features
		if features == nil {
			features = []string{}
		}
		offer.Details = append(offer.Details, models.OfferDetail{
			OfferType:          models.OfferType(d.OfferType),
			Title:              strings.TrimSpace(d.Title),
			Revisions:          intOrZero(d.Revisions),
			DeliveryTimeInDays: intOrZero(d.DeliveryTimeInDays),
			Price:              floatOrZero(d.Price),
			Features:           features,
		})
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.OffersCreated.Inc()
	cache.InvalidateBaseInfo(ctx)

	created, err := s.offerRepo.GetByID(ctx, offer.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

// UpdateOffer patches the offer and any tiers named in the payload. Tiers
// are addressed by offer_type, so the one-detail-per-tier invariant holds by
// construction.
func (s *OfferService) UpdateOffer(ctx context.Context, offer *models.Offer, in UpdateOfferInput) (*models.Offer, error) {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be blank")
		}
		offer.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, models.NewValidationError("Description cannot be blank")
		}
		offer.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		offer.Image = *in.Image
	}

	byTier := make(map[models.OfferType]*models.OfferDetail, len(offer.Details))
	for i := range offer.Details {
		byTier[offer.Details[i].OfferType] = &offer.Details[i]
	}

	var touchedDetailIDs []uint
	for _, patch := range in.Details {
		tier := models.OfferType(patch.OfferType)
		if !tier.Valid() {
			return nil, models.NewValidationError(
				fmt.Sprintf("Unknown offer_type %q in details", patch.OfferType))
		}
		detail, ok := byTier[tier]
		if !ok {
			return nil, models.NewInternalError(fmt.Errorf("offer %d is missing its %s tier", offer.ID, tier))
		}
		if err := validateDetailValues(patch); err != nil {
			return nil, err
		}
		if patch.Title != "" {
			detail.Title = strings.TrimSpace(patch.Title)
		}
		if patch.Revisions != nil {
			detail.Revisions = *patch.Revisions
		}
		if patch.DeliveryTimeInDays != nil {
			detail.DeliveryTimeInDays = *patch.DeliveryTimeInDays
		}
		if patch.Price != nil {
			detail.Price = *patch.Price
		}
		if patch.Features != nil {
			detail.Features = patch.Features
		}
		touchedDetailIDs = append(touchedDetailIDs, detail.ID)
	}

	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, patch := range in.Details {
		detail := byTier[models.OfferType(patch.OfferType)]
		if err := s.offerRepo.SaveDetail(ctx, detail); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	cache.InvalidateOfferDetails(ctx, touchedDetailIDs...)
	updated, err := s.offerRepo.GetByID(ctx, offer.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated, nil
}

// DeleteOffer removes the offer and its tiers. Existing orders keep their
// snapshots with the offer reference nulled.
func (s *OfferService) DeleteOffer(ctx context.Context, offer *models.Offer) error {
	detailIDs, err := s.offerRepo.DetailIDs(ctx, offer.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.offerRepo.Delete(ctx, offer.ID); err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateOfferDetails(ctx, detailIDs...)
	cache.InvalidateBaseInfo(ctx)
	return nil
}

// GetOffer loads one offer with its derived minimums, mapping missing rows
// to the NotFound taxonomy.
func (s *OfferService) GetOffer(ctx context.Context, id uint) (*models.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Offer", id)
		}
		return nil, models.NewInternalError(err)
	}
	return offer, nil
}
