package server

import (
	"errors"
	"fmt"
	"time"

	"gigmarket/internal/cache"
	"gigmarket/internal/models"
	"gigmarket/internal/permissions"
	"gigmarket/internal/query"
	"gigmarket/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// detailRef is the compact tier reference carried by offer payloads.
type detailRef struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// offerUserDetails is the creator summary embedded in offer list items.
type offerUserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type offerResponse struct {
	ID              uint              `json:"id"`
	User            uint              `json:"user"`
	Title           string            `json:"title"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []detailRef       `json:"details"`
	MinPrice        float64           `json:"min_price"`
	MinDeliveryTime int               `json:"min_delivery_time"`
	UserDetails     *offerUserDetails `json:"user_details,omitempty"`
}

func detailURL(id uint) string {
	return fmt.Sprintf("/api/offerdetails/%d/", id)
}

// serializeOffer renders the wire shape. withUser adds the creator summary,
// present on list items only.
func serializeOffer(offer *models.Offer, withUser bool) offerResponse {
	refs := make([]detailRef, 0, len(offer.Details))
	for _, d := range offer.Details {
		refs = append(refs, detailRef{ID: d.ID, URL: detailURL(d.ID)})
	}

	out := offerResponse{
		ID:              offer.ID,
		User:            offer.CreatorID,
		Title:           offer.Title,
		Image:           offer.Image,
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         refs,
		MinPrice:        offer.MinPrice,
		MinDeliveryTime: offer.MinDeliveryTime,
	}
	if withUser {
		out.UserDetails = &offerUserDetails{
			FirstName: offer.Creator.FirstName,
			LastName:  offer.Creator.LastName,
			Username:  offer.Creator.Username,
		}
	}
	return out
}

// ListOffers handles GET /api/offers/
// @Summary List offers
// @Description Filter, order, and paginate published offers
// @Tags offers
// @Produce json
// @Param creator_id query int false "Filter by creator"
// @Param search query string false "Case-insensitive substring over title and description"
// @Param min_price query number false "Minimum derived price"
// @Param max_delivery_time query int false "Maximum derived delivery time in days"
// @Param ordering query string false "updated_at, -updated_at, min_price or -min_price"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} query.Page
// @Failure 400 {object} models.ErrorResponse
// @Router /offers/ [get]
func (s *Server) ListOffers(c *fiber.Ctx) error {
	params, err := query.ParseOfferListParams(c.Queries())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	offers, count, err := s.offerRepo.List(c.Context(), params)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	results := make([]offerResponse, 0, len(offers))
	for _, offer := range offers {
		results = append(results, serializeOffer(offer, true))
	}
	return c.JSON(query.NewPage(count, params.Page, params.PageSize, results))
}

// CreateOffer handles POST /api/offers/
// @Summary Publish an offer
// @Description Create an offer with exactly one detail per tier
// @Tags offers
// @Accept json
// @Produce json
// @Param request body service.CreateOfferInput true "Offer payload"
// @Success 201 {object} offerResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /offers/ [post]
func (s *Server) CreateOffer(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	if !permissions.IsBusiness(caller) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("Only business users may publish offers"))
	}

	var input service.CreateOfferInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	offer, err := s.offerService.CreateOffer(c.Context(), caller, input)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(serializeOffer(offer, false))
}

// GetOffer handles GET /api/offers/:id/
// @Summary Get an offer
// @Description Return one offer with its derived minimums
// @Tags offers
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} offerResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /offers/{id}/ [get]
func (s *Server) GetOffer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	offer, err := s.offerService.GetOffer(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(serializeOffer(offer, false))
}

// UpdateOffer handles PATCH /api/offers/:id/
// @Summary Update an offer
// @Description Patch offer fields and individual tiers; only the creator may update
// @Tags offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param request body service.UpdateOfferInput true "Patch payload"
// @Success 200 {object} offerResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /offers/{id}/ [patch]
func (s *Server) UpdateOffer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	offer, err := s.offerService.GetOffer(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !permissions.IsOwner(caller, offer) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You may only edit your own offers"))
	}

	var input service.UpdateOfferInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.offerService.UpdateOffer(c.Context(), offer, input)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(serializeOffer(updated, false))
}

// DeleteOffer handles DELETE /api/offers/:id/
// @Summary Delete an offer
// @Description Remove an offer and its tiers; existing orders keep their snapshots
// @Tags offers
// @Param id path int true "Offer ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /offers/{id}/ [delete]
func (s *Server) DeleteOffer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	offer, err := s.offerService.GetOffer(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !permissions.IsOwnerOrStaff(caller, offer) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You may only delete your own offers"))
	}

	if err := s.offerService.DeleteOffer(c.Context(), offer); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetOfferDetail handles GET /api/offerdetails/:id/
// @Summary Get a single offer tier
// @Tags offers
// @Produce json
// @Param id path int true "Offer detail ID"
// @Success 200 {object} models.OfferDetail
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /offerdetails/{id}/ [get]
func (s *Server) GetOfferDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var detail models.OfferDetail
	loadErr := cache.Aside(c.Context(), cache.OfferDetailKey(id), &detail, cache.OfferDetailTTL, func() error {
		loaded, err := s.offerRepo.GetDetailByID(c.Context(), id)
		if err != nil {
			return err
		}
		detail = *loaded
		return nil
	})
	if loadErr != nil {
		if errors.Is(loadErr, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("OfferDetail", id))
		}
		return models.RespondWithAppError(c, models.NewInternalError(loadErr))
	}
	return c.JSON(detail)
}
