package server

import (
	"gigmarket/internal/models"
	"gigmarket/internal/permissions"
	"gigmarket/internal/query"
	"gigmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListReviews handles GET /api/reviews/
// @Summary List reviews
// @Description Filter and order reviews. Paginated only when page_size is supplied; otherwise a bare array.
// @Tags reviews
// @Produce json
// @Param business_user_id query int false "Filter by reviewed business user"
// @Param reviewer_id query int false "Filter by reviewer"
// @Param ordering query string false "updated_at, -updated_at, rating or -rating"
// @Param page query int false "Page number (with page_size)"
// @Param page_size query int false "Page size (max 100); enables pagination"
// @Success 200 {array} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reviews/ [get]
func (s *Server) ListReviews(c *fiber.Ctx) error {
	params, err := query.ParseReviewListParams(c.Queries())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	reviews, count, err := s.reviewRepo.List(c.Context(), params)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	if params.PageSize == nil {
		return c.JSON(reviews)
	}
	return c.JSON(query.NewPage(count, params.Page, *params.PageSize, reviews))
}

// CreateReview handles POST /api/reviews/
// @Summary Review a business user
// @Description One review per (reviewer, business user) pair
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body service.CreateReviewInput true "Review payload"
// @Success 201 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reviews/ [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	if !permissions.IsCustomer(caller) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("Only customers may write reviews"))
	}

	var input service.CreateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), caller, input)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReview handles GET /api/reviews/:id/
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id}/ [get]
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.GetReview(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(review)
}

// UpdateReview handles PATCH /api/reviews/:id/
// @Summary Update a review
// @Description Patch rating and description; only the reviewer may update
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body service.UpdateReviewInput true "Patch payload"
// @Success 200 {object} models.Review
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id}/ [patch]
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	review, err := s.reviewService.GetReview(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !permissions.IsOwner(caller, review) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You may only edit your own reviews"))
	}

	var input service.UpdateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.reviewService.UpdateReview(c.Context(), review, input)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(updated)
}

// DeleteReview handles DELETE /api/reviews/:id/
// @Summary Delete a review
// @Description Only the reviewer (or staff) may delete
// @Tags reviews
// @Param id path int true "Review ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id}/ [delete]
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	review, err := s.reviewService.GetReview(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !permissions.IsOwnerOrStaff(caller, review) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You may only delete your own reviews"))
	}

	if err := s.reviewService.DeleteReview(c.Context(), review); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
