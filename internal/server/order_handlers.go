package server

import (
	"gigmarket/internal/models"
	"gigmarket/internal/permissions"

	"github.com/gofiber/fiber/v2"
)

// ListOrders handles GET /api/orders/
// @Summary List own orders
// @Description Return every order where the caller is customer or business side, newest first. Never paginated.
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /orders/ [get]
func (s *Server) ListOrders(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	orders, err := s.orderRepo.ListForUser(c.Context(), caller.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(orders)
}

// CreateOrder handles POST /api/orders/
// @Summary Place an order
// @Description Order one offer tier; its fields are snapshotted onto the order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body object{offer_detail_id=int} true "Tier to order"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /orders/ [post]
func (s *Server) CreateOrder(c *fiber.Ctx) error {
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	if !permissions.IsCustomer(caller) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("Only customers may place orders"))
	}

	var req struct {
		OfferDetailID uint `json:"offer_detail_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	order, err := s.orderService.CreateOrder(c.Context(), caller, req.OfferDetailID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetOrder handles GET /api/orders/:id/
// @Summary Get an order
// @Description Return one order; only its participants may read it
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/ [get]
func (s *Server) GetOrder(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	order, err := s.orderService.GetOrder(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !permissions.IsOrderParticipant(caller, order) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You are not a participant of this order"))
	}
	return c.JSON(order)
}

// UpdateOrder handles PATCH /api/orders/:id/
// @Summary Update an order's status
// @Description Only the business side may move an order through its lifecycle
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body object{status=string} true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/ [patch]
func (s *Server) UpdateOrder(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	order, err := s.orderService.GetOrder(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !permissions.IsOrderBusinessPartner(caller, order) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("Only the business partner may update the order status"))
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.orderService.UpdateStatus(c.Context(), order, req.Status)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(updated)
}

// DeleteOrder handles DELETE /api/orders/:id/
// @Summary Delete an order
// @Description Staff-only destructive operation
// @Tags orders
// @Param id path int true "Order ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/ [delete]
func (s *Server) DeleteOrder(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	if !permissions.IsStaff(caller) {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("Only staff may delete orders"))
	}

	order, err := s.orderService.GetOrder(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if err := s.orderService.DeleteOrder(c.Context(), order); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OrderCount handles GET /api/order-count/:business_user_id/
// @Summary Count a business user's in-progress orders
// @Tags orders
// @Produce json
// @Param business_user_id path int true "Business user ID"
// @Success 200 {object} object{order_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /order-count/{business_user_id}/ [get]
func (s *Server) OrderCount(c *fiber.Ctx) error {
	businessUserID, err := s.parseID(c, "business_user_id")
	if err != nil {
		return nil
	}

	count, err := s.orderService.CountForBusiness(c.Context(), businessUserID, models.OrderStatusInProgress)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"order_count": count})
}

// CompletedOrderCount handles GET /api/completed-order-count/:business_user_id/
// @Summary Count a business user's completed orders
// @Tags orders
// @Produce json
// @Param business_user_id path int true "Business user ID"
// @Success 200 {object} object{completed_order_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /completed-order-count/{business_user_id}/ [get]
func (s *Server) CompletedOrderCount(c *fiber.Ctx) error {
	businessUserID, err := s.parseID(c, "business_user_id")
	if err != nil {
		return nil
	}

	count, err := s.orderService.CountForBusiness(c.Context(), businessUserID, models.OrderStatusCompleted)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"completed_order_count": count})
}
