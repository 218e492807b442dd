package service

import (
	"context"
	"errors"
	"time"

	"gigmarket/internal/models"
	"gigmarket/internal/observability"
	"gigmarket/internal/repository"

	"gorm.io/gorm"
)

// OrderService carries the order write-path rules.
type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, userRepo: userRepo}
}

// CreateOrder places an order for the given tier. The repository snapshots
// the tier inside the insert transaction; a tier whose parent offer was
// deleted resolves to NotFound.
func (s *OrderService) CreateOrder(ctx context.Context, customer *models.User, offerDetailID uint) (*models.Order, error) {
	if offerDetailID == 0 {
		return nil, models.NewValidationError("offer_detail_id is required")
	}

	order, err := s.orderRepo.CreateFromDetail(ctx, customer.ID, offerDetailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("OfferDetail", offerDetailID)
		}
		return nil, models.NewInternalError(err)
	}

	observability.OrdersCreated.Inc()
	return order, nil
}

// UpdateStatus moves the order to the given status and maintains the
// completion timestamp. Snapshot fields are never touched.
func (s *OrderService) UpdateStatus(ctx context.Context, order *models.Order, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, models.NewValidationError(
			"status must be one of 'pending', 'in_progress', 'completed', 'cancelled'")
	}

	order.Status = status
	if status == models.OrderStatusCompleted {
		if order.CompletedAt == nil {
			now := time.Now().UTC()
			order.CompletedAt = &now
		}
	} else {
		order.CompletedAt = nil
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.OrderStatusTransitions.WithLabelValues(string(status)).Inc()
	return order, nil
}

// GetOrder loads one order, mapping missing rows to NotFound.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Order", id)
		}
		return nil, models.NewInternalError(err)
	}
	return order, nil
}

// DeleteOrder removes an order. The caller has already been checked for the
// staff override; this only performs the delete.
func (s *OrderService) DeleteOrder(ctx context.Context, order *models.Order) error {
	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CountForBusiness counts the orders of one business user in the given
// status. A business with no orders counts zero; an id that does not resolve
// to a business user is NotFound.
func (s *OrderService) CountForBusiness(ctx context.Context, businessUserID uint, status models.OrderStatus) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, businessUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Business user", businessUserID)
		}
		return 0, models.NewInternalError(err)
	}
	if !user.IsBusiness() {
		return 0, models.NewNotFoundError("Business user", businessUserID)
	}

	count, err := s.orderRepo.CountForBusiness(ctx, businessUserID, status)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
