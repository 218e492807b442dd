package repository

import (
	"context"

	"gigmarket/internal/models"

	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	CreateFromDetail(ctx context.Context, customerUserID, offerDetailID uint) (*models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uint) error
	CountForBusiness(ctx context.Context, businessUserID uint, status models.OrderStatus) (int64, error)
}

// orderRepository implements OrderRepository
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateFromDetail resolves the tier, snapshots its fields, and inserts the
// order inside one transaction. A partially snapshotted order is never
// visible: either the complete row commits or nothing does. Returns
// gorm.ErrRecordNotFound when the tier or its parent offer is gone.
func (r *orderRepository) CreateFromDetail(ctx context.Context, customerUserID, offerDetailID uint) (*models.Order, error) {
	var order *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var detail models.OfferDetail
		if err := tx.First(&detail, offerDetailID).Error; err != nil {
			return err
		}
		var offer models.Offer
		if err := tx.First(&offer, detail.OfferID).Error; err != nil {
			return err
		}

		offerID := offer.ID
		detailID := detail.ID
		order = &models.Order{
			CustomerUserID:     customerUserID,
			BusinessUserID:     offer.CreatorID,
			OfferID:            &offerID,
			OfferDetailID:      &detailID,
			Title:              detail.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           detail.Features,
			OfferType:          detail.OfferType,
			Status:             models.OrderStatusPending,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForUser returns orders where the user is either side, newest first.
// The orders list is never paginated.
func (r *orderRepository) ListForUser(ctx context.Context, userID uint) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.WithContext(ctx).
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, id).Error
}

func (r *orderRepository) CountForBusiness(ctx context.Context, businessUserID uint, status models.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("business_user_id = ? AND status = ?", businessUserID, status).
		Count(&count).Error
	return count, err
}
