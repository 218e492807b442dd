package models

import (
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusInProgress marks an order the business has started.
	OrderStatusInProgress OrderStatus = "in_progress"
	// OrderStatusCompleted marks delivered work.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled marks an abandoned order.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer's purchase of one offer tier. The tier's fields are
// copied onto the order at creation, so deleting or editing the offer later
// never changes what was bought; the offer references go null on delete but
// the snapshot stays.
type Order struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	CustomerUserID uint  `gorm:"not null;index" json:"customer_user"`
	Customer       User  `gorm:"foreignKey:CustomerUserID" json:"-"`
	BusinessUserID uint  `gorm:"not null;index" json:"business_user"`
	Business       User  `gorm:"foreignKey:BusinessUserID" json:"-"`
	OfferID        *uint `gorm:"index" json:"-"`
	Offer          *Offer `gorm:"foreignKey:OfferID;constraint:OnDelete:SET NULL" json:"-"`
	OfferDetailID  *uint `gorm:"index" json:"-"`

	// Snapshot of the purchased tier, immutable after creation.
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `gorm:"serializer:json" json:"features"`
	OfferType          OfferType `gorm:"type:varchar(10)" json:"offer_type"`

	Status      OrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OwnedBy reports whether the given user placed this order.
func (o *Order) OwnedBy(userID uint) bool {
	return o.CustomerUserID == userID
}

// Participant reports whether the given user is on either side of the order.
func (o *Order) Participant(userID uint) bool {
	return o.CustomerUserID == userID || o.BusinessUserID == userID
}
