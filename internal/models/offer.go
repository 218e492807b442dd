package models

import (
	"time"
)

// OfferType identifies one of the three tiers every offer carries.
type OfferType string

const (
	// OfferTypeBasic is the entry tier.
	OfferTypeBasic OfferType = "basic"
	// OfferTypeStandard is the middle tier.
	OfferTypeStandard OfferType = "standard"
	// OfferTypePremium is the top tier.
	OfferTypePremium OfferType = "premium"
)

// OfferTypes lists the tier set every offer must carry, in canonical order.
var OfferTypes = []OfferType{OfferTypeBasic, OfferTypeStandard, OfferTypePremium}

// Valid reports whether t is one of the known tiers.
func (t OfferType) Valid() bool {
	return t == OfferTypeBasic || t == OfferTypeStandard || t == OfferTypePremium
}

// Offer is a business user's published service listing. It owns exactly one
// detail per tier; the tier set is enforced at creation and the composite
// unique index on (offer_id, offer_type) keeps updates from violating it.
type Offer struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	CreatorID   uint          `gorm:"not null;index" json:"user"`
	Creator     User          `gorm:"foreignKey:CreatorID" json:"-"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Image       string        `json:"image"`
	Details     []OfferDetail `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"details"`
	// MinPrice is not persisted; computed at query time
	MinPrice float64 `gorm:"->" json:"min_price"`
	// MinDeliveryTime is not persisted; computed at query time
	MinDeliveryTime int       `gorm:"->" json:"min_delivery_time"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OwnedBy reports whether the given user created this offer.
func (o *Offer) OwnedBy(userID uint) bool {
	return o.CreatorID == userID
}

// OfferDetail is one tier of an offer.
type OfferDetail struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	OfferID            uint      `gorm:"not null;uniqueIndex:idx_offer_tier" json:"-"`
	OfferType          OfferType `gorm:"type:varchar(10);not null;uniqueIndex:idx_offer_tier" json:"offer_type"`
	Title              string    `gorm:"not null" json:"title"`
	Revisions          int       `gorm:"default:0" json:"revisions"`
	DeliveryTimeInDays int       `gorm:"not null" json:"delivery_time_in_days"`
	Price              float64   `gorm:"not null" json:"price"`
	Features           []string  `gorm:"serializer:json" json:"features"`
}

// TableName specifies the table name for GORM
func (OfferDetail) TableName() string {
	return "offer_details"
}
