package models

import (
	"time"
)

// Review is a customer's rating of a business user. The composite unique
// index enforces at most one review per (reviewer, business) pair at the
// store level, so two concurrent creates cannot both land.
type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReviewerID     uint      `gorm:"not null;uniqueIndex:idx_reviewer_business" json:"reviewer"`
	Reviewer       User      `gorm:"foreignKey:ReviewerID" json:"-"`
	BusinessUserID uint      `gorm:"not null;uniqueIndex:idx_reviewer_business" json:"business_user"`
	Business       User      `gorm:"foreignKey:BusinessUserID" json:"-"`
	Rating         int       `gorm:"not null" json:"rating"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwnedBy reports whether the given user wrote this review.
func (r *Review) OwnedBy(userID uint) bool {
	return r.ReviewerID == userID
}
