package models

import (
	"time"
)

// BusinessProfile holds the public-facing fields of a business account.
// Exactly one exists per business user.
type BusinessProfile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CompanyName    string    `json:"company_name"`
	Description    string    `gorm:"type:text" json:"description"`
	Phone          string    `json:"tel"`
	Email          string    `json:"email"`
	Location       string    `json:"location"`
	WorkingHours   string    `json:"working_hours"`
	ProfilePicture string    `json:"file"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwnedBy reports whether the given user owns this profile.
func (p *BusinessProfile) OwnedBy(userID uint) bool {
	return p.UserID == userID
}

// CustomerProfile holds the public-facing fields of a customer account.
// Exactly one exists per customer user.
type CustomerProfile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Bio            string    `gorm:"type:text" json:"description"`
	Phone          string    `json:"tel"`
	Email          string    `json:"email"`
	Location       string    `json:"location"`
	ProfilePicture string    `json:"file"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwnedBy reports whether the given user owns this profile.
func (p *CustomerProfile) OwnedBy(userID uint) bool {
	return p.UserID == userID
}
