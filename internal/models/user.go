// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserType distinguishes customers from business users.
type UserType string

const (
	// UserTypeCustomer marks an account that places orders and writes reviews.
	UserTypeCustomer UserType = "customer"
	// UserTypeBusiness marks an account that publishes offers.
	UserTypeBusiness UserType = "business"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	return t == UserTypeCustomer || t == UserTypeBusiness
}

// User represents an account. UserType is fixed at registration; the matching
// profile row is created in the same transaction.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	UserType  UserType  `gorm:"type:varchar(10);not null;index" json:"type"`
	IsStaff   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBusiness reports whether the user publishes offers.
func (u *User) IsBusiness() bool {
	return u.UserType == UserTypeBusiness
}

// IsCustomer reports whether the user places orders.
func (u *User) IsCustomer() bool {
	return u.UserType == UserTypeCustomer
}
