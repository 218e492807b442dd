package repository

import (
	"testing"

	"gigmarket/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BusinessProfile{},
		&models.CustomerProfile{},
		&models.Offer{},
		&models.OfferDetail{},
		&models.Order{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, userType models.UserType) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
		UserType: userType,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// createOffer builds an offer with three tiers. The basic tier carries the
// given price and delivery time; standard and premium are strictly more
// expensive and slower, so basic always holds both minimums.
func createOffer(t *testing.T, db *gorm.DB, creator *models.User, title string, basicPrice float64, basicDelivery int) *models.Offer {
	t.Helper()
	offer := &models.Offer{
		CreatorID:   creator.ID,
		Title:       title,
		Description: "description of " + title,
		Details: []models.OfferDetail{
			{OfferType: models.OfferTypeBasic, Title: title + " basic", Price: basicPrice, DeliveryTimeInDays: basicDelivery, Revisions: 1, Features: []string{"one"}},
			{OfferType: models.OfferTypeStandard, Title: title + " standard", Price: basicPrice * 2, DeliveryTimeInDays: basicDelivery + 3, Revisions: 2, Features: []string{"one", "two"}},
			{OfferType: models.OfferTypePremium, Title: title + " premium", Price: basicPrice * 3, DeliveryTimeInDays: basicDelivery + 7, Revisions: 5, Features: []string{"one", "two", "three"}},
		},
	}
	if err := db.Create(offer).Error; err != nil {
		t.Fatalf("create offer %s: %v", title, err)
	}
	return offer
}
