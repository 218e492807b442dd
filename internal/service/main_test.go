package service

import (
	"testing"

	"gigmarket/internal/models"
	"gigmarket/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	offerRepo   repository.OfferRepository
	orderRepo   repository.OrderRepository
	reviewRepo  repository.ReviewRepository
	offers      *OfferService
	orders      *OrderService
	reviews     *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		offerRepo:  repository.NewOfferRepository(db),
		orderRepo:  repository.NewOrderRepository(db),
		reviewRepo: repository.NewReviewRepository(db),
	}
	env.offers = NewOfferService(env.offerRepo)
	env.orders = NewOrderService(env.orderRepo, env.userRepo)
	env.reviews = NewReviewService(env.reviewRepo, env.userRepo)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string, userType models.UserType) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
		UserType: userType,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func strPtr(v string) *string       { return &v }

func fullTierInput() []OfferDetailInput {
	return []OfferDetailInput{
		{OfferType: "basic", Title: "Basic", Revisions: intPtr(1), DeliveryTimeInDays: intPtr(3), Price: floatPtr(50), Features: []string{"logo"}},
		{OfferType: "standard", Title: "Standard", Revisions: intPtr(3), DeliveryTimeInDays: intPtr(5), Price: floatPtr(100), Features: []string{"logo", "flyer"}},
		{OfferType: "premium", Title: "Premium", Revisions: intPtr(5), DeliveryTimeInDays: intPtr(7), Price: floatPtr(200), Features: []string{"logo", "flyer", "site"}},
	}
}
