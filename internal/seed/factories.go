// Package seed provides helpers to create demo data for the marketplace
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gigmarket/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var serviceNouns = []string{
	"Logo Design", "Web Development", "SEO Audit", "Copywriting", "Video Editing",
	"App Prototype", "Brand Guide", "Social Media Kit", "Landing Page", "Data Scraping",
	"Illustration", "Voice Over", "Translation", "Resume Review", "Pitch Deck",
}

var tierFeaturePool = []string{
	"Source files", "Commercial license", "Responsive design", "Priority support",
	"Express delivery", "Style guide", "3 concepts", "Stock assets", "Keyword research",
	"Competitor analysis", "Unlimited stock photos", "Custom animations",
}

// demoPassword is the bcrypt hash of "password123", shared by all seed users.
var demoPassword = func() string {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return string(hash)
}()

// CreateUser persists a user of the given type together with its profile row.
func (f *Factory) CreateUser(userType models.UserType, overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, f.rand.Intn(10000)))

	user := &models.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  demoPassword,
		FirstName: first,
		LastName:  last,
		UserType:  userType,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Username, err)
	}

	switch userType {
	case models.UserTypeBusiness:
		profile := &models.BusinessProfile{
			UserID:         user.ID,
			CompanyName:    gofakeit.Company(),
			Description:    gofakeit.Sentence(12),
			Phone:          gofakeit.Phone(),
			Email:          user.Email,
			Location:       gofakeit.City(),
			WorkingHours:   fmt.Sprintf("%d-%d", 7+f.rand.Intn(3), 16+f.rand.Intn(4)),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", user.Username),
		}
		if err := f.db.Create(profile).Error; err != nil {
			return nil, fmt.Errorf("create business profile for %s: %w", user.Username, err)
		}
	case models.UserTypeCustomer:
		profile := &models.CustomerProfile{
			UserID:         user.ID,
			Bio:            gofakeit.Sentence(8),
			Phone:          gofakeit.Phone(),
			Email:          user.Email,
			Location:       gofakeit.City(),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", user.Username),
		}
		if err := f.db.Create(profile).Error; err != nil {
			return nil, fmt.Errorf("create customer profile for %s: %w", user.Username, err)
		}
	}

	return user, nil
}

// CreateOffer persists an offer for the given business user with one detail
// per tier. Tier prices and delivery times scale basic < standard < premium.
func (f *Factory) CreateOffer(creator *models.User) (*models.Offer, error) {
	service := serviceNouns[f.rand.Intn(len(serviceNouns))]
	basePrice := float64(20 + f.rand.Intn(80))
	baseDays := 1 + f.rand.Intn(4)

	offer := &models.Offer{
		CreatorID:   creator.ID,
		Title:       fmt.Sprintf("%s by %s", service, creator.FirstName),
		Description: gofakeit.Paragraph(1, 3, 10, " "),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
		Details: []models.OfferDetail{
			{
				OfferType:          models.OfferTypeBasic,
				Title:              fmt.Sprintf("Basic %s", service),
				Revisions:          1,
				DeliveryTimeInDays: baseDays,
				Price:              basePrice,
				Features:           f.pickFeatures(2),
			},
			{
				OfferType:          models.OfferTypeStandard,
				Title:              fmt.Sprintf("Standard %s", service),
				Revisions:          3,
				DeliveryTimeInDays: baseDays + 2,
				Price:              basePrice * 2,
				Features:           f.pickFeatures(4),
			},
			{
				OfferType:          models.OfferTypePremium,
				Title:              fmt.Sprintf("Premium %s", service),
				Revisions:          5,
				DeliveryTimeInDays: baseDays + 5,
				Price:              basePrice * 4,
				Features:           f.pickFeatures(6),
			},
		},
	}

	if err := f.db.Create(offer).Error; err != nil {
		return nil, fmt.Errorf("create offer %q: %w", offer.Title, err)
	}
	return offer, nil
}

// CreateOrder persists an order snapshotting a random tier of the offer.
func (f *Factory) CreateOrder(customer *models.User, offer *models.Offer) (*models.Order, error) {
	if len(offer.Details) == 0 {
		return nil, fmt.Errorf("offer %d has no details to order", offer.ID)
	}
	detail := offer.Details[f.rand.Intn(len(offer.Details))]

	statuses := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusInProgress,
		models.OrderStatusInProgress,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	}
	status := statuses[f.rand.Intn(len(statuses))]

	order := &models.Order{
		CustomerUserID:     customer.ID,
		BusinessUserID:     offer.CreatorID,
		OfferID:            &offer.ID,
		OfferDetailID:      &detail.ID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
		Status:             status,
	}
	if status == models.OrderStatusCompleted {
		completed := time.Now().Add(-time.Duration(f.rand.Intn(30*24)) * time.Hour).UTC()
		order.CompletedAt = &completed
	}

	if err := f.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("create order for offer %d: %w", offer.ID, err)
	}
	return order, nil
}

// CreateReview persists a review from the customer for the business user.
// Returns gorm's duplicate error untouched so callers can skip taken pairs.
func (f *Factory) CreateReview(customer, business *models.User) (*models.Review, error) {
	review := &models.Review{
		ReviewerID:     customer.ID,
		BusinessUserID: business.ID,
		Rating:         1 + f.rand.Intn(5),
		Description:    gofakeit.Sentence(10),
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (f *Factory) pickFeatures(n int) []string {
	picked := make([]string, 0, n)
	perm := f.rand.Perm(len(tierFeaturePool))
	for i := 0; i < n && i < len(perm); i++ {
		picked = append(picked, tierFeaturePool[perm[i]])
	}
	return picked
}
