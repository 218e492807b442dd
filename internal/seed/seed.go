package seed

import (
	"fmt"
	"log"

	"gigmarket/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumBusinesses int
	NumCustomers  int
	NumOffers     int
	NumOrders     int
	NumReviews    int
	ShouldClean   bool
}

// Seed populates the database with demo marketplace data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d businesses, %d customers, %d offers...",
		opts.NumBusinesses, opts.NumCustomers, opts.NumOffers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db)

	businesses, customers, err := createUsers(factory, opts)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d business and %d customer accounts created", len(businesses), len(customers))

	offers, err := createOffers(factory, businesses, opts.NumOffers)
	if err != nil {
		return fmt.Errorf("failed to create offers: %w", err)
	}
	log.Printf("✓ %d offers created", len(offers))

	orders, err := createOrders(factory, customers, offers, opts.NumOrders)
	if err != nil {
		return fmt.Errorf("failed to create orders: %w", err)
	}
	log.Printf("✓ %d orders created", len(orders))

	reviews, err := createReviews(factory, customers, businesses, opts.NumReviews)
	if err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	log.Printf("✓ %d reviews created", len(reviews))

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE reviews, orders, offer_details, offers, customer_profiles, business_profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, opts Options) (businesses, customers []*models.User, err error) {
	// Fixed logins for manual testing, password "password123".
	wellKnown := []struct {
		username string
		userType models.UserType
		staff    bool
	}{
		{"andrey_business", models.UserTypeBusiness, false},
		{"kevin_customer", models.UserTypeCustomer, false},
		{"admin", models.UserTypeCustomer, true},
	}
	for _, w := range wellKnown {
		user, createErr := factory.CreateUser(w.userType, func(u *models.User) {
			u.Username = w.username
			u.Email = fmt.Sprintf("%s@example.com", w.username)
			u.IsStaff = w.staff
		})
		if createErr != nil {
			// The fixed accounts may already exist from a previous run.
			log.Printf("Skipping well-known user %s: %v", w.username, createErr)
			continue
		}
		if w.userType == models.UserTypeBusiness {
			businesses = append(businesses, user)
		} else {
			customers = append(customers, user)
		}
	}

	for i := len(businesses); i < opts.NumBusinesses; i++ {
		user, createErr := factory.CreateUser(models.UserTypeBusiness)
		if createErr != nil {
			log.Printf("Failed to create business user: %v", createErr)
			continue
		}
		businesses = append(businesses, user)
	}
	for i := len(customers); i < opts.NumCustomers; i++ {
		user, createErr := factory.CreateUser(models.UserTypeCustomer)
		if createErr != nil {
			log.Printf("Failed to create customer user: %v", createErr)
			continue
		}
		customers = append(customers, user)
	}

	if len(businesses) == 0 || len(customers) == 0 {
		return nil, nil, fmt.Errorf("need at least one business and one customer, got %d/%d",
			len(businesses), len(customers))
	}
	return businesses, customers, nil
}

func createOffers(factory *Factory, businesses []*models.User, count int) ([]*models.Offer, error) {
	offers := make([]*models.Offer, 0, count)
	for i := 0; i < count; i++ {
		creator := businesses[factory.rand.Intn(len(businesses))]
		offer, err := factory.CreateOffer(creator)
		if err != nil {
			log.Printf("Failed to create offer: %v", err)
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func createOrders(factory *Factory, customers []*models.User, offers []*models.Offer, count int) ([]*models.Order, error) {
	if len(offers) == 0 {
		return nil, nil
	}
	orders := make([]*models.Order, 0, count)
	for i := 0; i < count; i++ {
		customer := customers[factory.rand.Intn(len(customers))]
		offer := offers[factory.rand.Intn(len(offers))]
		order, err := factory.CreateOrder(customer, offer)
		if err != nil {
			log.Printf("Failed to create order: %v", err)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func createReviews(factory *Factory, customers []*models.User, businesses []*models.User, count int) ([]*models.Review, error) {
	reviews := make([]*models.Review, 0, count)
	// One review per (reviewer, business) pair; duplicates are skipped, so the
	// result may hold fewer than count reviews.
	taken := make(map[[2]uint]bool)
	attempts := 0
	for len(reviews) < count && attempts < count*10 {
		attempts++
		customer := customers[factory.rand.Intn(len(customers))]
		business := businesses[factory.rand.Intn(len(businesses))]
		pair := [2]uint{customer.ID, business.ID}
		if taken[pair] {
			continue
		}
		review, err := factory.CreateReview(customer, business)
		if err != nil {
			taken[pair] = true
			continue
		}
		taken[pair] = true
		reviews = append(reviews, review)
	}
	return reviews, nil
}
