// Command main runs the database seeder for Gigmarket.
package main

import (
	"flag"
	"log"

	"gigmarket/internal/config"
	"gigmarket/internal/database"
	"gigmarket/internal/seed"
)

func main() {
	numBusinesses := flag.Int("businesses", 10, "Number of business accounts to create")
	numCustomers := flag.Int("customers", 30, "Number of customer accounts to create")
	numOffers := flag.Int("offers", 40, "Number of offers to create")
	numOrders := flag.Int("orders", 80, "Number of orders to create")
	numReviews := flag.Int("reviews", 50, "Number of reviews to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d businesses, %d customers, %d offers, %d orders, %d reviews, clean=%v\n",
		*numBusinesses, *numCustomers, *numOffers, *numOrders, *numReviews, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumBusinesses: *numBusinesses,
		NumCustomers:  *numCustomers,
		NumOffers:     *numOffers,
		NumOrders:     *numOrders,
		NumReviews:    *numReviews,
		ShouldClean:   *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All seed users have the password: password123")
}
