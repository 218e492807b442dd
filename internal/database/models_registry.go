package database

import "gigmarket/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.BusinessProfile{},
		&models.CustomerProfile{},
		&models.Offer{},
		&models.OfferDetail{},
		&models.Order{},
		&models.Review{},
	}
}
