package models

// BaseInfo is the aggregate snapshot served on the public landing endpoint.
// Every field is computed from the current store state at read time.
type BaseInfo struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}
