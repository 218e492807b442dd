package repository

import (
	"context"
	"testing"

	"gigmarket/internal/models"
	"gigmarket/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferListFiltersCompose(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	bob := createUser(t, db, "bob", models.UserTypeBusiness)

	// Eleven offers spanning the filter edges: prices 10..110, deliveries 1..11.
	prices := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110}
	for i, price := range prices {
		creator := alice
		if i%2 == 1 {
			creator = bob
		}
		title := "offer"
		if i == 4 {
			title = "Logo Design Special"
		}
		createOffer(t, db, creator, title, price, i+1)
	}

	minPrice := 50.0
	maxDelivery := 8
	params := &query.OfferListParams{
		CreatorID:       &alice.ID,
		MinPrice:        &minPrice,
		MaxDeliveryTime: &maxDelivery,
		Page:            1,
		PageSize:        query.DefaultPageSize,
	}

	offers, count, err := repo.List(ctx, params)
	require.NoError(t, err)

	// Alice owns the offers at indexes 0,2,4,6,8,10 (prices 10,30,50,70,90,110,
	// deliveries 1,3,5,7,9,11). min_price >= 50 keeps 50..110; delivery <= 8
	// then keeps 50 (d=5) and 70 (d=7).
	assert.Equal(t, int64(2), count)
	require.Len(t, offers, 2)
	for _, offer := range offers {
		assert.Equal(t, alice.ID, offer.CreatorID)
		assert.GreaterOrEqual(t, offer.MinPrice, 50.0)
		assert.LessOrEqual(t, offer.MinDeliveryTime, 8)
	}
}

func TestOfferListSearchMatchesTitleOrDescription(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	createOffer(t, db, alice, "Logo Design", 10, 2)
	banner := createOffer(t, db, alice, "Banner", 20, 3)
	banner.Description = "includes a bonus logo sketch"
	require.NoError(t, db.Model(&models.Offer{}).Where("id = ?", banner.ID).Update("description", banner.Description).Error)
	createOffer(t, db, alice, "Business Cards", 30, 4)

	offers, count, err := repo.List(ctx, &query.OfferListParams{
		Search: "LOGO", Page: 1, PageSize: query.DefaultPageSize,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, offers, 2)
}

func TestOfferListSearchTreatsWildcardsAsLiterals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	createOffer(t, db, alice, "abc", 10, 2)
	underscored := createOffer(t, db, alice, "a_c", 20, 3)
	createOffer(t, db, alice, "100 logos", 30, 4)
	percent := createOffer(t, db, alice, "100% handmade", 40, 5)

	// "_" must only match itself, not any single character.
	offers, count, err := repo.List(ctx, &query.OfferListParams{
		Search: "a_c", Page: 1, PageSize: query.DefaultPageSize,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, offers, 1)
	assert.Equal(t, underscored.ID, offers[0].ID)

	// "%" must only match itself, not an arbitrary suffix.
	offers, count, err = repo.List(ctx, &query.OfferListParams{
		Search: "100%", Page: 1, PageSize: query.DefaultPageSize,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, offers, 1)
	assert.Equal(t, percent.ID, offers[0].ID)
}

func TestOfferListAbsentParamsImposeNoConstraint(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	for i := 0; i < 3; i++ {
		createOffer(t, db, alice, "offer", float64(10*(i+1)), i+1)
	}

	_, count, err := repo.List(ctx, &query.OfferListParams{Page: 1, PageSize: query.DefaultPageSize})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestOfferOrderingByMinPriceReverses(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	// Insertion order deliberately unsorted by price.
	for _, price := range []float64{40, 10, 30, 20} {
		createOffer(t, db, alice, "offer", price, 3)
	}

	asc, _, err := repo.List(ctx, &query.OfferListParams{
		Ordering: query.OrderingMinPrice, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	desc, _, err := repo.List(ctx, &query.OfferListParams{
		Ordering: query.OrderingMinPriceDesc, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)

	require.Len(t, asc, 4)
	require.Len(t, desc, 4)
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
	assert.Equal(t, 10.0, asc[0].MinPrice)
	assert.Equal(t, 40.0, desc[0].MinPrice)
}

func TestOfferDefaultOrderingIsByID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	for _, price := range []float64{30, 10, 20} {
		createOffer(t, db, alice, "offer", price, 3)
	}

	offers, _, err := repo.List(ctx, &query.OfferListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, offers, 3)
	for i := 1; i < len(offers); i++ {
		assert.Greater(t, offers[i].ID, offers[i-1].ID)
	}
}

func TestOfferListPagination(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	for i := 0; i < 13; i++ {
		createOffer(t, db, alice, "offer", float64(10+i), 3)
	}

	page1, count, err := repo.List(ctx, &query.OfferListParams{Page: 1, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(13), count)
	assert.Len(t, page1, 6)

	page3, count, err := repo.List(ctx, &query.OfferListParams{Page: 3, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(13), count)
	assert.Len(t, page3, 1)

	// A page past the end is an empty result, not an error.
	page4, count, err := repo.List(ctx, &query.OfferListParams{Page: 4, PageSize: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(13), count)
	assert.Empty(t, page4)
}

func TestOfferGetByIDComputesDerivedMinimums(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	created := createOffer(t, db, alice, "offer", 25, 4)

	offer, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, offer.MinPrice)
	assert.Equal(t, 4, offer.MinDeliveryTime)
	assert.Len(t, offer.Details, 3)
}

func TestOfferDeleteCascadesDetails(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	offer := createOffer(t, db, alice, "offer", 25, 4)

	require.NoError(t, repo.Delete(ctx, offer.ID))

	var detailCount int64
	require.NoError(t, db.Model(&models.OfferDetail{}).Where("offer_id = ?", offer.ID).Count(&detailCount).Error)
	assert.Zero(t, detailCount)
}

func TestOfferDetailTierUniquePerOffer(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	alice := createUser(t, db, "alice", models.UserTypeBusiness)
	offer := createOffer(t, db, alice, "offer", 25, 4)

	err := db.Create(&models.OfferDetail{
		OfferID:            offer.ID,
		OfferType:          models.OfferTypeBasic,
		Title:              "second basic",
		Price:              5,
		DeliveryTimeInDays: 1,
	}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}
