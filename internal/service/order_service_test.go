package service

import (
	"context"
	"errors"
	"testing"

	"gigmarket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createOfferWithTiers(t *testing.T, creator *models.User) *models.Offer {
	t.Helper()
	offer, err := e.offers.CreateOffer(context.Background(), creator, CreateOfferInput{
		Title: "Logo design", Description: "A logo", Details: fullTierInput(),
	})
	require.NoError(t, err)
	return offer
}

func TestCreateOrderSnapshotsTier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	business := env.createUser(t, "studio", models.UserTypeBusiness)
	customer := env.createUser(t, "client", models.UserTypeCustomer)
	offer := env.createOfferWithTiers(t, business)

	var premium models.OfferDetail
	for _, d := range offer.Details {
		if d.OfferType == models.OfferTypePremium {
			premium = d
		}
	}

	order, err := env.orders.CreateOrder(ctx, customer, premium.ID)
	require.NoError(t, err)

	assert.Equal(t, customer.ID, order.CustomerUserID)
	assert.Equal(t, business.ID, order.BusinessUserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Premium", order.Title)
	assert.Equal(t, float64(200), order.Price)
	assert.Equal(t, models.OfferTypePremium, order.OfferType)
	assert.Nil(t, order.CompletedAt)
}

func TestCreateOrderMissingDetailIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createUser(t, "client", models.UserTypeCustomer)

	_, err := env.orders.CreateOrder(context.Background(), customer, 9999)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUpdateStatusMaintainsCompletedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	business := env.createUser(t, "studio", models.UserTypeBusiness)
	customer := env.createUser(t, "client", models.UserTypeCustomer)
	offer := env.createOfferWithTiers(t, business)

	order, err := env.orders.CreateOrder(ctx, customer, offer.Details[0].ID)
	require.NoError(t, err)

	order, err = env.orders.UpdateStatus(ctx, order, models.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, order.CompletedAt)

	order, err = env.orders.UpdateStatus(ctx, order, models.OrderStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, order.CompletedAt)
	completedAt := *order.CompletedAt

	// Completing an already completed order keeps the original timestamp.
	order, err = env.orders.UpdateStatus(ctx, order, models.OrderStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, order.CompletedAt)
	assert.Equal(t, completedAt, *order.CompletedAt)

	// Leaving the completed state clears it again.
	order, err = env.orders.UpdateStatus(ctx, order, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, order.CompletedAt)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	business := env.createUser(t, "studio", models.UserTypeBusiness)
	customer := env.createUser(t, "client", models.UserTypeCustomer)
	offer := env.createOfferWithTiers(t, business)

	order, err := env.orders.CreateOrder(ctx, customer, offer.Details[0].ID)
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(ctx, order, models.OrderStatus("shipped"))
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestCountForBusiness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	business := env.createUser(t, "studio", models.UserTypeBusiness)
	customer := env.createUser(t, "client", models.UserTypeCustomer)
	offer := env.createOfferWithTiers(t, business)

	first, err := env.orders.CreateOrder(ctx, customer, offer.Details[0].ID)
	require.NoError(t, err)
	_, err = env.orders.CreateOrder(ctx, customer, offer.Details[1].ID)
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(ctx, first, models.OrderStatusInProgress)
	require.NoError(t, err)

	inProgress, err := env.orders.CountForBusiness(ctx, business.ID, models.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inProgress)

	completed, err := env.orders.CountForBusiness(ctx, business.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, completed)
}

func TestCountForBusinessRejectsNonBusinessTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createUser(t, "client", models.UserTypeCustomer)

	tests := []struct {
		name   string
		userID uint
	}{
		{name: "customer user", userID: customer.ID},
		{name: "missing user", userID: 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.orders.CountForBusiness(ctx, tt.userID, models.OrderStatusInProgress)
			require.Error(t, err)

			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeNotFound, appErr.Code)
		})
	}
}
