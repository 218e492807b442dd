package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"gigmarket/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "user_type"}).
					AddRow(1, "anna", "anna@example.com", "business")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "anna", Email: "anna@example.com", UserType: models.UserTypeBusiness},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)
			if tt.expectedError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedUser.Username, user.Username)
			assert.Equal(t, tt.expectedUser.UserType, user.UserType)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepositoryGetByUsernameMissingReturnsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateWithProfileRollsBackOnProfileError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "business_profiles"`).
		WillReturnError(errors.New("profile insert failed"))
	mock.ExpectRollback()

	err := repo.CreateWithProfile(context.Background(), &models.User{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "hash",
		UserType: models.UserTypeBusiness,
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The integration-style cases below use the shared sqlite harness.

func TestUserRepositoryCreateWithProfileCreatesProfileRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	business := &models.User{Username: "anna", Email: "anna@example.com", Password: "pw", UserType: models.UserTypeBusiness}
	require.NoError(t, repo.CreateWithProfile(ctx, business))

	profile, err := repo.GetBusinessProfile(ctx, business.ID)
	require.NoError(t, err)
	assert.Equal(t, business.ID, profile.UserID)
	assert.Equal(t, business.Email, profile.Email)

	customer := &models.User{Username: "kevin", Email: "kevin@example.com", Password: "pw", UserType: models.UserTypeCustomer}
	require.NoError(t, repo.CreateWithProfile(ctx, customer))

	customerProfile, err := repo.GetCustomerProfile(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, customerProfile.UserID)
}

func TestUserRepositoryCreateWithProfileDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "taken", Email: "first@example.com", Password: "pw", UserType: models.UserTypeCustomer}
	require.NoError(t, repo.CreateWithProfile(ctx, first))

	dup := &models.User{Username: "taken", Email: "second@example.com", Password: "pw", UserType: models.UserTypeCustomer}
	err := repo.CreateWithProfile(ctx, dup)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// The failed transaction must not leave a dangling profile row.
	var count int64
	require.NoError(t, db.Model(&models.CustomerProfile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
