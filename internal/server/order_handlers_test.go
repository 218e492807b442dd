package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gigmarket/internal/models"
	"gigmarket/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderTestServer(callerID uint) (*fiber.App, *MockUserRepository, *MockOrderRepository, *Server) {
	app := fiber.New()
	mockUsers := new(MockUserRepository)
	mockOrders := new(MockOrderRepository)
	s := &Server{
		userRepo:     mockUsers,
		orderRepo:    mockOrders,
		orderService: service.NewOrderService(mockOrders, mockUsers),
	}
	app.Use(asUser(callerID))
	return app, mockUsers, mockOrders, s
}

func TestCreateOrderRequiresCustomer(t *testing.T) {
	app, mockUsers, mockOrders, s := newOrderTestServer(3)
	app.Post("/orders", s.CreateOrder)

	mockUsers.On("GetByID", mock.Anything, uint(3)).
		Return(&models.User{ID: 3, UserType: models.UserTypeBusiness}, nil)

	resp := postJSON(t, app, "/orders", map[string]uint{"offer_detail_id": 1})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockOrders.AssertNotCalled(t, "CreateFromDetail", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderMissingDetail(t *testing.T) {
	app, mockUsers, mockOrders, s := newOrderTestServer(3)
	app.Post("/orders", s.CreateOrder)

	mockUsers.On("GetByID", mock.Anything, uint(3)).
		Return(&models.User{ID: 3, UserType: models.UserTypeCustomer}, nil)
	mockOrders.On("CreateFromDetail", mock.Anything, uint(3), uint(42)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	resp := postJSON(t, app, "/orders", map[string]uint{"offer_detail_id": 42})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrderParticipantsOnly(t *testing.T) {
	app, mockUsers, mockOrders, s := newOrderTestServer(9)
	app.Get("/orders/:id", s.GetOrder)

	mockUsers.On("GetByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9, UserType: models.UserTypeCustomer}, nil)
	mockOrders.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Order{ID: 1, CustomerUserID: 3, BusinessUserID: 4}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateOrderStatusBusinessPartnerOnly(t *testing.T) {
	order := &models.Order{ID: 1, CustomerUserID: 3, BusinessUserID: 4, Status: models.OrderStatusPending}

	tests := []struct {
		name           string
		callerID       uint
		caller         *models.User
		status         string
		expectedStatus int
	}{
		{
			name:           "Customer Cannot Mutate",
			callerID:       3,
			caller:         &models.User{ID: 3, UserType: models.UserTypeCustomer},
			status:         "in_progress",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Business Partner Updates",
			callerID:       4,
			caller:         &models.User{ID: 4, UserType: models.UserTypeBusiness},
			status:         "in_progress",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown Status",
			callerID:       4,
			caller:         &models.User{ID: 4, UserType: models.UserTypeBusiness},
			status:         "shipped",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockUsers, mockOrders, s := newOrderTestServer(tt.callerID)
			app.Patch("/orders/:id", s.UpdateOrder)

			fresh := *order
			mockUsers.On("GetByID", mock.Anything, tt.callerID).Return(tt.caller, nil)
			mockOrders.On("GetByID", mock.Anything, uint(1)).Return(&fresh, nil).Once()
			if tt.expectedStatus == http.StatusOK {
				mockOrders.On("Save", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()
			}

			resp := patchJSON(t, app, "/orders/1", map[string]string{"status": tt.status})
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body models.Order
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, models.OrderStatusInProgress, body.Status)
			}
		})
	}
}

func TestDeleteOrderStaffOnly(t *testing.T) {
	t.Run("Non-Staff Forbidden", func(t *testing.T) {
		app, mockUsers, mockOrders, s := newOrderTestServer(4)
		app.Delete("/orders/:id", s.DeleteOrder)

		mockUsers.On("GetByID", mock.Anything, uint(4)).
			Return(&models.User{ID: 4, UserType: models.UserTypeBusiness}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/orders/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockOrders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Staff Deletes", func(t *testing.T) {
		app, mockUsers, mockOrders, s := newOrderTestServer(8)
		app.Delete("/orders/:id", s.DeleteOrder)

		mockUsers.On("GetByID", mock.Anything, uint(8)).
			Return(&models.User{ID: 8, UserType: models.UserTypeCustomer, IsStaff: true}, nil)
		mockOrders.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Order{ID: 1, CustomerUserID: 3, BusinessUserID: 4}, nil).Once()
		mockOrders.On("Delete", mock.Anything, uint(1)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/orders/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestOrderCount(t *testing.T) {
	tests := []struct {
		name           string
		target         *models.User
		count          int64
		expectedStatus int
	}{
		{
			name:           "Business With Orders",
			target:         &models.User{ID: 4, UserType: models.UserTypeBusiness},
			count:          3,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Business With Zero Orders",
			target:         &models.User{ID: 4, UserType: models.UserTypeBusiness},
			count:          0,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Target Is Customer",
			target:         &models.User{ID: 4, UserType: models.UserTypeCustomer},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Target Missing",
			target:         nil,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockUsers, mockOrders, s := newOrderTestServer(1)
			app.Get("/order-count/:business_user_id", s.OrderCount)

			if tt.target == nil {
				mockUsers.On("GetByID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound).Once()
			} else {
				mockUsers.On("GetByID", mock.Anything, uint(4)).Return(tt.target, nil).Once()
			}
			if tt.expectedStatus == http.StatusOK {
				mockOrders.On("CountForBusiness", mock.Anything, uint(4), models.OrderStatusInProgress).
					Return(tt.count, nil).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/order-count/4", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]int64
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.count, body["order_count"])
			}
		})
	}
}
