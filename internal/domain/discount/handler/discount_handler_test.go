package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/neoenginex/gemsutopia/internal/domain/discount/model"
	"github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	"github.com/neoenginex/gemsutopia/pkg/response"
)

// MockDiscountService is a mock of service.DiscountService
type MockDiscountService struct {
	mock.Mock
}

func (m *MockDiscountService) Validate(code string, subtotal decimal.Decimal) (*service.Validation, error) {
	args := m.Called(code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Validation), args.Error(1)
}

func (m *MockDiscountService) RecordUsage(codeID, orderID string) error {
	args := m.Called(codeID, orderID)
	return args.Error(0)
}

func (m *MockDiscountService) RecordUsageByCode(code, orderID string) error {
	args := m.Called(code, orderID)
	return args.Error(0)
}

func (m *MockDiscountService) CreateCode(code *model.DiscountCode) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockDiscountService) GetCodes(offset, limit int) ([]model.DiscountCode, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.DiscountCode), args.Get(1).(int64), args.Error(2)
}

func (m *MockDiscountService) UpdateCode(code *model.DiscountCode) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockDiscountService) DeleteCode(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupValidateRoute(svc service.DiscountService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/discount-codes/validate", NewDiscountHandler(svc).Validate)
	return r
}

func postValidate(t *testing.T, r *gin.Engine, payload interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/discount-codes/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestValidateEndpoint(t *testing.T) {
	t.Run("valid code returns the discount", func(t *testing.T) {
		mockSvc := new(MockDiscountService)
		mockSvc.On("Validate", "SAVE10", mock.Anything).Return(&service.Validation{
			Code:   "SAVE10",
			Type:   model.TypePercentage,
			Value:  decimal.NewFromInt(10),
			Amount: decimal.NewFromInt(10),
		}, nil)

		w, resp := postValidate(t, setupValidateRoute(mockSvc), gin.H{"code": "SAVE10", "subtotal": 100})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, response.CodeSuccess, resp.Code)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "SAVE10", data["code"])
	})

	t.Run("unknown code is a business failure, not an HTTP error", func(t *testing.T) {
		mockSvc := new(MockDiscountService)
		mockSvc.On("Validate", "NOPE", mock.Anything).Return(nil, service.ErrCodeNotFound)

		w, resp := postValidate(t, setupValidateRoute(mockSvc), gin.H{"code": "NOPE", "subtotal": 100})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, response.ErrDiscountInvalid, resp.Code)
		assert.Equal(t, "Invalid discount code", resp.Message)
	})

	t.Run("minimum order failure carries the storefront message", func(t *testing.T) {
		mockSvc := new(MockDiscountService)
		mockSvc.On("Validate", "SAVE10", mock.Anything).
			Return(nil, &service.MinimumOrderError{Minimum: decimal.NewFromInt(50)})

		w, resp := postValidate(t, setupValidateRoute(mockSvc), gin.H{"code": "SAVE10", "subtotal": 20})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, response.ErrDiscountMinimum, resp.Code)
		assert.Equal(t, "Minimum order of $50.00 required to use this code", resp.Message)
	})

	t.Run("expired code", func(t *testing.T) {
		mockSvc := new(MockDiscountService)
		mockSvc.On("Validate", "OLD", mock.Anything).Return(nil, service.ErrCodeExpired)

		_, resp := postValidate(t, setupValidateRoute(mockSvc), gin.H{"code": "OLD", "subtotal": 100})

		assert.Equal(t, response.ErrDiscountExpired, resp.Code)
	})

	t.Run("missing code is a 400", func(t *testing.T) {
		mockSvc := new(MockDiscountService)

		w, resp := postValidate(t, setupValidateRoute(mockSvc), gin.H{"subtotal": 100})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, response.ErrInvalidParam, resp.Code)
		mockSvc.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
	})
}
