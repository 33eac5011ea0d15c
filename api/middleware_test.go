package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) ParseToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockAuthUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mockAuth := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/orders", nil)

	Authenticate(mockAuth)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
	mockAuth.AssertNotCalled(t, "ParseToken")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mockAuth := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/orders", nil)
	c.Request.Header.Set("Authorization", "Bearer garbage")

	mockAuth.On("ParseToken", "garbage").Return(nil, domain.ErrUnauthenticated).Once()

	Authenticate(mockAuth)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())

	mockAuth.AssertExpectations(t)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	mockAuth := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/orders", nil)
	c.Request.Header.Set("Authorization", "Bearer good-token")

	claims := &auth.Claims{UserID: 7, Email: "rider@example.com", IsStaff: false}
	mockAuth.On("ParseToken", "good-token").Return(claims, nil).Once()

	Authenticate(mockAuth)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, claims, currentClaims(c))

	mockAuth.AssertExpectations(t)
}

func TestRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name         string
		claims       *auth.Claims
		expectedCode int
	}{
		{name: "No claims", claims: nil, expectedCode: http.StatusUnauthorized},
		{name: "Regular user", claims: &auth.Claims{UserID: 7}, expectedCode: http.StatusForbidden},
		{name: "Staff user", claims: &auth.Claims{UserID: 7, IsStaff: true}, expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/airplanes/5/upload-image", nil)
			if tc.claims != nil {
				c.Set(claimsKey, tc.claims)
			}

			RequireStaff()(c)

			if tc.expectedCode == http.StatusOK {
				assert.False(t, c.IsAborted())
			} else {
				assert.True(t, c.IsAborted())
				assert.Equal(t, tc.expectedCode, w.Code)
			}
		})
	}
}
