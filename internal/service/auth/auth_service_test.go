package auth

import (
	"context"
	"testing"
	"time"

	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthService_Register_Success(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := service.Register(ctx, "  Rider@Example.COM ", "correct-horse")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "rider@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))

	mockUsers.AssertExpectations(t)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()

	testCases := []struct {
		name          string
		email         string
		password      string
		expectedField string
	}{
		{name: "Empty email", email: "", password: "some-password", expectedField: "email"},
		{name: "Email without at sign", email: "not-an-email", password: "some-password", expectedField: "email"},
		{name: "Short password", email: "rider@example.com", password: "short", expectedField: "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := service.Register(ctx, tc.email, tc.password)
			assert.Nil(t, user)

			var ve *domain.ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.expectedField, ve.Field)
		})
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	mockUsers.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken).Once()

	user, err := service.Register(ctx, "rider@example.com", "correct-horse")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginAndParseToken(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &domain.User{ID: 7, Email: "rider@example.com", PasswordHash: string(hash), IsStaff: true}

	mockUsers.On("GetByEmail", ctx, "rider@example.com").Return(user, nil).Once()

	token, err := service.Login(ctx, "Rider@Example.com", "correct-horse")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "rider@example.com", claims.Email)
	assert.True(t, claims.IsStaff)

	mockUsers.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &domain.User{ID: 7, Email: "rider@example.com", PasswordHash: string(hash)}

	mockUsers.On("GetByEmail", ctx, "rider@example.com").Return(user, nil).Once()

	token, err := service.Login(ctx, "rider@example.com", "wrong-password")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// An unknown email yields the same error as a wrong password.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	mockUsers.On("GetByEmail", ctx, "ghost@example.com").
		Return(nil, &domain.NotFoundError{Entity: "user"}).Once()

	token, err := service.Login(ctx, "ghost@example.com", "whatever-password")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, "secret", time.Hour, bcrypt.MinCost)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		claims, err := service.ParseToken(raw)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	}
}

func TestAuthService_ParseToken_WrongSecret(t *testing.T) {
	mockUsers := &MockUserRepository{}
	issuer := NewAuthService(mockUsers, "secret-one", time.Hour, bcrypt.MinCost)
	verifier := NewAuthService(&MockUserRepository{}, "secret-two", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &domain.User{ID: 7, Email: "rider@example.com", PasswordHash: string(hash)}
	mockUsers.On("GetByEmail", ctx, "rider@example.com").Return(user, nil).Once()

	token, err := issuer.Login(ctx, "rider@example.com", "correct-horse")
	assert.NoError(t, err)

	claims, err := verifier.ParseToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", -time.Minute, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &domain.User{ID: 7, Email: "rider@example.com", PasswordHash: string(hash)}
	mockUsers.On("GetByEmail", ctx, "rider@example.com").Return(user, nil).Once()

	token, err := service.Login(ctx, "rider@example.com", "correct-horse")
	assert.NoError(t, err)

	claims, err := service.ParseToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
