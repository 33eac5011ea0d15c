package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (*Claims, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// Claims is the identity extracted from a verified access token.
type Claims struct {
	UserID  int64
	Email   string
	IsStaff bool
}

type AuthService struct {
	users      repository.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, jwtSecret string, accessTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		bcryptCost: bcryptCost,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &domain.ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if len(password) < 8 {
		return nil, &domain.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"staff": user.IsStaff,
		"exp":   now.Add(s.accessTTL).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	claims := &Claims{UserID: int64(sub)}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if staff, ok := mapClaims["staff"].(bool); ok {
		claims.IsStaff = staff
	}
	return claims, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

var _ AuthUseCase = (*AuthService)(nil)
