package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tourflow/internal/domain"
)

// AuthService handles registration, password login and HS256 access tokens.
type AuthService struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users domain.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: ttl}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName *string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if !strings.Contains(in.Email, "@") {
		return domain.User{}, domain.Validationf("invalid email address")
	}
	if l := len(in.Username); l < 3 || l > 50 {
		return domain.User{}, domain.Validationf("username must be 3-50 characters")
	}
	if l := len(in.Password); l < 6 || l > 72 {
		return domain.User{}, domain.Validationf("password must be 6-72 characters")
	}
	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.users.GetUserByUsername(ctx, in.Username); err == nil {
		return domain.User{}, fmt.Errorf("%w: username already taken", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	id, err := s.users.CreateUser(ctx, domain.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		IsActive:     true,
	})
	if err != nil {
		return domain.User{}, err
	}
	return s.users.GetUser(ctx, id)
}

// Login verifies the credentials and mints a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, domain.ErrUnauthorized
		}
		return "", domain.User{}, err
	}
	if !u.IsActive {
		return "", domain.User{}, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrUnauthorized
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(u.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.User{}, err
	}
	return signed, u, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.User{}, domain.ErrUnauthorized
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}
	if !u.IsActive {
		return domain.User{}, domain.ErrUnauthorized
	}
	return u, nil
}
