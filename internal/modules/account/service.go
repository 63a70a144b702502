package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
)

const tokenTTL = 24 * time.Hour

// Service defines account and authentication business logic.
type Service interface {
	// Register creates an owner account with a bcrypt password hash.
	Register(ctx context.Context, req RegisterRequest) (*Owner, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req LoginRequest) (string, error)

	// GetProfile returns the owner's profile.
	GetProfile(ctx context.Context, ownerID uuid.UUID) (*Owner, error)

	// UpdateProfile patches business name, phone, or currency.
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, req UpdateProfileRequest) (*Owner, error)

	// VerifyToken parses a token and returns the owner it identifies.
	VerifyToken(token string) (uuid.UUID, error)
}

type service struct {
	repo      Repository
	jwtSecret []byte
}

// NewService creates a new account service.
func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: []byte(jwtSecret)}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Owner, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	o := &Owner{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		BusinessName: req.BusinessName,
		Currency:     "SYP",
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return o, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	o, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Same response for unknown email and bad password.
		return "", apperr.Validation("credentials", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperr.Validation("credentials", "invalid email or password")
	}

	claims := &jwt.StandardClaims{
		Subject:   o.ID.String(),
		ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		IssuedAt:  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *service) GetProfile(ctx context.Context, ownerID uuid.UUID) (*Owner, error) {
	return s.repo.GetByID(ctx, ownerID)
}

func (s *service) UpdateProfile(ctx context.Context, ownerID uuid.UUID, req UpdateProfileRequest) (*Owner, error) {
	if req.BusinessName != nil && strings.TrimSpace(*req.BusinessName) == "" {
		return nil, apperr.Validation("business_name", "required")
	}
	if err := s.repo.UpdateProfile(ctx, ownerID, req); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, ownerID)
}

func (s *service) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject")
	}
	return ownerID, nil
}
