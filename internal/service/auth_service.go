package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/pkg/jwt"
)

type AuthService interface {
	Login(req LoginRequest) (*LoginResponse, error)
	Logout(p *Principal) error
	Me(p *Principal) (*model.UserResponse, error)
	// Authenticate resolves a bearer token into the calling principal.
	Authenticate(tokenString string) (*Principal, error)
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceName string `json:"device_name" validate:"required,max=255"`
}

type LoginResponse struct {
	Token     string             `json:"token"`
	TokenType string             `json:"token_type"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      model.UserResponse `json:"user"`
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	issuer    *jwt.Issuer
	telemetry Telemetry
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, issuer *jwt.Issuer, telemetry Telemetry) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		issuer:    issuer,
		telemetry: telemetryOrNop(telemetry),
		now:       time.Now,
	}
}

func (s *authService) Login(req LoginRequest) (*LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		s.telemetry.LoginAttempt(false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.telemetry.LoginAttempt(false)
		return nil, ErrAccountDisabled
	}

	if !user.CheckPassword(req.Password) {
		s.telemetry.LoginAttempt(false)
		return nil, ErrInvalidCredentials
	}

	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := s.now()
	record := &model.AccessToken{
		ID:        tokenID,
		UserID:    user.ID,
		Name:      req.DeviceName,
		ExpiresAt: now.Add(s.issuer.TTL()),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}

	token, err := s.issuer.GenerateToken(tokenID, user.ID, string(user.Role), record.ExpiresAt)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	s.telemetry.LoginAttempt(true)
	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: record.ExpiresAt,
		User:      user.ToResponse(),
	}, nil
}

func (s *authService) Logout(p *Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if err := s.tokenRepo.Delete(p.TokenID); err != nil {
		return dbError(err, "token")
	}
	return nil
}

func (s *authService) Me(p *Principal) (*model.UserResponse, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.FindByID(p.UserID)
	if err != nil {
		return nil, dbError(err, "user")
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Authenticate(tokenString string) (*Principal, error) {
	claims, err := s.issuer.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	tokenID, err := claims.TokenID()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed token id", ErrUnauthenticated)
	}

	record, err := s.tokenRepo.FindByID(tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
		}
		return nil, err
	}
	now := s.now()
	if record.UserID != claims.UserID || now.After(record.ExpiresAt) {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if err := s.tokenRepo.Touch(tokenID, now); err != nil {
		log.Printf("auth: touch token %s: %v", tokenID, err)
	}

	return &Principal{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		TokenID: tokenID,
	}, nil
}
