package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"

	"gorm.io/gorm"
)

// KasirService lets the store admin manage cashier accounts by username.
type KasirService interface {
	List(p *Principal) ([]model.UserResponse, error)
	Create(p *Principal, req CreateKasirRequest) (*model.UserResponse, error)
	SetActive(p *Principal, username string, req SetActiveRequest) (*model.UserResponse, error)
	ResetPin(p *Principal, username string, req ResetPinRequest) (*model.UserResponse, error)
	Delete(p *Principal, username string) error
}

type CreateKasirRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Pin      string `json:"pin" validate:"required,min=6,max=64,no_whitespace"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ResetPinRequest struct {
	Pin string `json:"pin" validate:"required,min=6,max=64"`
}

type kasirService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

func NewKasirService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) KasirService {
	return &kasirService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *kasirService) List(p *Principal) ([]model.UserResponse, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListKasirs()
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

// KasirEmail derives a cashier's login email from the admin's email domain.
func KasirEmail(username, adminEmail string) (string, error) {
	at := strings.Index(adminEmail, "@")
	if at < 0 {
		return "", fmt.Errorf("%w: admin email has no domain", ErrInvalidState)
	}
	return strings.ToLower(username) + "@" + adminEmail[at+1:], nil
}

func (s *kasirService) Create(p *Principal, req CreateKasirRequest) (*model.UserResponse, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email, err := KasirEmail(req.Username, p.Email)
	if err != nil {
		return nil, err
	}
	exists, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: kasir email already in use", ErrConflict)
	}

	username := req.Username
	kasir := &model.User{
		Username: &username,
		Name:     username,
		Email:    email,
		Role:     model.RoleKasir,
		Active:   true,
	}
	if err := kasir.SetPin(req.Pin); err != nil {
		return nil, errors.New("failed to hash pin")
	}

	if err := s.userRepo.Create(kasir); err != nil {
		return nil, dbError(err, "kasir")
	}

	resp := kasir.ToResponse()
	return &resp, nil
}

func (s *kasirService) findKasir(username string) (*model.User, error) {
	kasir, err := s.userRepo.FindKasirByUsername(username)
	if err != nil {
		return nil, dbError(err, "kasir")
	}
	return kasir, nil
}

func (s *kasirService) revokeTokens(kasir *model.User) {
	if err := s.tokenRepo.DeleteByUser(kasir.ID); err != nil {
		log.Printf("kasir: revoke tokens of %d: %v", kasir.ID, err)
	}
}

func (s *kasirService) SetActive(p *Principal, username string, req SetActiveRequest) (*model.UserResponse, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	kasir, err := s.findKasir(username)
	if err != nil {
		return nil, err
	}

	kasir.Active = *req.Active
	if err := s.userRepo.Update(kasir); err != nil {
		return nil, dbError(err, "kasir")
	}
	if !kasir.Active {
		s.revokeTokens(kasir)
	}

	resp := kasir.ToResponse()
	return &resp, nil
}

func (s *kasirService) ResetPin(p *Principal, username string, req ResetPinRequest) (*model.UserResponse, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	kasir, err := s.findKasir(username)
	if err != nil {
		return nil, err
	}

	if err := kasir.SetPin(req.Pin); err != nil {
		return nil, errors.New("failed to hash pin")
	}
	if err := s.userRepo.Update(kasir); err != nil {
		return nil, dbError(err, "kasir")
	}
	s.revokeTokens(kasir)

	resp := kasir.ToResponse()
	return &resp, nil
}

func (s *kasirService) Delete(p *Principal, username string) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	kasir, err := s.findKasir(username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(kasir.ID); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: kasir has recorded transactions", ErrConflict)
		}
		return err
	}
	return nil
}
