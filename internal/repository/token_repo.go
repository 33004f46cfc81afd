package repository

import (
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(token *model.AccessToken) error
	FindByID(id uuid.UUID) (*model.AccessToken, error)
	Touch(id uuid.UUID, at time.Time) error
	Delete(id uuid.UUID) error
	DeleteByUser(userID uint) error
}

type tokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) TokenRepository {
	return &tokenRepo{db}
}

func (r *tokenRepo) Create(token *model.AccessToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepo) FindByID(id uuid.UUID) (*model.AccessToken, error) {
	var token model.AccessToken
	if err := r.db.First(&token, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepo) Touch(id uuid.UUID, at time.Time) error {
	return r.db.Model(&model.AccessToken{}).Where("id = ?", id).Update("last_used_at", at).Error
}

func (r *tokenRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.AccessToken{}, "id = ?", id).Error
}

func (r *tokenRepo) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.AccessToken{}).Error
}
