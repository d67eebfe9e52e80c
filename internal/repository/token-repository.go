package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/resthub/account_service/internal/domain"
)

type TokenRepository interface {
	StoreRefreshToken(userID uint, tokenHash string) error
	FindRefreshToken(tokenHash string) (*domain.RefreshToken, error)
	DeleteRefreshToken(tokenHash string) error
	ClearRefreshTokens(userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) StoreRefreshToken(userID uint, tokenHash string) error {
	if userID == 0 || tokenHash == "" {
		return errors.New("user id and token hash are required")
	}

	token := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
	}
	if err := r.db.Create(token).Error; err != nil {
		log.Printf("store refresh token error: %v", err)
		return err
	}
	return nil
}

func (r *tokenRepository) FindRefreshToken(tokenHash string) (*domain.RefreshToken, error) {
	token := &domain.RefreshToken{}

	if err := r.db.Where("token_hash = ?", tokenHash).First(token).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find refresh token error: %v", err)
		}
		return nil, err
	}

	return token, nil
}

// DeleteRefreshToken is idempotent: deleting an absent token is not an error.
func (r *tokenRepository) DeleteRefreshToken(tokenHash string) error {
	if tokenHash == "" {
		return nil
	}

	if err := r.db.Where("token_hash = ?", tokenHash).
		Delete(&domain.RefreshToken{}).Error; err != nil {
		log.Printf("delete refresh token error: %v", err)
		return err
	}
	return nil
}

func (r *tokenRepository) ClearRefreshTokens(userID uint) error {
	if userID == 0 {
		return errors.New("user id is required")
	}

	if err := r.db.Where("user_id = ?", userID).
		Delete(&domain.RefreshToken{}).Error; err != nil {
		log.Printf("clear refresh tokens error: %v", err)
		return err
	}
	return nil
}
