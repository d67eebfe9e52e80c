package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/resthub/account_service/internal/domain"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	SaveUser(user *domain.User) error
	FindUserByEmail(email string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	FindUserByVerifyToken(token string) (*domain.User, error)
	FindUserByResetToken(token string) (*domain.User, error)
	DeleteUser(user *domain.User) error
	SavePasswordReset(user *domain.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, err
	}

	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email_address = ?", email).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find user by email error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find user by id error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByVerifyToken(token string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Where("verify_token = ?", token).First(user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find user by verify token error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByResetToken(token string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Where("reset_token = ?", token).First(user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find user by reset token error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser soft-deletes: gorm stamps DeletedAt and the row drops out of
// normal lookups while staying in the table.
func (r *userRepository) DeleteUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Delete(user).Error; err != nil {
		log.Printf("delete user error: %v", err)
		return err
	}
	return nil
}

// SavePasswordReset persists a password change and revokes every refresh
// token for the user in one transaction, so a failure cannot leave the new
// password live alongside old sessions.
func (r *userRepository) SavePasswordReset(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).
			Delete(&domain.RefreshToken{}).Error
	})
	if err != nil {
		log.Printf("save password reset error: %v", err)
	}
	return err
}
