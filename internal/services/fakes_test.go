package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/resthub/account_service/internal/domain"
)

// In-memory store shared by the repository fakes so the reset-password
// transaction can touch both tables like the real thing.
type fakeStore struct {
	users  map[uint]*domain.User
	tokens map[string]*domain.RefreshToken
	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[uint]*domain.User{},
		tokens: map[string]*domain.RefreshToken{},
	}
}

type fakeUserRepo struct {
	store *fakeStore
}

type fakeTokenRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	r.store.nextID++
	user.ID = r.store.nextID
	user.CreatedAt = time.Now()
	r.store.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.EmailAddress == email && !u.DeletedAt.Valid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	u, ok := r.store.users[userID]
	if !ok || u.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindUserByVerifyToken(token string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.VerifyToken == token && u.VerifyToken != "" && !u.DeletedAt.Valid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindUserByResetToken(token string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.ResetToken == token && u.ResetToken != "" && !u.DeletedAt.Valid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) DeleteUser(user *domain.User) error {
	user.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SavePasswordReset(user *domain.User) error {
	r.store.users[user.ID] = user
	for hash, token := range r.store.tokens {
		if token.UserID == user.ID {
			delete(r.store.tokens, hash)
		}
	}
	return nil
}

func (r *fakeTokenRepo) StoreRefreshToken(userID uint, tokenHash string) error {
	r.store.tokens[tokenHash] = &domain.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
	}
	return nil
}

func (r *fakeTokenRepo) FindRefreshToken(tokenHash string) (*domain.RefreshToken, error) {
	token, ok := r.store.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (r *fakeTokenRepo) DeleteRefreshToken(tokenHash string) error {
	delete(r.store.tokens, tokenHash)
	return nil
}

func (r *fakeTokenRepo) ClearRefreshTokens(userID uint) error {
	for hash, token := range r.store.tokens {
		if token.UserID == userID {
			delete(r.store.tokens, hash)
		}
	}
	return nil
}
