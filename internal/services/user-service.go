package services

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/resthub/account_service/internal/apperr"
	"github.com/resthub/account_service/internal/domain"
	"github.com/resthub/account_service/internal/dto"
	"github.com/resthub/account_service/internal/helper"
	"github.com/resthub/account_service/internal/repository"
	"github.com/resthub/account_service/pkg/utils"
)

const minimumAge = 15

type UserService interface {
	CreateUser(input dto.RegisterRequest) (*domain.User, error)
	GetUserByID(userID uint) (*dto.UserProfileResponse, error)
	GetUserByEmail(email string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID uint, input dto.UpdateUserProfile) (*dto.UserProfileResponse, error)
	VerifyUser(token string) error
	DeleteUser(userID uint) error
	UpdatePassword(userID uint, newPassword, confirm string) error

	// refresh token persistence, thin delegation
	StoreRefreshToken(userID uint, tokenHash string) error
	FindRefreshToken(tokenHash string) (*domain.RefreshToken, error)
	DeleteRefreshToken(tokenHash string) error
}

type userService struct {
	repo      repository.UserRepository
	tokenRepo repository.TokenRepository
	validate  *validator.Validate
}

func NewUserService(repo repository.UserRepository, tokenRepo repository.TokenRepository) UserService {
	return &userService{
		repo:      repo,
		tokenRepo: tokenRepo,
		validate:  validator.New(),
	}
}

func (u *userService) CreateUser(input dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.EmailAddress))

	dob, country, err := u.validateProfileCompleteness(input, email)
	if err != nil {
		return nil, err
	}

	// duplicate email; the unique index is the backstop for races
	existing, err := u.repo.FindUserByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrEmailTaken
	}

	phone := strings.TrimSpace(input.PrimaryPhone)
	if phone != "" {
		phone, err = utils.CleanPhoneNumber(phone)
		if err != nil {
			return nil, apperr.ErrPhoneInvalid
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &domain.User{
		EmailAddress: email,
		Password:     string(hashed),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		DOB:          dob,
		Gender:       strings.ToLower(strings.TrimSpace(input.Gender)),
		Country:      country,
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		PrimaryPhone: phone,
		IsVerified:   false,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, err
	}
	return usr, nil
}

func (u *userService) GetUserByID(userID uint) (*dto.UserProfileResponse, error) {
	if userID == 0 {
		return nil, apperr.ErrUserIDRequired
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (u *userService) GetUserByEmail(email string) (*dto.UserProfileResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.ErrEmailRequired
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (u *userService) UpdateProfile(userID uint, input dto.UpdateUserProfile) (*dto.UserProfileResponse, error) {
	if userID == 0 {
		return nil, apperr.ErrUserIDRequired
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		fn := strings.TrimSpace(*input.FirstName)
		if len(fn) < 2 {
			return nil, apperr.ErrFirstNameTooShort
		}
		user.FirstName = fn
	}

	if input.LastName != nil {
		ln := strings.TrimSpace(*input.LastName)
		if len(ln) < 2 {
			return nil, apperr.ErrLastNameTooShort
		}
		user.LastName = ln
	}

	if input.DOB != nil {
		dob, err := time.Parse(time.DateOnly, strings.TrimSpace(*input.DOB))
		if err != nil {
			return nil, apperr.ErrDOBInvalid
		}
		if utils.CurrentAge(dob) < minimumAge {
			return nil, apperr.ErrAgeBelowMinimum
		}
		user.DOB = dob
	}

	if input.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*input.Gender))
		if !domain.Genders[g] {
			return nil, apperr.ErrGenderNotListed
		}
		user.Gender = g
	}

	if input.Country != nil {
		country, err := utils.NormalizeCountry(*input.Country)
		if err != nil {
			return nil, apperr.ErrCountryInvalid
		}
		user.Country = country
	}

	if input.City != nil {
		user.City = strings.TrimSpace(*input.City)
	}

	if input.State != nil {
		user.State = strings.TrimSpace(*input.State)
	}

	if input.PrimaryPhone != nil {
		phone, err := utils.CleanPhoneNumber(*input.PrimaryPhone)
		if err != nil {
			return nil, apperr.ErrPhoneInvalid
		}
		user.PrimaryPhone = phone
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// VerifyUser redeems a verification token. The token stays on the record
// once redeemed: it is inert after is_verified is set, and a replay then
// surfaces AlreadyVerified instead of a misleading invalid-token error.
func (u *userService) VerifyUser(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.ErrVerifyTokenRequired
	}

	user, err := u.repo.FindUserByVerifyToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrInvalidVerifyToken
		}
		return err
	}

	if user.IsVerified {
		return apperr.ErrAlreadyVerified
	}

	user.IsVerified = true
	return u.repo.SaveUser(user)
}

func (u *userService) DeleteUser(userID uint) error {
	if userID == 0 {
		return apperr.ErrUserIDRequired
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return err
	}

	return u.repo.DeleteUser(user)
}

// UpdatePassword applies the complexity/match rules, stores the new hash,
// clears any pending reset token and revokes every refresh token for the
// user, all in one transaction.
func (u *userService) UpdatePassword(userID uint, newPassword, confirm string) error {
	if userID == 0 {
		return apperr.ErrUserIDRequired
	}
	if newPassword != confirm {
		return apperr.ErrPasswordsMismatch
	}
	if len(newPassword) < 8 {
		return apperr.ErrPasswordTooShort
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.ResetToken = ""
	user.ResetTokenExpiresAt = nil
	return u.repo.SavePasswordReset(user)
}

func (u *userService) StoreRefreshToken(userID uint, tokenHash string) error {
	if userID == 0 {
		return apperr.ErrUserIDRequired
	}
	if tokenHash == "" {
		return apperr.ErrRefreshTokenRequired
	}
	return u.tokenRepo.StoreRefreshToken(userID, tokenHash)
}

func (u *userService) FindRefreshToken(tokenHash string) (*domain.RefreshToken, error) {
	return u.tokenRepo.FindRefreshToken(tokenHash)
}

func (u *userService) DeleteRefreshToken(tokenHash string) error {
	return u.tokenRepo.DeleteRefreshToken(tokenHash)
}

func (u *userService) validateProfileCompleteness(input dto.RegisterRequest, email string) (time.Time, string, error) {
	if email == "" {
		return time.Time{}, "", apperr.ErrEmailRequired
	}
	if err := u.validate.Var(email, "required,email"); err != nil {
		return time.Time{}, "", apperr.ErrEmailInvalid
	}
	if strings.TrimSpace(input.Password) == "" {
		return time.Time{}, "", apperr.ErrPasswordRequired
	}
	if len(input.Password) < 8 {
		return time.Time{}, "", apperr.ErrPasswordTooShort
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return time.Time{}, "", apperr.ErrFirstNameRequired
	}
	if len(strings.TrimSpace(input.FirstName)) < 2 {
		return time.Time{}, "", apperr.ErrFirstNameTooShort
	}
	if strings.TrimSpace(input.LastName) == "" {
		return time.Time{}, "", apperr.ErrLastNameRequired
	}
	if len(strings.TrimSpace(input.LastName)) < 2 {
		return time.Time{}, "", apperr.ErrLastNameTooShort
	}

	gender := strings.ToLower(strings.TrimSpace(input.Gender))
	if gender == "" {
		return time.Time{}, "", apperr.ErrGenderRequired
	}
	if !domain.Genders[gender] {
		return time.Time{}, "", apperr.ErrGenderNotListed
	}

	if strings.TrimSpace(input.DOB) == "" {
		return time.Time{}, "", apperr.ErrDOBRequired
	}
	dob, err := time.Parse(time.DateOnly, strings.TrimSpace(input.DOB))
	if err != nil {
		return time.Time{}, "", apperr.ErrDOBInvalid
	}
	if utils.CurrentAge(dob) < minimumAge {
		return time.Time{}, "", apperr.ErrAgeBelowMinimum
	}

	if strings.TrimSpace(input.Country) == "" {
		return time.Time{}, "", apperr.ErrCountryRequired
	}
	country, err := utils.NormalizeCountry(input.Country)
	if err != nil {
		return time.Time{}, "", apperr.ErrCountryInvalid
	}

	return dob, country, nil
}

// toProfileResponse strips credentials and deletion state from what callers
// see.
func toProfileResponse(user *domain.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		ID:           user.ID,
		EmailAddress: user.EmailAddress,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		DOB:          user.DOB.Format(time.DateOnly),
		Gender:       user.Gender,
		Country:      user.Country,
		City:         user.City,
		State:        user.State,
		PrimaryPhone: user.PrimaryPhone,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}
