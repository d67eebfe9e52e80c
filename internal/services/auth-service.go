package services

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resthub/account_service/internal/apperr"
	"github.com/resthub/account_service/internal/dto"
	"github.com/resthub/account_service/internal/helper"
	"github.com/resthub/account_service/internal/interfaces"
	"github.com/resthub/account_service/internal/repository"
)

type AuthService interface {
	Register(input dto.RegisterRequest, origin string) (*dto.RegisterResponse, error)
	Login(email, password string) (*dto.LoginResult, error)
	Logout(refreshToken string) error
	RefreshAccessToken(refreshToken string) (string, error)
	ForgotPasswordRequest(email, origin string) (*dto.ForgotPasswordResponse, error)
	ResetPassword(token, password, confirm string) error
	ChangePassword(userID uint, currentPassword, newPassword, confirm string) error
}

type authService struct {
	repo     repository.UserRepository
	users    UserService
	auth     helper.Auth
	producer interfaces.ProducerHandler
	resetTTL time.Duration
}

func NewAuthService(
	repo repository.UserRepository,
	users UserService,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
	resetTTL time.Duration,
) AuthService {
	return &authService{
		repo:     repo,
		users:    users,
		auth:     auth,
		producer: producer,
		resetTTL: resetTTL,
	}
}

// Register creates an unverified user with a fresh verification token and
// hands the mail service the link via a queue event.
func (s *authService) Register(input dto.RegisterRequest, origin string) (*dto.RegisterResponse, error) {
	usr, err := s.users.CreateUser(input)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	usr.VerifyToken = token
	if err := s.repo.SaveUser(usr); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/verify?token=%s",
		strings.TrimRight(origin, "/"),
		url.QueryEscape(token),
	)

	s.publish("user.verify_email", dto.VerifyEmailEvent{
		UserID:    usr.ID,
		Email:     usr.EmailAddress,
		FirstName: usr.FirstName,
		Link:      link,
	})

	return &dto.RegisterResponse{
		FirstName:  usr.FirstName,
		VerifyLink: link,
		EmailTo:    usr.EmailAddress,
	}, nil
}

// Login never distinguishes an unknown email from a wrong password.
func (s *authService) Login(email, password string) (*dto.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.auth.VerifyPassword(password, user.Password); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	accessToken, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := helper.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.users.StoreRefreshToken(user.ID, helper.HashToken(refreshToken)); err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout is idempotent: an absent or already-invalidated token is not an
// error.
func (s *authService) Logout(refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.users.DeleteRefreshToken(helper.HashToken(refreshToken))
}

// RefreshAccessToken returns "" (no error) for an invalid or unknown token,
// signaling the handler to force logout. The refresh token itself is not
// rotated.
func (s *authService) RefreshAccessToken(refreshToken string) (string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", nil
	}

	hash := helper.HashToken(refreshToken)
	stored, err := s.users.FindRefreshToken(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if subtle.ConstantTimeCompare([]byte(stored.TokenHash), []byte(hash)) != 1 {
		return "", nil
	}

	return s.auth.GenerateToken(stored.UserID)
}

// ForgotPasswordRequest returns (nil, nil) for unknown emails so the
// endpoint cannot be used to enumerate accounts.
func (s *authService) ForgotPasswordRequest(email, origin string) (*dto.ForgotPasswordResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.ErrEmailRequired
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token := uuid.NewString()
	expiry := time.Now().Add(s.resetTTL)
	user.ResetToken = token
	user.ResetTokenExpiresAt = &expiry
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(origin, "/"), token)

	s.publish("user.reset_password", dto.ResetPasswordEvent{
		UserID:    user.ID,
		Email:     user.EmailAddress,
		FirstName: user.FirstName,
		Link:      link,
		ExpiresAt: expiry.Format(time.RFC3339),
	})

	return &dto.ForgotPasswordResponse{
		FirstName: user.FirstName,
		ResetLink: link,
		EmailTo:   user.EmailAddress,
	}, nil
}

// ResetPassword redeems a reset token. A successful reset revokes every
// refresh token for the user, forcing re-login everywhere.
func (s *authService) ResetPassword(token, password, confirm string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.ErrInvalidResetToken
	}

	user, err := s.repo.FindUserByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrInvalidResetToken
		}
		return err
	}

	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return apperr.ErrInvalidResetToken
	}

	return s.users.UpdatePassword(user.ID, password, confirm)
}

// ChangePassword verifies the current password first. Setting the password
// to its current value is a documented no-op.
func (s *authService) ChangePassword(userID uint, currentPassword, newPassword, confirm string) error {
	if userID == 0 {
		return apperr.ErrUserIDRequired
	}

	user, err := s.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return err
	}

	if err := s.auth.VerifyPassword(currentPassword, user.Password); err != nil {
		return apperr.ErrInvalidCredentials
	}

	if newPassword == currentPassword {
		return nil
	}

	return s.users.UpdatePassword(userID, newPassword, confirm)
}

func (s *authService) publish(key string, event interface{}) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = s.producer.PublishMessage([]byte(key), payload)
}
