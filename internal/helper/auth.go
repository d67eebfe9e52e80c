package helper

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/resthub/account_service/internal/apperr"
	"github.com/resthub/account_service/internal/dto"
)

type Auth struct {
	Secret    string
	AccessTTL time.Duration
}

func SetupAuth(secret string, accessTTL time.Duration) Auth {
	return Auth{
		Secret:    secret,
		AccessTTL: accessTTL,
	}
}

// GenerateToken signs a short-lived access token. The payload carries the
// user id only.
func (a Auth) GenerateToken(userID uint) (string, error) {
	if userID == 0 {
		return "", apperr.ErrUserIDRequired
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(a.AccessTTL).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", apperr.ErrUnauthorized
	}
	return tokenStr, nil
}

// VerifyToken accepts "Bearer <token>" or a bare token.
func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, apperr.ErrUnauthorized
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthResponse{}, apperr.ErrUnauthorized
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthorized
		}
		return []byte(a.Secret), nil
	})
	if err != nil || !token.Valid {
		return dto.AuthResponse{}, apperr.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.AuthResponse{}, apperr.ErrUnauthorized
	}

	expAny, ok := claims["exp"].(float64)
	if !ok || float64(time.Now().Unix()) > expAny {
		return dto.AuthResponse{}, apperr.ErrUnauthorized
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return dto.AuthResponse{}, apperr.ErrUnauthorized
	}

	iat, _ := claims["iat"].(float64)
	return dto.AuthResponse{
		UserID: uint(userID),
		Expiry: expAny,
		Iat:    iat,
	}, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.AuthResponse, error) {
	u := ctx.Locals("user")
	claims, ok := u.(dto.AuthResponse)
	if !ok {
		return dto.AuthResponse{}, apperr.ErrUnauthorized
	}
	return claims, nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return apperr.ErrInvalidCredentials
	}
	return nil
}

// NewRefreshToken mints an opaque 32-byte random token, hex-encoded.
func NewRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken is the stored form of refresh tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
