package domain

import "gorm.io/gorm"

// RefreshToken holds the SHA-256 of an issued refresh token. The plaintext
// value only ever lives in the client cookie.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	TokenHash string `gorm:"uniqueIndex;not null" json:"-"`
	gorm.Model
}
