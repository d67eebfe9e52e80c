package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	EmailAddress        string     `gorm:"uniqueIndex;not null" json:"email_address"`
	Password            string     `json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	DOB                 time.Time  `json:"dob"`
	Gender              string     `gorm:"type:varchar(30)" json:"gender"`
	Country             string     `json:"country"`
	City                string     `json:"city"`
	State               string     `json:"state"`
	PrimaryPhone        string     `gorm:"type:varchar(10)" json:"primary_phone"`
	IsVerified          bool       `gorm:"not null;default:false" json:"is_verified"`
	VerifyToken         string     `gorm:"index" json:"-"`
	ResetToken          string     `gorm:"index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	gorm.Model
}

// Genders is the fixed set accepted on create/update.
var Genders = map[string]bool{
	"male":              true,
	"female":            true,
	"non_binary":        true,
	"other":             true,
	"prefer_not_to_say": true,
}
