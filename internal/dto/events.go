package dto

// Events published for the mail service.

type VerifyEmailEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Link      string `json:"link"`
}

type ResetPasswordEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Link      string `json:"link"`
	ExpiresAt string `json:"expires_at"`
}
