package dto

type RegisterRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"first_name" validate:"required,min=2"`
	LastName     string `json:"last_name" validate:"required,min=2"`
	DOB          string `json:"dob" validate:"required"`
	Gender       string `json:"gender" validate:"required"`
	Country      string `json:"country" validate:"required"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PrimaryPhone string `json:"primary_phone,omitempty"`
}

type RegisterResponse struct {
	FirstName  string `json:"first_name"`
	VerifyLink string `json:"verify_link"`
	EmailTo    string `json:"email_to"`
}

type UserLogin struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

// LoginResult is internal to the service layer; the handler turns it into
// cookies and never serializes the tokens into the body.
type LoginResult struct {
	UserID       uint
	AccessToken  string
	RefreshToken string
}

type ForgotPasswordRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
}

type ForgotPasswordResponse struct {
	FirstName string `json:"first_name"`
	ResetLink string `json:"reset_link"`
	EmailTo   string `json:"email_to"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// AuthResponse is what a verified access token decodes to.
type AuthResponse struct {
	UserID uint    `json:"user_id"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
