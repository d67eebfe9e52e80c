package dto

// UpdateUserProfile uses pointers for PATCH semantics: only supplied fields
// are touched.
type UpdateUserProfile struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	DOB          *string `json:"dob,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	Country      *string `json:"country,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PrimaryPhone *string `json:"primary_phone,omitempty"`
}

type UserProfileResponse struct {
	ID           uint   `json:"id"`
	EmailAddress string `json:"email_address"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	Country      string `json:"country"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PrimaryPhone string `json:"primary_phone,omitempty"`
	IsVerified   bool   `json:"is_verified"`
	CreatedAt    string `json:"created_at"`
}
