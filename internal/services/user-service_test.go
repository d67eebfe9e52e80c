package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/resthub/account_service/internal/apperr"
	"github.com/resthub/account_service/internal/dto"
	"github.com/resthub/account_service/pkg/utils"
)

func newUserFixture() (*fakeStore, UserService) {
	store := newFakeStore()
	svc := NewUserService(&fakeUserRepo{store: store}, &fakeTokenRepo{store: store})
	return store, svc
}

func validRegisterInput() dto.RegisterRequest {
	return dto.RegisterRequest{
		EmailAddress: "Jane.Doe@Example.COM",
		Password:     "supersecret",
		FirstName:    "Jane",
		LastName:     "Doe",
		DOB:          "1990-04-12",
		Gender:       "female",
		Country:      "US",
		City:         "Austin",
		State:        "TX",
		PrimaryPhone: "(555) 123-4567",
	}
}

func TestCreateUser(t *testing.T) {
	store, svc := newUserFixture()

	usr, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)
	require.NotZero(t, usr.ID)

	assert.Equal(t, "jane.doe@example.com", usr.EmailAddress)
	assert.Equal(t, "5551234567", usr.PrimaryPhone)
	assert.False(t, usr.IsVerified)

	wantCountry, err := utils.NormalizeCountry("US")
	require.NoError(t, err)
	assert.Equal(t, wantCountry, usr.Country)

	// password stored as bcrypt hash
	stored := store.users[usr.ID]
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")))
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		wantErr *apperr.Error
	}{
		{"missing email", func(r *dto.RegisterRequest) { r.EmailAddress = "" }, apperr.ErrEmailRequired},
		{"bad email", func(r *dto.RegisterRequest) { r.EmailAddress = "not-an-email" }, apperr.ErrEmailInvalid},
		{"missing password", func(r *dto.RegisterRequest) { r.Password = "" }, apperr.ErrPasswordRequired},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "short" }, apperr.ErrPasswordTooShort},
		{"missing first name", func(r *dto.RegisterRequest) { r.FirstName = "  " }, apperr.ErrFirstNameRequired},
		{"short first name", func(r *dto.RegisterRequest) { r.FirstName = "J" }, apperr.ErrFirstNameTooShort},
		{"missing last name", func(r *dto.RegisterRequest) { r.LastName = "" }, apperr.ErrLastNameRequired},
		{"short last name", func(r *dto.RegisterRequest) { r.LastName = " D " }, apperr.ErrLastNameTooShort},
		{"missing gender", func(r *dto.RegisterRequest) { r.Gender = "" }, apperr.ErrGenderRequired},
		{"unlisted gender", func(r *dto.RegisterRequest) { r.Gender = "attack-helicopter" }, apperr.ErrGenderNotListed},
		{"missing dob", func(r *dto.RegisterRequest) { r.DOB = "" }, apperr.ErrDOBRequired},
		{"bad dob", func(r *dto.RegisterRequest) { r.DOB = "12/04/1990" }, apperr.ErrDOBInvalid},
		{"below minimum age", func(r *dto.RegisterRequest) {
			r.DOB = time.Now().AddDate(-14, 0, 0).Format(time.DateOnly)
		}, apperr.ErrAgeBelowMinimum},
		{"missing country", func(r *dto.RegisterRequest) { r.Country = "" }, apperr.ErrCountryRequired},
		{"unknown country", func(r *dto.RegisterRequest) { r.Country = "Atlantis" }, apperr.ErrCountryInvalid},
		{"bad phone", func(r *dto.RegisterRequest) { r.PrimaryPhone = "123" }, apperr.ErrPhoneInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, svc := newUserFixture()
			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.CreateUser(input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateUserAgeCheckedEvenWhenRestIsValid(t *testing.T) {
	_, svc := newUserFixture()

	input := validRegisterInput()
	input.DOB = time.Now().AddDate(-15, 0, 1).Format(time.DateOnly) // 15 tomorrow

	_, err := svc.CreateUser(input)
	assert.ErrorIs(t, err, apperr.ErrAgeBelowMinimum)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	_, svc := newUserFixture()

	_, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.EmailAddress = "JANE.DOE@example.com" // different casing, same account
	_, err = svc.CreateUser(input)
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestVerifyUser(t *testing.T) {
	store, svc := newUserFixture()

	usr, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)

	usr.VerifyToken = "verify-123"
	store.users[usr.ID] = usr

	require.NoError(t, svc.VerifyUser("verify-123"))
	assert.True(t, store.users[usr.ID].IsVerified)

	// second redemption is a non-fatal already-verified status
	assert.ErrorIs(t, svc.VerifyUser("verify-123"), apperr.ErrAlreadyVerified)

	assert.ErrorIs(t, svc.VerifyUser("no-such-token"), apperr.ErrInvalidVerifyToken)
	assert.ErrorIs(t, svc.VerifyUser(""), apperr.ErrVerifyTokenRequired)
}

func TestDeleteUserSoftDelete(t *testing.T) {
	store, svc := newUserFixture()

	usr, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(usr.ID))

	// gone through the public API
	_, err = svc.GetUserByID(usr.ID)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	_, err = svc.GetUserByEmail(usr.EmailAddress)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	// row still present underneath
	raw, ok := store.users[usr.ID]
	require.True(t, ok)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestGetUserSanitized(t *testing.T) {
	_, svc := newUserFixture()

	usr, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)

	profile, err := svc.GetUserByID(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, profile.ID)
	assert.Equal(t, "jane.doe@example.com", profile.EmailAddress)
	assert.Equal(t, "1990-04-12", profile.DOB)
}

func TestUpdateProfile(t *testing.T) {
	_, svc := newUserFixture()

	usr, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)

	phone := "555 987 6543"
	city := "Dallas"
	profile, err := svc.UpdateProfile(usr.ID, dto.UpdateUserProfile{
		PrimaryPhone: &phone,
		City:         &city,
	})
	require.NoError(t, err)
	assert.Equal(t, "5559876543", profile.PrimaryPhone)
	assert.Equal(t, "Dallas", profile.City)
	// untouched fields survive
	assert.Equal(t, "Jane", profile.FirstName)

	badPhone := "12345"
	_, err = svc.UpdateProfile(usr.ID, dto.UpdateUserProfile{PrimaryPhone: &badPhone})
	assert.ErrorIs(t, err, apperr.ErrPhoneInvalid)

	youngDOB := time.Now().AddDate(-10, 0, 0).Format(time.DateOnly)
	_, err = svc.UpdateProfile(usr.ID, dto.UpdateUserProfile{DOB: &youngDOB})
	assert.ErrorIs(t, err, apperr.ErrAgeBelowMinimum)

	badGender := "unknown"
	_, err = svc.UpdateProfile(usr.ID, dto.UpdateUserProfile{Gender: &badGender})
	assert.ErrorIs(t, err, apperr.ErrGenderNotListed)

	badCountry := "Mordor"
	_, err = svc.UpdateProfile(usr.ID, dto.UpdateUserProfile{Country: &badCountry})
	assert.ErrorIs(t, err, apperr.ErrCountryInvalid)
}

func TestUpdatePassword(t *testing.T) {
	store, svc := newUserFixture()

	usr, err := svc.CreateUser(validRegisterInput())
	require.NoError(t, err)
	originalHash := store.users[usr.ID].Password

	// active session
	require.NoError(t, svc.StoreRefreshToken(usr.ID, "token-hash"))

	err = svc.UpdatePassword(usr.ID, "newpassword", "different")
	assert.ErrorIs(t, err, apperr.ErrPasswordsMismatch)
	assert.Equal(t, originalHash, store.users[usr.ID].Password)

	err = svc.UpdatePassword(usr.ID, "short", "short")
	assert.ErrorIs(t, err, apperr.ErrPasswordTooShort)
	assert.Equal(t, originalHash, store.users[usr.ID].Password)

	require.NoError(t, svc.UpdatePassword(usr.ID, "newpassword", "newpassword"))
	assert.NotEqual(t, originalHash, store.users[usr.ID].Password)
	assert.Empty(t, store.tokens, "refresh tokens must be revoked on password change")
}

func TestRefreshTokenDelegationGuards(t *testing.T) {
	_, svc := newUserFixture()

	assert.ErrorIs(t, svc.StoreRefreshToken(0, "hash"), apperr.ErrUserIDRequired)
	assert.ErrorIs(t, svc.StoreRefreshToken(1, ""), apperr.ErrRefreshTokenRequired)
}
