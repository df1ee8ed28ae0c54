package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Password policy limits. The minimum follows the registration contract;
// the maximum is bcrypt's practical input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// passwordSpecialChars is the set of symbols that satisfy the "at least one
// special character" requirement of the password policy.
const passwordSpecialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|~`"

// User represents a registered account. Emails are compared exactly as
// stored; uniqueness is enforced by the store.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given email and an already-hashed
// password. It generates a new UUID for the user ID and sets the creation
// timestamp. Returns an error if validation fails.
//
// Password policy checks operate on the plaintext and must happen before
// hashing; use ValidatePassword for that.
func NewUser(email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.HashedPassword == "" {
		return fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
	}

	return nil
}

// ValidatePassword checks a plaintext password against the policy: at least
// MinPasswordLength characters with at least one uppercase letter, one
// lowercase letter, one digit, and one special character. Returns
// ErrWeakPassword wrapped with the first failed requirement.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must be at most %d characters", ErrWeakPassword, MaxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	case !hasSpecial:
		return fmt.Errorf("%w: must contain a special character", ErrWeakPassword)
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a non-empty
// local part, an @, and a domain with at least one interior dot. The unique
// index on the users table is the authoritative guard against duplicates;
// this check only rejects obviously malformed input early.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
