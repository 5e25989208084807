package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors returned by NewUser and User.Validate.
var (
	ErrEmptyUserID         = errors.New("user ID is required")
	ErrEmptyEmail          = errors.New("email is required")
	ErrInvalidEmail        = errors.New("email address is malformed")
	ErrPasswordTooShort    = errors.New("password is shorter than 12 characters")
	ErrPasswordTooLong     = errors.New("password is longer than 72 characters")
	ErrEmptyPassword       = errors.New("password is required")
	ErrEmptyHashedPassword = errors.New("hashed password is required")
	ErrInvalidRole         = errors.New("unknown user role")
)

// Role controls what a user may touch beyond their own boards. Admins
// can list accounts and read or mutate any board; members are confined
// to boards they own.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User represents a registered account on the task board.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`

	// Password is plaintext, only set between request decode and
	// hashing. HashedPassword is the only form that reaches the
	// database. Neither serializes.
	Password       string `json:"-"`
	HashedPassword string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser builds a member account with a fresh ID and UTC timestamps
// and validates it. The password stays plaintext here; the caller
// hashes it before the user is stored.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Role:      RoleMember,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the invariants every User must hold, returning the
// sentinel for the first violated one.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	// During creation and password changes the plaintext password is
	// present and must meet the length policy; loaded users carry only
	// the hash.
	if u.Password != "" {
		if len(u.Password) < minPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > maxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// Password length policy: a 12 character floor buys more entropy than
// character-class rules, and 72 bytes is bcrypt's input limit.
const (
	minPasswordLength = 12
	maxPasswordLength = 72
)

// validateEmailFormat performs a basic shape check: a non-empty local
// part, one '@', and a dotted domain. Full RFC 5322 parsing is not
// attempted here.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsRune(domain, '@') {
		return false
	}

	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
