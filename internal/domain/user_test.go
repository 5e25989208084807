package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validEmail := "dana@example.com"
	validPassword := "correcthorsebattery"

	user, err := NewUser(validEmail, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected a generated user ID")
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Role != RoleMember {
		t.Errorf("Expected role %s, got %s", RoleMember, user.Role)
	}

	if user.Password != validPassword {
		t.Errorf("Expected password to be retained for hashing, got %q", user.Password)
	}

	if user.HashedPassword != "" {
		t.Error("Expected hashed password to be empty until the caller hashes")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}
}

func TestNewUserValidation(t *testing.T) {
	validPassword := "correcthorsebattery"

	testCases := []struct {
		name     string
		email    string
		password string
		expected error
	}{
		{
			name:     "Empty email",
			email:    "",
			password: validPassword,
			expected: ErrEmptyEmail,
		},
		{
			name:     "Missing at sign",
			email:    "invalidemail",
			password: validPassword,
			expected: ErrInvalidEmail,
		},
		{
			name:     "Missing local part",
			email:    "@example.com",
			password: validPassword,
			expected: ErrInvalidEmail,
		},
		{
			name:     "Missing domain dot",
			email:    "user@localhost",
			password: validPassword,
			expected: ErrInvalidEmail,
		},
		{
			name:     "Dot at end of domain",
			email:    "user@example.",
			password: validPassword,
			expected: ErrInvalidEmail,
		},
		{
			name:     "Two at signs",
			email:    "user@foo@example.com",
			password: validPassword,
			expected: ErrInvalidEmail,
		},
		{
			name:     "Password too short",
			email:    "dana@example.com",
			password: "short",
			expected: ErrPasswordTooShort,
		},
		{
			name:     "Password too long",
			email:    "dana@example.com",
			password: strings.Repeat("a", 73),
			expected: ErrPasswordTooLong,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.email, tc.password)
			if err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Email:          "dana@example.com",
		Role:           RoleMember,
		HashedPassword: "$2a$10$somethinghashedgoeshere",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected stored user with hash only to validate, got %v", err)
	}

	noRole := validUser
	noRole.Role = ""
	if err := noRole.Validate(); err != ErrInvalidRole {
		t.Errorf("Expected ErrInvalidRole, got %v", err)
	}

	unknownRole := validUser
	unknownRole.Role = "superuser"
	if err := unknownRole.Validate(); err != ErrInvalidRole {
		t.Errorf("Expected ErrInvalidRole, got %v", err)
	}

	noCredentials := validUser
	noCredentials.HashedPassword = ""
	if err := noCredentials.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected ErrEmptyPassword, got %v", err)
	}

	noID := validUser
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected ErrEmptyUserID, got %v", err)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() {
		t.Error("Expected admin role to be valid")
	}
	if !RoleMember.Valid() {
		t.Error("Expected member role to be valid")
	}
	if Role("owner").Valid() {
		t.Error("Expected unknown role to be invalid")
	}
}
