package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier. ShouldSucceed
// drives the default outcome; CompareFn, when set, overrides it.
type MockPasswordVerifier struct {
	ShouldSucceed bool

	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith records the arguments of the last Compare call.
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
