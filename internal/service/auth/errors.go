package auth

import "errors"

// Sentinel errors returned by token validation. The API layer maps all
// of them to 401 without revealing which check failed.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType reports an access token presented where a refresh
	// token was expected, or the other way around.
	ErrWrongTokenType = errors.New("wrong token type")
)
