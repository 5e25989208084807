package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sarmadH97/keeyu-task-board/internal/config"
	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/logger"
)

// Token type claim values.
const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// defaultClockSkew is the tolerated clock drift between the issuing
// and the validating host when checking time claims.
const defaultClockSkew = 2 * time.Minute

// hmacJWTService signs and validates tokens with HMAC-SHA256. The
// clock is injectable so tests can pin issued-at and expiry times.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time
	clockSkew            time.Duration
}

// jwtCustomClaims is the wire form of Claims: the custom uid, role,
// and type fields on top of the registered claim set.
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	Role      string    `json:"role"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService builds the HMAC-SHA256 token service from the auth
// configuration. The signing secret must be at least 32 bytes.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be 32 bytes or longer")
	}

	return &hmacJWTService{
		signingKey:           []byte(cfg.JWTSecret),
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            defaultClockSkew,
	}, nil
}

// GenerateToken creates a signed access token carrying the user's
// identity and role.
func (s *hmacJWTService) GenerateToken(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
) (string, error) {
	return s.sign(ctx, userID, role, accessTokenType, s.tokenLifetime)
}

// GenerateRefreshToken creates a signed refresh token. It carries the
// same claims as an access token but lives longer and can only be
// exchanged for a new token pair.
func (s *hmacJWTService) GenerateRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
) (string, error) {
	return s.sign(ctx, userID, role, refreshTokenType, s.refreshTokenLifetime)
}

func (s *hmacJWTService) sign(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
	tokenType string,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID,
		Role:      string(role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("token signing failed",
			"error", err,
			"user_id", userID,
			"token_type", tokenType)
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}

	return signedToken, nil
}

// ValidateToken checks an access token and returns its claims.
// Refresh tokens presented here fail with ErrWrongTokenType.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, accessTokenType)
}

// ValidateRefreshToken checks a refresh token and returns its claims.
// Access tokens presented here fail with ErrWrongTokenType.
func (s *hmacJWTService) ValidateRefreshToken(
	ctx context.Context,
	tokenString string,
) (*Claims, error) {
	return s.validate(ctx, tokenString, refreshTokenType)
}

func (s *hmacJWTService) validate(
	ctx context.Context,
	tokenString string,
	wantType string,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	// Each token type reports its own sentinel errors so callers can
	// distinguish a stale session from a broken refresh flow.
	errExpired := ErrExpiredToken
	errNotYet := ErrTokenNotYetValid
	errInvalid := ErrInvalidToken
	if wantType == refreshTokenType {
		errExpired = ErrExpiredRefreshToken
		errNotYet = ErrInvalidRefreshToken
		errInvalid = ErrInvalidRefreshToken
	}

	// Time claims are checked against the injected clock, with leeway
	// for drift between hosts.
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token rejected: expired",
				"error", err,
				"token_type", wantType)
			return nil, errExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token rejected: not yet valid",
				"error", err,
				"token_type", wantType)
			return nil, errNotYet
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token rejected: malformed",
				"error", err,
				"token_type", wantType)
			return nil, errInvalid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token rejected: bad signature",
				"error", err,
				"token_type", wantType)
			return nil, errInvalid
		default:
			log.Debug("token rejected: unclassified parse error",
				"error", err,
				"token_type", wantType,
				"error_type", fmt.Sprintf("%T", err))
			return nil, errInvalid
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token rejected: unusable claims")
		return nil, errInvalid
	}

	if claims.TokenType != wantType {
		log.Debug("token rejected: wrong type",
			"expected", wantType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		log.Debug("token rejected: unknown role claim",
			"role", claims.Role)
		return nil, errInvalid
	}

	log.Debug("token validated",
		"user_id", claims.UserID,
		"token_id", claims.ID,
		"token_type", wantType,
		"expiry", claims.ExpiresAt.Time)

	return &Claims{
		UserID:    claims.UserID,
		Role:      role,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
