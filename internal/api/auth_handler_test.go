package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sarmadH97/keeyu-task-board/internal/config"
	"github.com/sarmadH97/keeyu-task-board/internal/domain"
	"github.com/sarmadH97/keeyu-task-board/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "issued-access-token", RefreshToken: "issued-refresh-token", Err: nil}
	passwordVerifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

	// MinCost keeps hashing fast in tests.
	authConfig := config.AuthConfig{
		TokenLifetimeMinutes: 60,
		BCryptCost:           bcrypt.MinCost,
	}

	handler := NewAuthHandler(userStore, jwtService, passwordVerifier, authConfig)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "new email registers",
			payload: map[string]interface{}{
				"email":    "dana@example.com",
				"password": "a-long-enough-password",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"email":    "dana@example.com",
				"password": "a-long-enough-password",
			},
			wantStatus: http.StatusConflict,
			wantToken:  false,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "not-an-email",
				"password": "a-long-enough-password",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
		{
			name: "password under the minimum",
			payload: map[string]interface{}{
				"email":    "mira@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
		{
			name: "missing email",
			payload: map[string]interface{}{
				"password": "a-long-enough-password",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
		{
			name: "password absent",
			payload: map[string]interface{}{
				"email": "ravi@example.com",
			},
			wantStatus: http.StatusBadRequest,
			wantToken:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")

			recorder := httptest.NewRecorder()

			handler.Register(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				err = json.NewDecoder(recorder.Body).Decode(&authResp)
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, authResp.UserID)
				assert.Equal(t, "issued-access-token", authResp.AccessToken)
				assert.Equal(t, "issued-refresh-token", authResp.RefreshToken)
				assert.NotEmpty(t, authResp.ExpiresAt)
			}
		})
	}

	// The stored user must carry a real bcrypt hash and no plaintext.
	stored, ok := userStore.Users["dana@example.com"]
	require.True(t, ok, "registered user should be in the store")
	assert.Empty(t, stored.Password, "plaintext password must be cleared before storage")
	assert.NoError(
		t,
		bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("a-long-enough-password")),
		"stored hash should verify against the original password",
	)
	assert.Equal(t, domain.RoleMember, stored.Role, "new users start as members")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	testEmail := "dana@example.com"
	goodPassword := "a-long-enough-password"
	dummyHash := "dummy-hash" // The verifier is mocked, so the hash value doesn't matter

	jwtService := &mocks.MockJWTService{Token: "issued-access-token", Err: nil}
	userStore := mocks.NewMockUserStore()
	userStore.Users[testEmail] = &domain.User{
		ID:             userID,
		Email:          testEmail,
		Role:           domain.RoleMember,
		HashedPassword: dummyHash,
	}

	authConfig := config.AuthConfig{
		TokenLifetimeMinutes: 60,
		BCryptCost:           bcrypt.MinCost,
	}

	tests := []struct {
		name             string
		payload          map[string]interface{}
		passwordVerifier *mocks.MockPasswordVerifier
		wantStatus       int
		wantToken        bool
	}{
		{
			name: "right credentials log in",
			payload: map[string]interface{}{
				"email":    testEmail,
				"password": goodPassword,
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
			wantStatus:       http.StatusOK,
			wantToken:        true,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    testEmail,
				"password": "wrong-password",
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: false},
			wantStatus:       http.StatusUnauthorized,
			wantToken:        false,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": goodPassword,
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
			wantStatus:       http.StatusUnauthorized,
			wantToken:        false,
		},
		{
			name: "password absent",
			payload: map[string]interface{}{
				"email": testEmail,
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
			wantStatus:       http.StatusBadRequest,
			wantToken:        false,
		},
		{
			name: "malformed email",
			payload: map[string]interface{}{
				"email":    "not-an-email",
				"password": goodPassword,
			},
			passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
			wantStatus:       http.StatusBadRequest,
			wantToken:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(userStore, jwtService, tt.passwordVerifier, authConfig)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")

			recorder := httptest.NewRecorder()

			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				err = json.NewDecoder(recorder.Body).Decode(&authResp)
				require.NoError(t, err)
				assert.Equal(t, userID, authResp.UserID)
				assert.Equal(t, "issued-access-token", authResp.AccessToken)

				// The verifier must have seen the stored hash, not the plaintext
				assert.Equal(t, dummyHash, tt.passwordVerifier.CompareCalledWith.HashedPassword)
				assert.Equal(t, goodPassword, tt.passwordVerifier.CompareCalledWith.Password)
			}
		})
	}
}

// TestLoginDoesNotRevealAccountExistence verifies that an unknown email
// and a wrong password produce identical responses.
func TestLoginDoesNotRevealAccountExistence(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	userStore := mocks.NewMockUserStore()
	userStore.Users["known@example.com"] = &domain.User{
		ID:             userID,
		Email:          "known@example.com",
		Role:           domain.RoleMember,
		HashedPassword: "some-hash",
	}
	jwtService := &mocks.MockJWTService{Token: "issued-access-token"}
	authConfig := config.AuthConfig{TokenLifetimeMinutes: 60, BCryptCost: bcrypt.MinCost}

	send := func(email string, verifier *mocks.MockPasswordVerifier) *httptest.ResponseRecorder {
		handler := NewAuthHandler(userStore, jwtService, verifier, authConfig)
		payload, err := json.Marshal(map[string]interface{}{
			"email":    email,
			"password": "a-long-enough-password",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)
		return recorder
	}

	unknownEmail := send("ghost@example.com", &mocks.MockPasswordVerifier{ShouldSucceed: true})
	wrongPassword := send("known@example.com", &mocks.MockPasswordVerifier{ShouldSucceed: false})

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.JSONEq(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestRegisterStoreFailure(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.CreateError = errors.New("connection refused")
	jwtService := &mocks.MockJWTService{Token: "issued-access-token"}
	passwordVerifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	authConfig := config.AuthConfig{TokenLifetimeMinutes: 60, BCryptCost: bcrypt.MinCost}

	handler := NewAuthHandler(userStore, jwtService, passwordVerifier, authConfig)

	payload, err := json.Marshal(map[string]interface{}{
		"email":    "dana@example.com",
		"password": "a-long-enough-password",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler.Register(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Failed to create user", resp["error"])
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}
