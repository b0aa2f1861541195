package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/pkg/apiErrors"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	log.SetupTestLogger()
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(config.Auth{
		Secret:               "test-secret",
		TokenTTL:             time.Hour,
		OperatorUser:         "operator",
		OperatorPasswordHash: string(hash),
	}).(*Service)
}

func TestService_Login(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantCode string
	}{
		{name: "valid credentials", username: "operator", password: "s3cret"},
		{name: "username is case insensitive", username: " Operator ", password: "s3cret"},
		{name: "wrong password", username: "operator", password: "nope", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "unknown user", username: "admin", password: "s3cret", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "missing password", username: "operator", wantErr: ErrMissingRequiredData, wantCode: apiErrors.ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsCredentialsError(err))

				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantCode, authErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3600), resp.ExpiresIn)

			claims, err := service.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "operator", claims.Username)
		})
	}
}

func TestService_LoginNotConfigured(t *testing.T) {
	service := NewService(config.Auth{OperatorUser: "operator"})

	_, err := service.Login("operator", "s3cret")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)

	expired, err := service.generateJWT("operator", -time.Minute)
	require.NoError(t, err)

	other := newTestService(t)
	other.cfg.Secret = "another-secret"
	foreign, err := other.generateJWT("operator", time.Hour)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"username": "operator"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired token", token: expired, wantErr: ErrExpiredToken},
		{name: "signed with another secret", token: foreign, wantErr: ErrInvalidToken},
		{name: "unsigned token", token: unsigned, wantErr: ErrInvalidToken},
		{name: "garbage", token: "not-a-token", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsAuthorizationError(err))
		})
	}
}
