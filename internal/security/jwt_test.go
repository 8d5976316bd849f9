package security_test

import (
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/security"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService(accessTTL string) *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: "1h",
	})
}

func issuePair(t *testing.T, svc *security.JWTService) *model.TokensPair {
	t.Helper()
	tokens, err := svc.GenerateAccessRefreshTokens("u1", "test@example.com", []string{model.RoleUser})
	require.NoError(t, err)
	return tokens
}

// 1. Полный цикл: выпуск и проверка access токена
func TestGenerateAndValidate(t *testing.T) {
	svc := newJWTService("30m")
	tokens := issuePair(t, svc)

	claims, err := svc.ValidateJWT(tokens.AccessToken, []byte("test-secret"))

	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserUUID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, []string{model.RoleUser}, claims.Roles)
	assert.Equal(t, "shortform-server", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

// 2. Сроки жизни access и refresh токенов независимы
func TestGenerate_IndependentTTLs(t *testing.T) {
	svc := newJWTService("30m")
	tokens := issuePair(t, svc)

	assert.WithinDuration(t, time.Now().Add(30*time.Minute), tokens.AccessExpiresAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tokens.RefreshExpiresAt, 5*time.Second)
}

// 3. Refresh токены не повторяются
func TestGenerateRefreshToken_Unique(t *testing.T) {
	first, err := security.GenerateRefreshToken()
	require.NoError(t, err)
	second, err := security.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

// 4. Истёкший токен
func TestValidateJWT_Expired(t *testing.T) {
	svc := newJWTService("-1s")
	tokens := issuePair(t, svc)

	_, err := svc.ValidateJWT(tokens.AccessToken, []byte("test-secret"))

	assert.ErrorIs(t, err, apperrors.ErrExpiredToken)
}

// 5. Мусор вместо токена
func TestValidateJWT_Malformed(t *testing.T) {
	svc := newJWTService("30m")

	_, err := svc.ValidateJWT("not-a-jwt", []byte("test-secret"))

	assert.ErrorIs(t, err, apperrors.ErrMalformedToken)
}

// 6. Токен с чужой подписью
func TestValidateJWT_WrongSecret(t *testing.T) {
	svc := newJWTService("30m")
	tokens := issuePair(t, svc)

	_, err := svc.ValidateJWT(tokens.AccessToken, []byte("other-secret"))

	assert.ErrorIs(t, err, apperrors.ErrMalformedToken)
}

// 7. Токен без субъекта
func TestValidateJWT_MissingSubject(t *testing.T) {
	svc := newJWTService("30m")
	tokens, err := svc.GenerateAccessRefreshTokens("", "test@example.com", nil)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(tokens.AccessToken, []byte("test-secret"))

	assert.ErrorIs(t, err, apperrors.ErrMissingClaims)
}

// 8. ParseAccessToken принимает истёкший токен, но строго проверяет подпись
func TestParseAccessToken_AllowsExpired(t *testing.T) {
	svc := newJWTService("-1s")
	tokens := issuePair(t, svc)

	claims, err := svc.ParseAccessToken(tokens.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserUUID)
}

func TestParseAccessToken_RejectsGarbage(t *testing.T) {
	svc := newJWTService("30m")

	_, err := svc.ParseAccessToken("not-a-jwt")

	assert.ErrorIs(t, err, apperrors.ErrMalformedToken)
}

// 9. Оставшийся TTL живого токена лежит в (0, accessTTL]
func TestRemainingTTL(t *testing.T) {
	svc := newJWTService("30m")
	tokens := issuePair(t, svc)

	remaining, err := svc.RemainingTTL(tokens.AccessToken)

	require.NoError(t, err)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 30*time.Minute)
}

// 10. У истёкшего токена оставшийся TTL равен нулю
func TestRemainingTTL_ExpiredIsZero(t *testing.T) {
	svc := newJWTService("-1s")
	tokens := issuePair(t, svc)

	remaining, err := svc.RemainingTTL(tokens.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), remaining)
}
