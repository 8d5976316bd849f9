package security

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/repository"
	"shortform-server/internal/util"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

type Claims struct {
	UserUUID string   `json:"user_uuid"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessRefreshTokens выпускает новую пару токенов.
// Access токен - подписанный JWT с claims субъекта, refresh токен -
// случайная строка без встроенной семантики. Сроки жизни независимы
// и берутся из конфигурации. Побочных эффектов нет: сохранение
// refresh токена в credential store - обязанность вызывающего.
func (service *JWTService) GenerateAccessRefreshTokens(userUUID, email string, roles []string) (*model.TokensPair, error) {
	refreshTokenStr, err := GenerateRefreshToken()
	if err != nil {
		return nil, util.LogError("ошибка генерации рефреш токена", err)
	}

	refreshTTL, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}

	accessTTL, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	now := time.Now()
	claims := Claims{
		UserUUID: userUUID,
		Email:    email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "shortform-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return nil, util.LogError("ошибка подписи токена", err)
	}

	return &model.TokensPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshTokenStr,
		AccessExpiresAt:  now.Add(accessTTL),
		RefreshExpiresAt: now.Add(refreshTTL),
	}, nil
}

func GenerateRefreshToken() (string, error) {
	tokenBytes := make([]byte, 32)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", util.LogError("ошибка генерации", err)
	}

	return base64.StdEncoding.EncodeToString(tokenBytes), nil
}

// ValidateJWT полностью проверяет access токен: подпись, структуру,
// срок действия и наличие субъекта. Чистая функция, без I/O.
func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedToken, err)
	}
	if jwtToken.Valid == false {
		return nil, apperrors.ErrMalformedToken
	}
	if claims.UserUUID == "" {
		return nil, apperrors.ErrMissingClaims
	}

	return claims, nil
}

// ParseAccessToken разбирает access токен без проверки срока действия.
// Подпись и структура проверяются строго. Используется при ротации
// (reissue): принципала нужно извлечь и из уже истёкшего токена.
func (service *JWTService) ParseAccessToken(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	}, jwt.WithoutClaimsValidation())

	if err != nil || jwtToken.Valid == false {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedToken, err)
	}
	if claims.UserUUID == "" {
		return nil, apperrors.ErrMissingClaims
	}

	return claims, nil
}

// RemainingTTL возвращает оставшееся время жизни access токена.
// Этим значением задаётся TTL записи в чёрном списке: запись
// самоуничтожается ровно тогда, когда токен истёк бы сам,
// и чёрный список не растёт бесконечно.
func (service *JWTService) RemainingTTL(jwtTokenStr string) (time.Duration, error) {
	claims, err := service.ParseAccessToken(jwtTokenStr)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil {
		return 0, apperrors.ErrMissingClaims
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// JWTMiddleware проверяет access токен и его статус отзыва.
// Отозванный токен отклоняется до любой бизнес-логики, даже если
// его подпись всё ещё валидна.
func JWTMiddleware(secretKey []byte, credentialRepo *repository.CredentialRepository, jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(secretKey, credentialRepo, jwtService, next))
	}
}

func handleAuthentication(secretKey []byte, credentialRepo *repository.CredentialRepository, jwtService *JWTService, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		claims, err := jwtService.ValidateJWT(token, secretKey)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "невалидный токен", http.StatusUnauthorized)
			return
		}

		marker, err := credentialRepo.Get(request.Context(), token)
		if err != nil {
			log.Printf("ошибка проверки чёрного списка: %v", err)
			http.Error(writer, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		if marker != "" {
			log.Printf("токен пользователя %s отозван", claims.UserUUID)
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
