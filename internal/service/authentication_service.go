package service

import (
	"context"
	"fmt"
	"log"
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/ports"
	"shortform-server/internal/security"
	"shortform-server/internal/util"
	"time"
)

// refreshKeyPrefix : пространство ключей реестра refresh токенов.
// Ключ RT:<user_uuid> хранит единственный действующий refresh токен
// пользователя: новый вход или ротация перезаписывают запись, а не
// добавляют новую (одна активная сессия на пользователя).
const refreshKeyPrefix = "RT:"

// blacklistMarker : значение-маркер записи чёрного списка
const blacklistMarker = "logout"

type AuthenticationService struct {
	credentialStore ports.CredentialStore
	*config.AppConfig
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
}

func NewAuthenticationService(
	store ports.CredentialStore,
	cfg *config.AppConfig,
	service ports.JWTServiceInterface,
	userInterface ports.UserRepository,
) *AuthenticationService {
	return &AuthenticationService{
		store,
		cfg,
		service,
		userInterface,
	}
}

func refreshKey(userUUID string) string {
	return refreshKeyPrefix + userUUID
}

// Login аутентифицирует пользователя и открывает сессию.
// Выпускает пару токенов и записывает refresh токен в credential store
// под ключом RT:<uuid> с TTL, равным сроку жизни refresh токена.
// Существующая запись перезаписывается: прежняя сессия становится
// недействительной.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[AuthService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] пользователь не найден: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("[AuthService] %w", apperrors.ErrInvalidCredentials)
	}

	tokens, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID, user.Email, []string{user.Role})
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	refreshTTL, err := time.ParseDuration(s.AppConfig.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка парсинга refresh_token_ttl", err)
	}

	if err := s.credentialStore.Set(ctx, refreshKey(user.UUID), tokens.RefreshToken, refreshTTL); err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка сохранения refresh токена: %w", err)
	}

	return tokens, nil
}

// Reissue выполняет ротацию пары токенов.
//  1. Принципал извлекается из access токена; токен обязан быть
//     структурно валидным, но может быть просроченным.
//  2. В credential store обязана существовать запись RT:<uuid>, и её
//     значение обязано совпадать с предъявленным refresh токеном.
//     Отсутствие записи или несовпадение - ErrBadRequest (устаревший
//     либо повторно предъявленный токен).
//  3. Новая пара перезаписывает запись реестра. Старый access токен
//     при этом НЕ попадает в чёрный список - он истечёт сам; в чёрный
//     список токен заносит только явный Logout.
//
// Между чтением и перезаписью записи старый refresh токен остаётся
// валидным - это принятое окно повтора, а не дефект.
func (s *AuthenticationService) Reissue(ctx context.Context, accessToken string, refreshToken string) (*model.TokensPair, error) {
	claims, err := s.jwtServiceInterface.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] %w: не удалось разобрать access токен: %v", apperrors.ErrBadRequest, err)
	}

	userUUID := claims.UserUUID

	storedRefreshToken, err := s.credentialStore.Get(ctx, refreshKey(userUUID))
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка чтения refresh токена: %w", err)
	}
	if storedRefreshToken == "" {
		log.Printf("[AuthService] refresh запись для %s отсутствует", userUUID)
		return nil, fmt.Errorf("[AuthService] %w: refresh токен не найден", apperrors.ErrBadRequest)
	}
	if storedRefreshToken != refreshToken {
		log.Printf("[AuthService] refresh токен пользователя %s не совпадает с сохранённым", userUUID)
		return nil, fmt.Errorf("[AuthService] %w: refresh токен не совпадает", apperrors.ErrBadRequest)
	}

	tokensPair, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(userUUID, claims.Email, claims.Roles)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	refreshTTL, err := time.ParseDuration(s.AppConfig.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка парсинга refresh_token_ttl", err)
	}

	if err := s.credentialStore.Set(ctx, refreshKey(userUUID), tokensPair.RefreshToken, refreshTTL); err != nil {
		return nil, fmt.Errorf("[AuthService] не удалось сохранить refresh токен: %w", err)
	}

	return tokensPair, nil
}

// Logout отзывает сессию по access токену.
// Токен обязан пройти полную проверку (подпись, структура, срок) -
// иначе ErrBadRequest. Запись RT:<uuid> удаляется (отсутствие записи
// не ошибка, операция идемпотентна), после чего сам access токен
// заносится в чёрный список со значением "logout" и TTL, равным его
// оставшемуся времени жизни. Logout - единственный путь, напрямую
// отзывающий access токен.
func (s *AuthenticationService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtServiceInterface.ValidateJWT(accessToken, []byte(s.AppConfig.JWT.SecretKey))
	if err != nil {
		return fmt.Errorf("[AuthService] %w: невалидный access токен: %v", apperrors.ErrBadRequest, err)
	}

	if err := s.credentialStore.Delete(ctx, refreshKey(claims.UserUUID)); err != nil {
		return fmt.Errorf("[AuthService] не удалось удалить refresh запись: %w", err)
	}

	remaining, err := s.jwtServiceInterface.RemainingTTL(accessToken)
	if err != nil {
		return fmt.Errorf("[AuthService] %w: не удалось определить оставшийся TTL: %v", apperrors.ErrBadRequest, err)
	}

	if remaining > 0 {
		if err := s.credentialStore.Set(ctx, accessToken, blacklistMarker, remaining); err != nil {
			return fmt.Errorf("[AuthService] не удалось занести токен в чёрный список: %w", err)
		}
	}

	log.Printf("[AuthService] сессия пользователя %s завершена", claims.UserUUID)
	return nil
}

// SignOut полностью удаляет аккаунт пользователя.
// В отличие от Logout (завершение сессии) удаляется сама запись
// пользователя.
func (s *AuthenticationService) SignOut(ctx context.Context, userUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[AuthService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, userUUID)
	if err != nil {
		return fmt.Errorf("[AuthService] пользователь не найден: %w", err)
	}

	if err := s.userRepository.DeleteUser(ctx, db, user.UUID); err != nil {
		return fmt.Errorf("[AuthService] не удалось удалить пользователя: %w", err)
	}

	if err := s.credentialStore.Delete(ctx, refreshKey(user.UUID)); err != nil {
		log.Printf("[AuthService] не удалось удалить refresh запись: %v", err)
	}

	return nil
}

// IsRevoked проверяет access токен по чёрному списку
func (s *AuthenticationService) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	marker, err := s.credentialStore.Get(ctx, accessToken)
	if err != nil {
		return false, fmt.Errorf("[AuthService] ошибка проверки чёрного списка: %w", err)
	}
	return marker != "", nil
}
