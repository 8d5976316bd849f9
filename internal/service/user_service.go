package service

import (
	"context"
	"fmt"
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/ports"
	"shortform-server/internal/security"
	"unicode"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

// SignUp регистрирует нового пользователя.
// Повторная регистрация занятого email -> ErrConflict.
func (s *UserService) SignUp(ctx context.Context, email, nickname, password string) (*model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	if email == "" || nickname == "" {
		return nil, fmt.Errorf("[UserService] %w: email и nickname обязательны", apperrors.ErrBadRequest)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w: %v", apperrors.ErrBadRequest, err)
	}

	exists, err := s.userRepository.ExistsByEmail(ctx, db, email)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка проверки email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("[UserService] %w: %s", apperrors.ErrConflict, email)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	created, err := s.userRepository.CreateUser(ctx, db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fmt.Errorf("пароль должен содержать буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}

	return nil
}

// GetProfile : возвращает профиль пользователя
func (s *UserService) GetProfile(ctx context.Context, userUUID string) (*model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	return user, nil
}
