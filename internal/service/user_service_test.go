package service_test

import (
	"context"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/security"
	"shortform-server/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 1. Нет БД в контексте
func TestSignUp_NoDBInContext(t *testing.T) {
	svc := service.NewUserService(new(MockUserRepository))

	_, err := svc.SignUp(context.Background(), "test@example.com", "tester", "Password1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database connection не найден")
}

// 2. Успешная регистрация: роль ROLE_USER, пароль сохраняется хэшем
func TestSignUp_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := service.NewUserService(mockUserRepo)
	ctx := dbContext()

	mockUserRepo.On("ExistsByEmail", ctx, mock.Anything, "test@example.com").Return(false, nil)
	mockUserRepo.On("CreateUser", ctx, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.UUID != "" &&
			u.Role == model.RoleUser &&
			u.PasswordHash != "Password1" &&
			security.CheckPassword("Password1", u.PasswordHash)
	})).Return(&model.User{UUID: "u1", Email: "test@example.com", Nickname: "tester", Role: model.RoleUser}, nil)

	created, err := svc.SignUp(ctx, "test@example.com", "tester", "Password1")

	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)
	mockUserRepo.AssertExpectations(t)
}

// 3. Занятый email
func TestSignUp_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := service.NewUserService(mockUserRepo)
	ctx := dbContext()

	mockUserRepo.On("ExistsByEmail", ctx, mock.Anything, "test@example.com").Return(true, nil)

	_, err := svc.SignUp(ctx, "test@example.com", "tester", "Password1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockUserRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

// 4. Слабые пароли отклоняются до обращения к БД
func TestSignUp_WeakPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := service.NewUserService(mockUserRepo)
	ctx := dbContext()

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		_, err := svc.SignUp(ctx, "test@example.com", "tester", password)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest, "пароль %q должен быть отклонён", password)
	}

	mockUserRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
}

// 5. Пустые обязательные поля
func TestSignUp_MissingFields(t *testing.T) {
	svc := service.NewUserService(new(MockUserRepository))
	ctx := dbContext()

	_, err := svc.SignUp(ctx, "", "tester", "Password1")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.SignUp(ctx, "test@example.com", "", "Password1")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

// 6. Профиль существующего пользователя
func TestGetProfile(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := service.NewUserService(mockUserRepo)
	ctx := dbContext()

	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(&model.User{UUID: "u1", Nickname: "tester"}, nil)

	user, err := svc.GetProfile(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "tester", user.Nickname)
}

// 7. Профиль несуществующего пользователя
func TestGetProfile_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := service.NewUserService(mockUserRepo)
	ctx := dbContext()

	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "ghost").
		Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetProfile(ctx, "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
