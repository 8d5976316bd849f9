package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя; повторный email -> ErrConflict
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, email, nickname, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, email, nickname, role, created_at
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query, user.UUID, user.Email, user.Nickname, user.PasswordHash, user.Role).
		Scan(&createdUser.UUID, &createdUser.Email, &createdUser.Nickname, &createdUser.Role, &createdUser.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: email %s", apperrors.ErrConflict, user.Email)
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `SELECT uuid, email, nickname, password_hash, role, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пользователь %s", apperrors.ErrNotFound, uuid)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	query := `SELECT uuid, email, nickname, password_hash, role, created_at FROM users WHERE email = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пользователь %s", apperrors.ErrNotFound, email)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// ExistsByEmail : проверяет, занят ли email
func (r *UserRepository) ExistsByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// DeleteUser : удаляет пользователя по UUID (полное удаление аккаунта)
func (r *UserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM users WHERE uuid = $1`
	result, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, удалён ли пользователь", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: пользователь %s", apperrors.ErrNotFound, uuid)
	}

	return nil
}
