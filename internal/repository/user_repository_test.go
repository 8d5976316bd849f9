package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model"
	"shortform-server/internal/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockDB : поднимает sqlmock и оборачивает его в sqlx
func newMockDB(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mockSQL, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mockSQL
}

// 1. Успешное создание пользователя
func TestCreateUser_Success(t *testing.T) {
	database, mockSQL := newMockDB(t)
	repo := repository.NewUserRepository(database)

	user := &model.User{
		UUID:         "u1",
		Email:        "test@example.com",
		Nickname:     "tester",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}

	rows := sqlmock.NewRows([]string{"uuid", "email", "nickname", "role", "created_at"}).
		AddRow("u1", "test@example.com", "tester", model.RoleUser, time.Now())

	mockSQL.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "test@example.com", "tester", "hash", model.RoleUser).
		WillReturnRows(rows)

	created, err := repo.CreateUser(context.Background(), database.DB, user)

	require.NoError(t, err)
	assert.Equal(t, "u1", created.UUID)
	assert.Equal(t, "tester", created.Nickname)
	assert.NoError(t, mockSQL.ExpectationsWereMet())
}

// 2. Повторный email транслируется в ErrConflict по коду Postgres
func TestCreateUser_DuplicateEmail(t *testing.T) {
	database, mockSQL := newMockDB(t)
	repo := repository.NewUserRepository(database)

	mockSQL.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), database.DB, &model.User{Email: "test@example.com"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mockSQL.ExpectationsWereMet())
}

// 3. Отсутствующий пользователь
func TestFindByUUID_NotFound(t *testing.T) {
	database, mockSQL := newMockDB(t)
	repo := repository.NewUserRepository(database)

	mockSQL.ExpectQuery(regexp.QuoteMeta("SELECT uuid, email, nickname, password_hash, role, created_at FROM users WHERE uuid = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUUID(context.Background(), database.DB, "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// 4. Проверка занятости email
func TestExistsByEmail(t *testing.T) {
	database, mockSQL := newMockDB(t)
	repo := repository.NewUserRepository(database)

	mockSQL.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), database.DB, "test@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
}

// 5. Удаление несуществующего пользователя
func TestDeleteUser_NotFound(t *testing.T) {
	database, mockSQL := newMockDB(t)
	repo := repository.NewUserRepository(database)

	mockSQL.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE uuid = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(context.Background(), database.DB, "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// 6. Успешное удаление
func TestDeleteUser_Success(t *testing.T) {
	database, mockSQL := newMockDB(t)
	repo := repository.NewUserRepository(database)

	mockSQL.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE uuid = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteUser(context.Background(), database.DB, "u1")

	assert.NoError(t, err)
}
