package repository

import (
	"context"
	"shortform-server/config"
	"shortform-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type LikeRepository struct {
	*config.Database
}

func NewLikeRepository(database *config.Database) *LikeRepository {
	return &LikeRepository{database}
}

// Exists : проверяет, лайкнул ли пользователь видео
func (r *LikeRepository) Exists(ctx context.Context, exec sqlx.ExtContext, userUUID string, videoID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM video_likes WHERE user_uuid = $1 AND video_id = $2)`
	err := sqlx.GetContext(ctx, exec, &exists, query, userUUID, videoID)
	if err != nil {
		return false, util.LogError("[LikeRepo] ошибка проверки лайка", err)
	}
	return exists, nil
}

// Insert : ставит лайк; повторная вставка не ошибка
func (r *LikeRepository) Insert(ctx context.Context, exec sqlx.ExtContext, userUUID string, videoID int64) error {
	query := `
		INSERT INTO video_likes (user_uuid, video_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, userUUID, videoID); err != nil {
		return util.LogError("[LikeRepo] не удалось поставить лайк", err)
	}
	return nil
}

// Delete : снимает лайк
func (r *LikeRepository) Delete(ctx context.Context, exec sqlx.ExtContext, userUUID string, videoID int64) error {
	query := `DELETE FROM video_likes WHERE user_uuid = $1 AND video_id = $2`
	if _, err := exec.ExecContext(ctx, query, userUUID, videoID); err != nil {
		return util.LogError("[LikeRepo] не удалось снять лайк", err)
	}
	return nil
}
