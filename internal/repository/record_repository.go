package repository

import (
	"context"
	"shortform-server/config"
	"shortform-server/internal/util"

	"github.com/jmoiron/sqlx"
)

// RecordRepository : история просмотров авторизованных пользователей,
// источник посевных видео для рекомендаций.
type RecordRepository struct {
	*config.Database
}

func NewRecordRepository(database *config.Database) *RecordRepository {
	return &RecordRepository{database}
}

// Save : фиксирует просмотр видео пользователем
func (r *RecordRepository) Save(ctx context.Context, exec sqlx.ExtContext, videoID int64, userUUID string) error {
	query := `INSERT INTO record_videos (video_id, user_uuid) VALUES ($1, $2)`
	if _, err := exec.ExecContext(ctx, query, videoID, userUUID); err != nil {
		return util.LogError("[RecordRepo] не удалось сохранить запись просмотра", err)
	}
	return nil
}

// RecentVideoIDs : последние просмотренные видео, новые первыми.
// excludeVideoID исключает текущее видео из посевного набора.
func (r *RecordRepository) RecentVideoIDs(ctx context.Context, exec sqlx.ExtContext, userUUID string, excludeVideoID int64, limit int) ([]int64, error) {
	query := `
		SELECT video_id
		FROM record_videos
		WHERE user_uuid = $1 AND video_id <> $2
		GROUP BY video_id
		ORDER BY MAX(created_at) DESC
		LIMIT $3
	`
	var videoIDs []int64
	if err := sqlx.SelectContext(ctx, exec, &videoIDs, query, userUUID, excludeVideoID, limit); err != nil {
		return nil, util.LogError("[RecordRepo] не удалось получить историю просмотров", err)
	}
	return videoIDs, nil
}
