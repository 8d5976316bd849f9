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
)

type VideoRepository struct {
	*config.Database
}

func NewVideoRepository(database *config.Database) *VideoRepository {
	return &VideoRepository{database}
}

const videoDetailColumns = `
	v.id, v.user_uuid, v.title, v.description, v.video_url, v.thumbnail_path,
	v.video_type, v.is_block, v.duration, v.views, v.created_at,
	u.nickname AS author_nickname,
	(SELECT COUNT(*) FROM video_likes vl WHERE vl.video_id = v.id) AS likes_count
`

// Save : сохраняет новое видео
func (r *VideoRepository) Save(ctx context.Context, exec sqlx.ExtContext, video *model.Video) (int64, error) {
	query := `
		INSERT INTO videos (user_uuid, title, description, video_url, thumbnail_path, video_type, is_block, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := exec.QueryRowxContext(ctx, query,
		video.UserUUID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailPath,
		video.VideoType,
		video.IsBlock,
		video.Duration,
	).Scan(&id)

	if err != nil {
		return 0, util.LogError("[VideoRepo] ошибка вставки видео в БД", err)
	}

	return id, nil
}

// FindByID : ищет видео по идентификатору
func (r *VideoRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, videoID int64) (*model.Video, error) {
	query := `SELECT id, user_uuid, title, description, video_url, thumbnail_path, video_type, is_block, duration, views, created_at
				FROM videos WHERE id = $1`
	var video model.Video
	err := sqlx.GetContext(ctx, exec, &video, query, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: видео %d", apperrors.ErrNotFound, videoID)
		}
		return nil, util.LogError("[VideoRepo] не удалось найти видео", err)
	}
	return &video, nil
}

// UpdateViewCount : инкрементирует счётчик просмотров одним UPDATE
func (r *VideoRepository) UpdateViewCount(ctx context.Context, exec sqlx.ExtContext, videoID int64) error {
	query := `UPDATE videos SET views = views + 1 WHERE id = $1`
	result, err := exec.ExecContext(ctx, query, videoID)
	if err != nil {
		return util.LogError("[VideoRepo] не удалось обновить счётчик просмотров", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[VideoRepo] не удалось проверить, обновлён ли счётчик", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: видео %d", apperrors.ErrNotFound, videoID)
	}

	return nil
}

// RetrieveDetail : детальная карточка видео вместе с автором и лайками
func (r *VideoRepository) RetrieveDetail(ctx context.Context, exec sqlx.ExtContext, videoID int64) (*model.VideoDetail, error) {
	query := `
		SELECT ` + videoDetailColumns + `
		FROM videos v
		JOIN users u ON u.uuid = v.user_uuid
		WHERE v.id = $1 AND v.is_block = FALSE
	`
	var detail model.VideoDetail
	err := sqlx.GetContext(ctx, exec, &detail, query, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: видео %d", apperrors.ErrNotFound, videoID)
		}
		return nil, util.LogError("[VideoRepo] не удалось получить карточку видео", err)
	}
	return &detail, nil
}

// RetrieveMain : страница главной ленты, новые видео первыми
func (r *VideoRepository) RetrieveMain(ctx context.Context, exec sqlx.ExtContext, page, size int) ([]model.VideoDetail, error) {
	query := `
		SELECT ` + videoDetailColumns + `
		FROM videos v
		JOIN users u ON u.uuid = v.user_uuid
		WHERE v.is_block = FALSE
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $1 OFFSET $2
	`
	var videos []model.VideoDetail
	err := sqlx.SelectContext(ctx, exec, &videos, query, size, page*size)
	if err != nil {
		return nil, util.LogError("[VideoRepo] не удалось получить ленту", err)
	}
	return videos, nil
}

// RetrieveMyVideos : страница видео конкретного пользователя
func (r *VideoRepository) RetrieveMyVideos(ctx context.Context, exec sqlx.ExtContext, userUUID string, page, size int) ([]model.VideoDetail, error) {
	query := `
		SELECT ` + videoDetailColumns + `
		FROM videos v
		JOIN users u ON u.uuid = v.user_uuid
		WHERE v.user_uuid = $1
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $2 OFFSET $3
	`
	var videos []model.VideoDetail
	err := sqlx.SelectContext(ctx, exec, &videos, query, userUUID, size, page*size)
	if err != nil {
		return nil, util.LogError("[VideoRepo] не удалось получить видео пользователя", err)
	}
	return videos, nil
}

// Search : поиск по заголовку и описанию
func (r *VideoRepository) Search(ctx context.Context, exec sqlx.ExtContext, searchQuery string, page, size int) ([]model.VideoDetail, error) {
	query := `
		SELECT ` + videoDetailColumns + `
		FROM videos v
		JOIN users u ON u.uuid = v.user_uuid
		WHERE v.is_block = FALSE AND (v.title ILIKE '%' || $1 || '%' OR v.description ILIKE '%' || $1 || '%')
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $2 OFFSET $3
	`
	var videos []model.VideoDetail
	err := sqlx.SelectContext(ctx, exec, &videos, query, searchQuery, size, page*size)
	if err != nil {
		return nil, util.LogError("[VideoRepo] ошибка поиска видео", err)
	}
	return videos, nil
}

// RetrieveByIDs : выборка карточек по списку идентификаторов.
// Порядок результата - порядок БД; итоговый порядок задаёт вызывающий.
func (r *VideoRepository) RetrieveByIDs(ctx context.Context, exec sqlx.ExtContext, videoIDs []int64, page, size int) ([]model.VideoDetail, error) {
	if len(videoIDs) == 0 {
		return []model.VideoDetail{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+videoDetailColumns+`
		FROM videos v
		JOIN users u ON u.uuid = v.user_uuid
		WHERE v.id IN (?) AND v.is_block = FALSE
		LIMIT ? OFFSET ?
	`, videoIDs, size, page*size)
	if err != nil {
		return nil, util.LogError("[VideoRepo] ошибка сборки IN запроса", err)
	}

	query = exec.Rebind(query)
	var videos []model.VideoDetail
	if err := sqlx.SelectContext(ctx, exec, &videos, query, args...); err != nil {
		return nil, util.LogError("[VideoRepo] не удалось получить видео по списку id", err)
	}
	return videos, nil
}
