package repository

import (
	"context"
	"shortform-server/config"
	"shortform-server/internal/model"
	"shortform-server/internal/util"

	"github.com/jmoiron/sqlx"
)

// HashtagRepository : индекс тегов video <-> hashtag (many-to-many).
// Служит базой для подбора видео по пересечению тегов.
type HashtagRepository struct {
	*config.Database
}

func NewHashtagRepository(database *config.Database) *HashtagRepository {
	return &HashtagRepository{database}
}

// CreateOrGetTags : создаёт недостающие теги и возвращает id всех
// перечисленных. Теги дедуплицируются по имени (upsert по tag_name).
func (r *HashtagRepository) CreateOrGetTags(ctx context.Context, exec sqlx.ExtContext, names []string) ([]int64, error) {
	if len(names) == 0 {
		return []int64{}, nil
	}

	tagIDs := make([]int64, 0, len(names))
	query := `
		INSERT INTO hashtags (tag_name)
		VALUES ($1)
		ON CONFLICT (tag_name) DO UPDATE SET tag_name = EXCLUDED.tag_name
		RETURNING id
	`
	for _, name := range names {
		var id int64
		if err := exec.QueryRowxContext(ctx, query, name).Scan(&id); err != nil {
			return nil, util.LogError("[HashtagRepo] ошибка upsert тега", err)
		}
		tagIDs = append(tagIDs, id)
	}

	return tagIDs, nil
}

// AttachToVideo : связывает видео с тегами
func (r *HashtagRepository) AttachToVideo(ctx context.Context, exec sqlx.ExtContext, videoID int64, tagIDs []int64) error {
	query := `
		INSERT INTO video_hash (video_id, hashtag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, tagID := range tagIDs {
		if _, err := exec.ExecContext(ctx, query, videoID, tagID); err != nil {
			return util.LogError("[HashtagRepo] ошибка привязки тега к видео", err)
		}
	}
	return nil
}

// FindTagIDsByVideo : все id тегов, привязанных к видео
func (r *HashtagRepository) FindTagIDsByVideo(ctx context.Context, exec sqlx.ExtContext, videoID int64) ([]int64, error) {
	query := `SELECT hashtag_id FROM video_hash WHERE video_id = $1`
	var tagIDs []int64
	if err := sqlx.SelectContext(ctx, exec, &tagIDs, query, videoID); err != nil {
		return nil, util.LogError("[HashtagRepo] не удалось получить теги видео", err)
	}
	return tagIDs, nil
}

// FindTagIDsByVideos : объединение id тегов нескольких видео (без повторов)
func (r *HashtagRepository) FindTagIDsByVideos(ctx context.Context, exec sqlx.ExtContext, videoIDs []int64) ([]int64, error) {
	if len(videoIDs) == 0 {
		return []int64{}, nil
	}

	query, args, err := sqlx.In(`SELECT DISTINCT hashtag_id FROM video_hash WHERE video_id IN (?)`, videoIDs)
	if err != nil {
		return nil, util.LogError("[HashtagRepo] ошибка сборки IN запроса", err)
	}

	query = exec.Rebind(query)
	var tagIDs []int64
	if err := sqlx.SelectContext(ctx, exec, &tagIDs, query, args...); err != nil {
		return nil, util.LogError("[HashtagRepo] не удалось получить теги видео", err)
	}
	return tagIDs, nil
}

// FindTagNamesByVideo : имена тегов видео для отображения в карточке
func (r *HashtagRepository) FindTagNamesByVideo(ctx context.Context, exec sqlx.ExtContext, videoID int64) ([]string, error) {
	query := `
		SELECT h.tag_name
		FROM video_hash vh
		JOIN hashtags h ON h.id = vh.hashtag_id
		WHERE vh.video_id = $1
		ORDER BY h.tag_name
	`
	var names []string
	if err := sqlx.SelectContext(ctx, exec, &names, query, videoID); err != nil {
		return nil, util.LogError("[HashtagRepo] не удалось получить имена тегов", err)
	}
	return names, nil
}

// FindVideoIDsByTags : id видео, имеющих хотя бы один из перечисленных тегов
func (r *HashtagRepository) FindVideoIDsByTags(ctx context.Context, exec sqlx.ExtContext, tagIDs []int64) ([]int64, error) {
	if len(tagIDs) == 0 {
		return []int64{}, nil
	}

	query, args, err := sqlx.In(`SELECT DISTINCT video_id FROM video_hash WHERE hashtag_id IN (?)`, tagIDs)
	if err != nil {
		return nil, util.LogError("[HashtagRepo] ошибка сборки IN запроса", err)
	}

	query = exec.Rebind(query)
	var videoIDs []int64
	if err := sqlx.SelectContext(ctx, exec, &videoIDs, query, args...); err != nil {
		return nil, util.LogError("[HashtagRepo] не удалось получить видео по тегам", err)
	}
	return videoIDs, nil
}

// FindAll : все теги (для административных выборок)
func (r *HashtagRepository) FindAll(ctx context.Context, exec sqlx.ExtContext) ([]model.HashTag, error) {
	query := `SELECT id, tag_name FROM hashtags ORDER BY id`
	var tags []model.HashTag
	if err := sqlx.SelectContext(ctx, exec, &tags, query); err != nil {
		return nil, util.LogError("[HashtagRepo] не удалось получить список тегов", err)
	}
	return tags, nil
}
