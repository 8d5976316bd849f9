package ports

import (
	"context"
	"shortform-server/internal/model"
	"shortform-server/internal/model/requestresponse"

	"github.com/jmoiron/sqlx"
)

// VideoRepository : SQL слой видео
type VideoRepository interface {
	Save(ctx context.Context, exec sqlx.ExtContext, video *model.Video) (int64, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, videoID int64) (*model.Video, error)
	UpdateViewCount(ctx context.Context, exec sqlx.ExtContext, videoID int64) error
	RetrieveDetail(ctx context.Context, exec sqlx.ExtContext, videoID int64) (*model.VideoDetail, error)
	RetrieveMain(ctx context.Context, exec sqlx.ExtContext, page, size int) ([]model.VideoDetail, error)
	RetrieveMyVideos(ctx context.Context, exec sqlx.ExtContext, userUUID string, page, size int) ([]model.VideoDetail, error)
	Search(ctx context.Context, exec sqlx.ExtContext, searchQuery string, page, size int) ([]model.VideoDetail, error)
	RetrieveByIDs(ctx context.Context, exec sqlx.ExtContext, videoIDs []int64, page, size int) ([]model.VideoDetail, error)
}

// HashtagRepository : индекс тегов
type HashtagRepository interface {
	CreateOrGetTags(ctx context.Context, exec sqlx.ExtContext, names []string) ([]int64, error)
	AttachToVideo(ctx context.Context, exec sqlx.ExtContext, videoID int64, tagIDs []int64) error
	FindTagIDsByVideo(ctx context.Context, exec sqlx.ExtContext, videoID int64) ([]int64, error)
	FindTagIDsByVideos(ctx context.Context, exec sqlx.ExtContext, videoIDs []int64) ([]int64, error)
	FindTagNamesByVideo(ctx context.Context, exec sqlx.ExtContext, videoID int64) ([]string, error)
	FindVideoIDsByTags(ctx context.Context, exec sqlx.ExtContext, tagIDs []int64) ([]int64, error)
	FindAll(ctx context.Context, exec sqlx.ExtContext) ([]model.HashTag, error)
}

type LikeRepository interface {
	Exists(ctx context.Context, exec sqlx.ExtContext, userUUID string, videoID int64) (bool, error)
	Insert(ctx context.Context, exec sqlx.ExtContext, userUUID string, videoID int64) error
	Delete(ctx context.Context, exec sqlx.ExtContext, userUUID string, videoID int64) error
}

type RecordRepository interface {
	Save(ctx context.Context, exec sqlx.ExtContext, videoID int64, userUUID string) error
	RecentVideoIDs(ctx context.Context, exec sqlx.ExtContext, userUUID string, excludeVideoID int64, limit int) ([]int64, error)
}

type VideoService interface {
	UploadEmbeddedVideo(ctx context.Context, req *requestresponse.UploadVideoRequest, userUUID string) (int64, string, error)
	RecordView(ctx context.Context, videoID int64, requesterIP string) (bool, error)
	RetrieveDetail(ctx context.Context, videoID int64, requesterIP, viewerUUID string) (*model.VideoDetail, bool, error)
	RequestLike(ctx context.Context, userUUID string, videoID int64) (bool, error)
	RetrieveMain(ctx context.Context, page, size int) ([]model.VideoDetail, error)
	RetrieveMyVideos(ctx context.Context, userUUID string, page, size int) ([]model.VideoDetail, error)
	Search(ctx context.Context, query string, page, size int) ([]model.VideoDetail, error)
}

// Ranker : точка расширения для ранжирования рекомендаций.
// Контракт выборки порядок не задаёт; по умолчанию используется
// PassThroughRanker (порядок хранилища).
type Ranker func(videoIDs []int64) []int64

// PassThroughRanker возвращает кандидатов как есть
func PassThroughRanker(videoIDs []int64) []int64 {
	return videoIDs
}

type RecommendationService interface {
	AllTags(ctx context.Context) ([]model.HashTag, error)
	RelatedTags(ctx context.Context, videoID int64) ([]int64, error)
	RelatedVideos(ctx context.Context, tagIDs []int64, excludeVideoID int64, page, size int) ([]model.VideoDetail, error)
	RecentlyViewed(ctx context.Context, userUUID string, limit int) ([]int64, error)
	ConcernVideos(ctx context.Context, userUUID string, videoID int64, page, size int) ([]model.VideoDetail, error)
}
