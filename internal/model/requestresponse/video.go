package requestresponse

import "shortform-server/internal/model"

// UploadVideoRequest : тело запроса на загрузку embedded видео
type UploadVideoRequest struct {
	Title         string   `json:"title" example:"Мой первый ролик"`
	Description   string   `json:"description" example:"описание ролика"`
	VideoURL      string   `json:"video_url" example:"https://example.com/embed/abc"`
	ThumbnailName string   `json:"thumbnail_name,omitempty" example:"preview.png"`
	Duration      int64    `json:"duration" example:"37"`
	Tags          []string `json:"tags" example:"funny,cats"`
}

// UploadVideoResponse : успешный ответ; thumbnail_upload_url - pre-signed PUT
// URL для загрузки превью (пустой, если превью не задано)
type UploadVideoResponse struct {
	Response struct {
		VideoID            int64  `json:"video_id" example:"42"`
		ThumbnailUploadURL string `json:"thumbnail_upload_url,omitempty"`
	} `json:"response"`
}

// VideoDetailResponse : детальная карточка видео
type VideoDetailResponse struct {
	Response struct {
		Video       *model.VideoDetail `json:"video"`
		Incremented bool               `json:"incremented"`
	} `json:"response"`
}

// VideoListResponse : страница списка видео
type VideoListResponse struct {
	Response struct {
		Videos []model.VideoDetail `json:"videos"`
		Page   int                 `json:"page" example:"0"`
		Size   int                 `json:"size" example:"5"`
	} `json:"response"`
}

// RecentViewsResponse : id последних просмотренных видео, новые первыми
type RecentViewsResponse struct {
	Response struct {
		VideoIDs []int64 `json:"video_ids"`
	} `json:"response"`
}

// TagListResponse : каталог хэштегов
type TagListResponse struct {
	Response struct {
		Tags []model.HashTag `json:"tags"`
	} `json:"response"`
}

// LikeResponse : результат переключения лайка
type LikeResponse struct {
	Response struct {
		Liked bool `json:"liked" example:"true"`
	} `json:"response"`
}
