package model

import "time"

type Video struct {
	ID            int64     `db:"id" json:"id"`
	UserUUID      string    `db:"user_uuid" json:"user_uuid"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	VideoURL      string    `db:"video_url" json:"video_url"`
	ThumbnailPath *string   `db:"thumbnail_path" json:"thumbnail_path,omitempty"`
	VideoType     string    `db:"video_type" json:"video_type"`
	IsBlock       bool      `db:"is_block" json:"-"`
	Duration      int64     `db:"duration" json:"duration"`
	Views         int64     `db:"views" json:"views"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

const (
	VideoTypeEmbedded = "embedded"
	VideoTypeUploaded = "uploaded"
)

// VideoDetail : видео вместе с данными, собираемыми из связанных таблиц
type VideoDetail struct {
	Video
	AuthorNickname string   `db:"author_nickname" json:"author_nickname"`
	LikesCount     int64    `db:"likes_count" json:"likes_count"`
	Tags           []string `json:"tags"`
	Liked          bool     `json:"liked"`
	// pre-signed GET URL превью; заполняется сервисом, в БД не хранится
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// RecordVideo : запись истории просмотров авторизованного пользователя
type RecordVideo struct {
	ID        int64     `db:"id"`
	VideoID   int64     `db:"video_id"`
	UserUUID  string    `db:"user_uuid"`
	CreatedAt time.Time `db:"created_at"`
}
