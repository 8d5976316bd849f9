package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

type ViewConfig struct {
	// окно дедупликации просмотров, в секундах
	DedupWindow int `yaml:"dedup_window"`
	// размер страницы истории просмотров для рекомендаций
	RecentLimit int `yaml:"recent_limit"`
}

type TTL struct {
	S3PresignedURL int `yaml:"s3_presigned_url"`
}
