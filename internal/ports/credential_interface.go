package ports

import (
	"context"
	"time"
)

// CredentialStore : key-value хранилище с TTL на ключ (Redis слой).
// Используется как реестр refresh токенов, чёрный список access
// токенов и кэш отметок просмотра. Операции атомарны по одному ключу,
// мультиключевые транзакции не предполагаются.
type CredentialStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
