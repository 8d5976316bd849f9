package repository

import (
	"context"
	"errors"
	"fmt"
	"shortform-server/config"
	"shortform-server/internal/apperrors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CredentialRepository : единственное разделяемое хранилище с TTL.
// Одна инсталляция Redis мультиплексируется под три независимых
// назначения, разнесённых по пространствам ключей:
//   - "RT:<user_uuid>"        -> действующий refresh токен (реестр сессий)
//   - "<raw access token>"    -> маркер "logout" (чёрный список отзыва)
//   - "<video_id>/<ip>"       -> отметка просмотра (дедупликация)
//
// Истечение ключей выполняет сам Redis, система их не опрашивает.
type CredentialRepository struct {
	client *config.RedisClient
}

func NewCredentialRepository(rdb *config.RedisClient) *CredentialRepository {
	return &CredentialRepository{rdb}
}

// Set : записывает значение с заданным TTL, перезаписывая существующее
func (r *CredentialRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	cmd := r.client.Client.Set(ctx, key, value, ttl)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("%w: ошибка записи в Redis: %v", apperrors.ErrStoreUnavailable, err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("%w: неожиданный ответ Redis: %s", apperrors.ErrStoreUnavailable, cmd.Val())
	}

	return nil
}

// Get : возвращает значение по ключу; отсутствие ключа - не ошибка,
// возвращается пустая строка
func (r *CredentialRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // ключа нет либо TTL истёк
	} else if err != nil {
		return "", fmt.Errorf("%w: ошибка чтения из Redis: %v", apperrors.ErrStoreUnavailable, err)
	}

	return val, nil
}

// Delete : удаляет ключ; отсутствие ключа - не ошибка
func (r *CredentialRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: ошибка удаления из Redis: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
