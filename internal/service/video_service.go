package service

import (
	"context"
	"fmt"
	"log"
	"shortform-server/config"
	"shortform-server/internal/model"
	"shortform-server/internal/model/requestresponse"
	"shortform-server/internal/ports"
	"shortform-server/internal/util"
	"time"
)

type VideoService struct {
	videoRepository   ports.VideoRepository
	hashtagRepository ports.HashtagRepository
	likeRepository    ports.LikeRepository
	recordRepository  ports.RecordRepository
	userRepository    ports.UserRepository
	credentialStore   ports.CredentialStore
	storageInterface  ports.S3Storage
	dedupWindow       time.Duration
	presignTTL        time.Duration
}

func NewVideoService(
	videoRepository ports.VideoRepository,
	hashtagRepository ports.HashtagRepository,
	likeRepository ports.LikeRepository,
	recordRepository ports.RecordRepository,
	userRepository ports.UserRepository,
	credentialStore ports.CredentialStore,
	storageInterface ports.S3Storage,
	dedupWindow time.Duration,
	presignTTL time.Duration,
) *VideoService {
	return &VideoService{
		videoRepository:   videoRepository,
		hashtagRepository: hashtagRepository,
		likeRepository:    likeRepository,
		recordRepository:  recordRepository,
		userRepository:    userRepository,
		credentialStore:   credentialStore,
		storageInterface:  storageInterface,
		dedupWindow:       dedupWindow,
		presignTTL:        presignTTL,
	}
}

// fingerprintKey : ключ отметки просмотра в credential store
func fingerprintKey(videoID int64, requesterIP string) string {
	return fmt.Sprintf("%d/%s", videoID, requesterIP)
}

// UploadEmbeddedVideo сохраняет embedded видео вместе с тегами.
// Теги дедуплицируются по имени. Для превью возвращается pre-signed
// PUT URL (пустая строка, если превью не задано).
func (s *VideoService) UploadEmbeddedVideo(ctx context.Context, req *requestresponse.UploadVideoRequest, userUUID string) (int64, string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return 0, "", fmt.Errorf("[VideoService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, userUUID)
	if err != nil {
		return 0, "", fmt.Errorf("[VideoService] пользователь не найден: %w", err)
	}

	var thumbnailPath *string
	var thumbnailUploadURL string
	if req.ThumbnailName != "" {
		path := fmt.Sprintf("thumbnail/%s/%s", user.UUID, req.ThumbnailName)
		thumbnailUploadURL, err = s.storageInterface.GeneratePresignedPutURL(ctx, path, s.presignTTL)
		if err != nil {
			return 0, "", util.LogError("[VideoService] не удалось сгенерировать URL для превью", err)
		}
		thumbnailPath = &path
	}

	video := &model.Video{
		UserUUID:      user.UUID,
		Title:         req.Title,
		Description:   req.Description,
		VideoURL:      req.VideoURL,
		ThumbnailPath: thumbnailPath,
		VideoType:     model.VideoTypeEmbedded,
		IsBlock:       false,
		Duration:      req.Duration,
	}

	videoID, err := s.videoRepository.Save(ctx, db, video)
	if err != nil {
		return 0, "", util.LogError("[VideoService] не удалось сохранить видео", err)
	}

	if len(req.Tags) > 0 {
		tagIDs, err := s.hashtagRepository.CreateOrGetTags(ctx, db, req.Tags)
		if err != nil {
			return 0, "", util.LogError("[VideoService] не удалось создать теги", err)
		}
		if err := s.hashtagRepository.AttachToVideo(ctx, db, videoID, tagIDs); err != nil {
			return 0, "", util.LogError("[VideoService] не удалось привязать теги", err)
		}
	}

	log.Printf("[VideoService] видео %d пользователя %s создано", videoID, user.UUID)
	return videoID, thumbnailUploadURL, nil
}

// RecordView учитывает просмотр с дедупликацией по (видео, IP).
// Возвращает true, если счётчик действительно увеличен. Отметка
// просмотра живёт dedupWindow; пока она есть, повторные просмотры
// с того же IP счётчик не трогают. Последовательность
// "проверить-затем-записать" не атомарна: два одновременных запроса
// могут успеть оба увеличить счётчик. Это принятая best-effort
// граница - цель механизма защита от накрутки, а не точный учёт.
func (s *VideoService) RecordView(ctx context.Context, videoID int64, requesterIP string) (bool, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return false, fmt.Errorf("[VideoService] database connection не найден в context")
	}

	key := fingerprintKey(videoID, requesterIP)
	marker, err := s.credentialStore.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("[VideoService] ошибка чтения отметки просмотра: %w", err)
	}
	if marker != "" {
		return false, nil
	}

	if err := s.videoRepository.UpdateViewCount(ctx, db, videoID); err != nil {
		return false, fmt.Errorf("[VideoService] не удалось увеличить счётчик: %w", err)
	}

	if err := s.credentialStore.Set(ctx, key, "viewed", s.dedupWindow); err != nil {
		// счётчик уже увеличен; отметка не записалась - не причина ронять запрос
		log.Printf("[VideoService] не удалось записать отметку просмотра: %v", err)
	}

	return true, nil
}

// RetrieveDetail возвращает карточку видео.
// Учёт просмотра выполняется до чтения, но его ошибки чтение не
// блокируют: отметки лишь ограничивают инкремент счётчика.
// Для авторизованного зрителя (viewerUUID != "") дополнительно
// проставляется флаг лайка и пишется история просмотров.
func (s *VideoService) RetrieveDetail(ctx context.Context, videoID int64, requesterIP, viewerUUID string) (*model.VideoDetail, bool, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, false, fmt.Errorf("[VideoService] database connection не найден в context")
	}

	incremented, err := s.RecordView(ctx, videoID, requesterIP)
	if err != nil {
		log.Printf("[VideoService] ошибка учёта просмотра: %v", err)
	}

	detail, err := s.videoRepository.RetrieveDetail(ctx, db, videoID)
	if err != nil {
		return nil, false, fmt.Errorf("[VideoService] %w", err)
	}

	tags, err := s.hashtagRepository.FindTagNamesByVideo(ctx, db, videoID)
	if err != nil {
		return nil, false, fmt.Errorf("[VideoService] %w", err)
	}
	detail.Tags = tags
	detail.Liked = false

	if detail.ThumbnailPath != nil && *detail.ThumbnailPath != "" {
		thumbnailURL, err := s.storageInterface.GeneratePresignedGetURL(ctx, *detail.ThumbnailPath, s.presignTTL)
		if err != nil {
			log.Printf("[VideoService] не удалось сгенерировать URL превью: %v", err)
		} else {
			detail.ThumbnailURL = thumbnailURL
		}
	}

	if viewerUUID != "" {
		liked, err := s.likeRepository.Exists(ctx, db, viewerUUID, videoID)
		if err != nil {
			log.Printf("[VideoService] ошибка проверки лайка: %v", err)
		}
		detail.Liked = liked

		if err := s.recordRepository.Save(ctx, db, videoID, viewerUUID); err != nil {
			log.Printf("[VideoService] не удалось записать историю просмотра: %v", err)
		}
	}

	return detail, incremented, nil
}

// RequestLike переключает лайк; возвращает итоговое состояние
func (s *VideoService) RequestLike(ctx context.Context, userUUID string, videoID int64) (bool, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return false, fmt.Errorf("[VideoService] database connection не найден в context")
	}

	if _, err := s.userRepository.FindByUUID(ctx, db, userUUID); err != nil {
		return false, fmt.Errorf("[VideoService] пользователь не найден: %w", err)
	}
	if _, err := s.videoRepository.FindByID(ctx, db, videoID); err != nil {
		return false, fmt.Errorf("[VideoService] видео не найдено: %w", err)
	}

	liked, err := s.likeRepository.Exists(ctx, db, userUUID, videoID)
	if err != nil {
		return false, fmt.Errorf("[VideoService] ошибка проверки лайка: %w", err)
	}

	if liked {
		if err := s.likeRepository.Delete(ctx, db, userUUID, videoID); err != nil {
			return false, fmt.Errorf("[VideoService] %w", err)
		}
		return false, nil
	}

	if err := s.likeRepository.Insert(ctx, db, userUUID, videoID); err != nil {
		return false, fmt.Errorf("[VideoService] %w", err)
	}
	return true, nil
}

// RetrieveMain : страница главной ленты
func (s *VideoService) RetrieveMain(ctx context.Context, page, size int) ([]model.VideoDetail, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[VideoService] database connection не найден в context")
	}

	return s.videoRepository.RetrieveMain(ctx, db, page, size)
}

// RetrieveMyVideos : страница видео текущего пользователя
func (s *VideoService) RetrieveMyVideos(ctx context.Context, userUUID string, page, size int) ([]model.VideoDetail, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[VideoService] database connection не найден в context")
	}

	return s.videoRepository.RetrieveMyVideos(ctx, db, userUUID, page, size)
}

// Search : поиск видео по запросу
func (s *VideoService) Search(ctx context.Context, query string, page, size int) ([]model.VideoDetail, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[VideoService] database connection не найден в context")
	}

	return s.videoRepository.Search(ctx, db, query, page, size)
}
