package service

import (
	"context"
	"fmt"
	"shortform-server/config"
	"shortform-server/internal/model"
	"shortform-server/internal/ports"
)

// RecommendationService подбирает видео по пересечению хэштегов и
// истории просмотров. Явного ранжирования у подбора нет: порядок
// кандидатов определяется хранилищем и пропускается через внешний
// Ranker, чтобы стратегию сортировки можно было подменить, не меняя
// контракт.
type RecommendationService struct {
	videoRepository   ports.VideoRepository
	hashtagRepository ports.HashtagRepository
	recordRepository  ports.RecordRepository
	ranker            ports.Ranker
	recentLimit       int
}

func NewRecommendationService(
	videoRepository ports.VideoRepository,
	hashtagRepository ports.HashtagRepository,
	recordRepository ports.RecordRepository,
	ranker ports.Ranker,
	recentLimit int,
) *RecommendationService {
	if ranker == nil {
		ranker = ports.PassThroughRanker
	}
	return &RecommendationService{
		videoRepository:   videoRepository,
		hashtagRepository: hashtagRepository,
		recordRepository:  recordRepository,
		ranker:            ranker,
		recentLimit:       recentLimit,
	}
}

// AllTags : полный каталог тегов для выбора при загрузке видео
func (s *RecommendationService) AllTags(ctx context.Context) ([]model.HashTag, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[RecommendationService] database connection не найден в context")
	}

	return s.hashtagRepository.FindAll(ctx, db)
}

// RelatedTags : id всех тегов, привязанных к видео
func (s *RecommendationService) RelatedTags(ctx context.Context, videoID int64) ([]int64, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[RecommendationService] database connection не найден в context")
	}

	return s.hashtagRepository.FindTagIDsByVideo(ctx, db, videoID)
}

// RelatedVideos : видео, делящие хотя бы один тег с исходным.
// Исходное видео всегда исключается из результата, повторы
// убираются. Кандидаты проходят через ranker.
func (s *RecommendationService) RelatedVideos(ctx context.Context, tagIDs []int64, excludeVideoID int64, page, size int) ([]model.VideoDetail, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[RecommendationService] database connection не найден в context")
	}

	candidateIDs, err := s.hashtagRepository.FindVideoIDsByTags(ctx, db, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("[RecommendationService] %w", err)
	}

	filtered := make([]int64, 0, len(candidateIDs))
	seen := make(map[int64]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		if id == excludeVideoID || seen[id] {
			continue
		}
		seen[id] = true
		filtered = append(filtered, id)
	}

	ranked := s.ranker(filtered)
	if len(ranked) == 0 {
		return []model.VideoDetail{}, nil
	}

	videos, err := s.videoRepository.RetrieveByIDs(ctx, db, ranked, page, size)
	if err != nil {
		return nil, fmt.Errorf("[RecommendationService] %w", err)
	}

	return orderByIDs(videos, ranked), nil
}

// RecentlyViewed : последние просмотренные видео пользователя,
// новые первыми
func (s *RecommendationService) RecentlyViewed(ctx context.Context, userUUID string, limit int) ([]int64, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[RecommendationService] database connection не найден в context")
	}

	return s.recordRepository.RecentVideoIDs(ctx, db, userUUID, 0, limit)
}

// ConcernVideos : подбор для авторизованного зрителя.
// Посев - последние просмотренные видео; их теги объединяются, и по
// объединению подбираются кандидаты тем же путём, что в RelatedVideos.
func (s *RecommendationService) ConcernVideos(ctx context.Context, userUUID string, videoID int64, page, size int) ([]model.VideoDetail, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[RecommendationService] database connection не найден в context")
	}

	recentIDs, err := s.recordRepository.RecentVideoIDs(ctx, db, userUUID, videoID, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("[RecommendationService] %w", err)
	}

	seedIDs := append([]int64{videoID}, recentIDs...)
	tagIDs, err := s.hashtagRepository.FindTagIDsByVideos(ctx, db, seedIDs)
	if err != nil {
		return nil, fmt.Errorf("[RecommendationService] %w", err)
	}

	return s.RelatedVideos(ctx, tagIDs, videoID, page, size)
}

// orderByIDs приводит выборку к порядку списка ids
func orderByIDs(videos []model.VideoDetail, ids []int64) []model.VideoDetail {
	byID := make(map[int64]model.VideoDetail, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]model.VideoDetail, 0, len(videos))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered
}
