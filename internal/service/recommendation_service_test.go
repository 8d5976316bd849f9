package service_test

import (
	"shortform-server/internal/model"
	"shortform-server/internal/ports"
	"shortform-server/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== HELPERS =====

func newTestRecommendationService(ranker ports.Ranker) (*service.RecommendationService, *videoServiceMocks) {
	m := &videoServiceMocks{
		videoRepo:   new(MockVideoRepository),
		hashtagRepo: new(MockHashtagRepository),
		recordRepo:  new(MockRecordRepository),
	}

	svc := service.NewRecommendationService(
		m.videoRepo,
		m.hashtagRepo,
		m.recordRepo,
		ranker,
		5,
	)

	return svc, m
}

func details(ids ...int64) []model.VideoDetail {
	result := make([]model.VideoDetail, 0, len(ids))
	for _, id := range ids {
		result = append(result, *videoDetail(id))
	}
	return result
}

func resultIDs(videos []model.VideoDetail) []int64 {
	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}

// ===== TESTS =====

// 0. Каталог тегов отдаётся как есть
func TestAllTags(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.hashtagRepo.On("FindAll", ctx, mock.Anything).
		Return([]model.HashTag{{ID: 1, TagName: "funny"}, {ID: 2, TagName: "cats"}}, nil)

	tags, err := svc.AllTags(ctx)

	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "funny", tags[0].TagName)
}

// 1. Теги видео отдаются как есть
func TestRelatedTags(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.hashtagRepo.On("FindTagIDsByVideo", ctx, mock.Anything, int64(42)).
		Return([]int64{1, 2}, nil)

	tagIDs, err := svc.RelatedTags(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, tagIDs)
}

// 2. Сценарий пересечения тегов: видео 42 с тегами {a,b}, видео 43 с
// {b,c}, видео 44 с {d}. Кандидаты по тегам 42 - само 42 и 43;
// в результате только 43, видео 44 не попадает
func TestRelatedVideos_TagIntersection(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.hashtagRepo.On("FindVideoIDsByTags", ctx, mock.Anything, []int64{1, 2}).
		Return([]int64{42, 43}, nil)
	m.videoRepo.On("RetrieveByIDs", ctx, mock.Anything, []int64{43}, 0, 5).
		Return(details(43), nil)

	videos, err := svc.RelatedVideos(ctx, []int64{1, 2}, 42, 0, 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{43}, resultIDs(videos))
}

// 3. Исходное видео никогда не попадает в результат, повторы убираются
func TestRelatedVideos_ExcludesSourceAndDuplicates(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.hashtagRepo.On("FindVideoIDsByTags", ctx, mock.Anything, []int64{1}).
		Return([]int64{42, 43, 43, 44, 42}, nil)
	m.videoRepo.On("RetrieveByIDs", ctx, mock.Anything, []int64{43, 44}, 0, 5).
		Return(details(43, 44), nil)

	videos, err := svc.RelatedVideos(ctx, []int64{1}, 42, 0, 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{43, 44}, resultIDs(videos))
	assert.NotContains(t, resultIDs(videos), int64(42))
}

// 4. Без кандидатов возвращается пустой список, выборка не выполняется
func TestRelatedVideos_NoCandidates(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.hashtagRepo.On("FindVideoIDsByTags", ctx, mock.Anything, []int64{1}).
		Return([]int64{42}, nil)

	videos, err := svc.RelatedVideos(ctx, []int64{1}, 42, 0, 5)

	require.NoError(t, err)
	assert.Empty(t, videos)
	m.videoRepo.AssertNotCalled(t, "RetrieveByIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 5. Подключённый ranker задаёт порядок результата
func TestRelatedVideos_RankerHook(t *testing.T) {
	reverse := func(ids []int64) []int64 {
		out := make([]int64, len(ids))
		for i, id := range ids {
			out[len(ids)-1-i] = id
		}
		return out
	}

	svc, m := newTestRecommendationService(reverse)
	ctx := dbContext()

	m.hashtagRepo.On("FindVideoIDsByTags", ctx, mock.Anything, []int64{1}).
		Return([]int64{43, 44, 45}, nil)
	// выборка приходит в порядке хранилища, результат - в порядке ranker
	m.videoRepo.On("RetrieveByIDs", ctx, mock.Anything, []int64{45, 44, 43}, 0, 5).
		Return(details(43, 44, 45), nil)

	videos, err := svc.RelatedVideos(ctx, []int64{1}, 42, 0, 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{45, 44, 43}, resultIDs(videos))
}

// 6. История просмотров отдаётся новые-первыми, как вернуло хранилище
func TestRecentlyViewed(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.recordRepo.On("RecentVideoIDs", ctx, mock.Anything, "viewer", int64(0), 10).
		Return([]int64{44, 43}, nil)

	ids, err := svc.RecentlyViewed(ctx, "viewer", 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{44, 43}, ids)
}

// 7. Подбор для авторизованного зрителя: посев из истории, объединение
// тегов, текущее видео исключено
func TestConcernVideos(t *testing.T) {
	svc, m := newTestRecommendationService(nil)
	ctx := dbContext()

	m.recordRepo.On("RecentVideoIDs", ctx, mock.Anything, "viewer", int64(42), 5).
		Return([]int64{40, 41}, nil)
	m.hashtagRepo.On("FindTagIDsByVideos", ctx, mock.Anything, []int64{42, 40, 41}).
		Return([]int64{1, 2, 3}, nil)
	m.hashtagRepo.On("FindVideoIDsByTags", ctx, mock.Anything, []int64{1, 2, 3}).
		Return([]int64{42, 43, 44}, nil)
	m.videoRepo.On("RetrieveByIDs", ctx, mock.Anything, []int64{43, 44}, 0, 5).
		Return(details(43, 44), nil)

	videos, err := svc.ConcernVideos(ctx, "viewer", 42, 0, 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{43, 44}, resultIDs(videos))
	assert.NotContains(t, resultIDs(videos), int64(42))
}
