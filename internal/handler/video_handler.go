package handler

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"shortform-server/internal/model"
	"shortform-server/internal/model/requestresponse"
	"shortform-server/internal/ports"
	"shortform-server/internal/security"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultPageSize = 5

type VideoHandler struct {
	ports.VideoService
	ports.RecommendationService
}

func NewVideoHandler(
	videoService ports.VideoService,
	recommendationService ports.RecommendationService,
) *VideoHandler {
	return &VideoHandler{
		videoService,
		recommendationService,
	}
}

// Upload godoc
// @Summary Загрузка embedded видео
// @Description Сохраняет видео с тегами; для превью возвращается pre-signed PUT URL
// @Tags Videos
// @Accept json
// @Produce json
// @Param body body requestresponse.UploadVideoRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadVideoResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/videos [post]
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UploadVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Title == "" || req.VideoURL == "" {
		sendErrorResponse(w, 400, "title и video_url обязательны")
		return
	}

	videoID, thumbnailURL, err := h.VideoService.UploadEmbeddedVideo(ctx, &req, claims.UserUUID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.UploadVideoResponse{}
	resp.Response.VideoID = videoID
	resp.Response.ThumbnailUploadURL = thumbnailURL

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Detail godoc
// @Summary Карточка видео (авторизованный зритель)
// @Description Возвращает карточку; просмотр учитывается не чаще раза в окно дедупликации по (видео, IP), просмотр попадает в историю зрителя
// @Tags Videos
// @Produce json
// @Param video_id path int true "ID видео"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VideoDetailResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/videos/{video_id} [get]
func (h *VideoHandler) Detail(w http.ResponseWriter, r *http.Request) {
	viewerUUID := ""
	if claims, err := security.GetClaimsFromContext(r.Context()); err == nil && claims != nil {
		viewerUUID = claims.UserUUID
	}
	h.detail(w, r, viewerUUID)
}

// PublicDetail godoc
// @Summary Карточка видео (анонимный зритель)
// @Description То же, что и авторизованная карточка, но без флага лайка и истории просмотров
// @Tags Videos
// @Produce json
// @Param video_id path int true "ID видео"
// @Success 200 {object} requestresponse.VideoDetailResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /public/videos/{video_id} [get]
func (h *VideoHandler) PublicDetail(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, "")
}

func (h *VideoHandler) detail(w http.ResponseWriter, r *http.Request, viewerUUID string) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	videoID, err := strconv.ParseInt(chi.URLParam(r, "video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный id видео")
		return
	}

	detail, incremented, err := h.VideoService.RetrieveDetail(ctx, videoID, requesterIP(r), viewerUUID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.VideoDetailResponse{}
	resp.Response.Video = detail
	resp.Response.Incremented = incremented

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Main godoc
// @Summary Главная лента
// @Tags Videos
// @Produce json
// @Param page query int false "Номер страницы" default(0)
// @Param size query int false "Размер страницы" default(5)
// @Success 200 {object} requestresponse.VideoListResponse
// @Router /public/videos [get]
func (h *VideoHandler) Main(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	page, size := pageParams(r)

	videos, err := h.VideoService.RetrieveMain(r.Context(), page, size)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	writeVideoList(w, videos, page, size)
}

// MyVideos godoc
// @Summary Видео текущего пользователя
// @Tags Videos
// @Produce json
// @Param page query int false "Номер страницы" default(0)
// @Param size query int false "Размер страницы" default(5)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VideoListResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/videos/my [get]
func (h *VideoHandler) MyVideos(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	page, size := pageParams(r)
	videos, err := h.VideoService.RetrieveMyVideos(ctx, claims.UserUUID, page, size)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	writeVideoList(w, videos, page, size)
}

// Search godoc
// @Summary Поиск видео
// @Tags Videos
// @Produce json
// @Param query query string true "Поисковый запрос"
// @Param page query int false "Номер страницы" default(0)
// @Param size query int false "Размер страницы" default(5)
// @Success 200 {object} requestresponse.VideoListResponse
// @Router /public/videos/search [get]
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	searchQuery := r.URL.Query().Get("query")
	if searchQuery == "" {
		sendErrorResponse(w, 400, "query обязателен")
		return
	}

	page, size := pageParams(r)
	videos, err := h.VideoService.Search(r.Context(), searchQuery, page, size)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	writeVideoList(w, videos, page, size)
}

// Like godoc
// @Summary Переключение лайка
// @Tags Videos
// @Produce json
// @Param video_id path int true "ID видео"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LikeResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/videos/{video_id}/like [post]
func (h *VideoHandler) Like(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный id видео")
		return
	}

	liked, err := h.VideoService.RequestLike(ctx, claims.UserUUID, videoID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.LikeResponse{}
	resp.Response.Liked = liked

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Recent godoc
// @Summary История просмотров
// @Description Id последних просмотренных видео текущего пользователя, новые первыми
// @Tags Recommendations
// @Produce json
// @Param limit query int false "Максимум записей" default(5)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.RecentViewsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/videos/recent [get]
func (h *VideoHandler) Recent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 50 {
		limit = defaultPageSize
	}

	videoIDs, err := h.RecommendationService.RecentlyViewed(ctx, claims.UserUUID, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.RecentViewsResponse{}
	resp.Response.VideoIDs = videoIDs

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Tags godoc
// @Summary Каталог тегов
// @Description Полный список хэштегов для выбора при загрузке видео
// @Tags Recommendations
// @Produce json
// @Success 200 {object} requestresponse.TagListResponse
// @Router /public/hashtags [get]
func (h *VideoHandler) Tags(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tags, err := h.RecommendationService.AllTags(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.TagListResponse{}
	resp.Response.Tags = tags

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Related godoc
// @Summary Похожие видео по тегам
// @Description Видео, делящие хотя бы один тег с исходным; исходное видео в результат не попадает
// @Tags Recommendations
// @Produce json
// @Param video_id path int true "ID видео"
// @Param page query int false "Номер страницы" default(0)
// @Param size query int false "Размер страницы" default(5)
// @Success 200 {object} requestresponse.VideoListResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /public/videos/{video_id}/related [get]
func (h *VideoHandler) Related(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	videoID, err := strconv.ParseInt(chi.URLParam(r, "video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный id видео")
		return
	}

	tagIDs, err := h.RecommendationService.RelatedTags(ctx, videoID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	page, size := pageParams(r)
	videos, err := h.RecommendationService.RelatedVideos(ctx, tagIDs, videoID, page, size)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	writeVideoList(w, videos, page, size)
}

// Concern godoc
// @Summary Рекомендации для авторизованного зрителя
// @Description Подбор по тегам последних просмотренных видео
// @Tags Recommendations
// @Produce json
// @Param video_id path int true "ID текущего видео"
// @Param page query int false "Номер страницы" default(0)
// @Param size query int false "Размер страницы" default(5)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VideoListResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/videos/{video_id}/concern [get]
func (h *VideoHandler) Concern(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный id видео")
		return
	}

	page, size := pageParams(r)
	videos, err := h.RecommendationService.ConcernVideos(ctx, claims.UserUUID, videoID, page, size)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	writeVideoList(w, videos, page, size)
}

func writeVideoList(w http.ResponseWriter, videos []model.VideoDetail, page, size int) {
	resp := requestresponse.VideoListResponse{}
	resp.Response.Videos = videos
	resp.Response.Page = page
	resp.Response.Size = size

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

func pageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 || size > 50 {
		size = defaultPageSize
	}
	return page, size
}

// requesterIP : адрес клиента без порта
func requesterIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
