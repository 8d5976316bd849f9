package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"shortform-server/internal/apperrors"
	"shortform-server/internal/model/requestresponse"
	"shortform-server/internal/ports"
	"shortform-server/internal/security"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// SignUp godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя; повторный email отклоняется
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.SignUpRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SignUpResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или слабый пароль"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже зарегистрирован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [post]
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	created, err := h.UserService.SignUp(ctx, req.Email, req.Nickname, req.Password)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.SignUpResponse{}
	resp.Response.Email = created.Email

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetProfile godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль; пользователь видит только собственный профиль
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	userUUID := chi.URLParam(r, "uuid")
	if claims.UserUUID != userUUID {
		sendErrorResponse(w, 403, "доступ запрещён")
		return
	}

	user, err := h.UserService.GetProfile(ctx, userUUID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.UserResponse{}
	resp.Data.UUID = user.UUID
	resp.Data.Email = user.Email
	resp.Data.Nickname = user.Nickname

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}

// statusFromError сопоставляет канонические ошибки сервисов с HTTP статусами
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrExpiredToken),
		errors.Is(err, apperrors.ErrMalformedToken),
		errors.Is(err, apperrors.ErrMissingClaims):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage возвращает текст канонической ошибки без внутренних деталей
func clientMessage(err error) string {
	for _, canonical := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrConflict,
		apperrors.ErrInvalidCredentials,
		apperrors.ErrUnauthorized,
		apperrors.ErrExpiredToken,
		apperrors.ErrMalformedToken,
		apperrors.ErrMissingClaims,
		apperrors.ErrBadRequest,
		apperrors.ErrStoreUnavailable,
	} {
		if errors.Is(err, canonical) {
			return canonical.Error()
		}
	}
	return "внутренняя ошибка сервера"
}
