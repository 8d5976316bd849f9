package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"shortform-server/internal/model/requestresponse"
	"shortform-server/internal/ports"
	"shortform-server/internal/security"
	"strings"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Получение пары access/refresh токенов по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.LoginResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Me godoc
// @Summary Получение данных текущего пользователя
// @Description Возвращает UUID и email пользователя, который авторизован в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = claims.UserUUID
	resp.Response.Email = claims.Email

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Reissue godoc
// @Summary Ротация токенов
// @Description Обновляет пару токенов по access токену (может быть просрочен) и действующему refresh токену
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ReissueRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ReissueResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Refresh токен не найден или не совпадает"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/reissue [post]
func (h *AuthenticationHandler) Reissue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	accessToken, ok := bearerToken(r)
	if !ok {
		sendErrorResponse(w, 401, "пустой или неверный заголовок Authorization")
		return
	}

	var req requestresponse.ReissueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "неверный JSON")
		return
	}

	tokensPair, err := h.AuthenticationService.Reissue(ctx, accessToken, req.RefreshToken)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.ReissueResponse{}
	resp.Response.AccessToken = tokensPair.AccessToken
	resp.Response.RefreshToken = tokensPair.RefreshToken

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение авторизованной сессии
// @Description Удаляет refresh запись и заносит access токен в чёрный список до его естественного истечения
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/logout [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	accessToken, ok := bearerToken(r)
	if !ok {
		sendErrorResponse(w, 400, "токен не указан")
		return
	}

	if err := h.AuthenticationService.Logout(ctx, accessToken); err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.LogoutResponse{}
	resp.Response.Revoked = true

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// SignOut godoc
// @Summary Полное удаление аккаунта
// @Description Удаляет запись пользователя; в отличие от logout это необратимое удаление аккаунта
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SignOutResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/auth/signout [delete]
func (h *AuthenticationHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.AuthenticationService.SignOut(ctx, claims.UserUUID); err != nil {
		log.Println(err)
		sendErrorResponse(w, statusFromError(err), clientMessage(err))
		return
	}

	resp := requestresponse.SignOutResponse{}
	resp.Response.Deleted = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
