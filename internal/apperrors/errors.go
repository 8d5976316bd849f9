package apperrors

import "errors"

// Канонические ошибки уровня сервисов. Хэндлеры сопоставляют их
// с HTTP статусами через errors.Is, сервисы оборачивают через %w.
var (
	// ErrNotFound : пользователь или видео не найдены
	ErrNotFound = errors.New("не найдено")

	// ErrConflict : регистрация с уже занятым email
	ErrConflict = errors.New("email уже зарегистрирован")

	// ErrInvalidCredentials : неверная пара логин/пароль
	ErrInvalidCredentials = errors.New("неверный логин или пароль")

	// ErrExpiredToken : срок действия access токена истёк
	ErrExpiredToken = errors.New("срок действия токена истёк")

	// ErrMalformedToken : подпись или структура токена невалидны
	ErrMalformedToken = errors.New("невалидный токен")

	// ErrMissingClaims : в токене отсутствует идентификатор субъекта
	ErrMissingClaims = errors.New("в токене отсутствуют обязательные claims")

	// ErrBadRequest : refresh токен не совпадает с сохранённым или запись отсутствует
	ErrBadRequest = errors.New("некорректный запрос")

	// ErrUnauthorized : access токен отозван (находится в чёрном списке)
	ErrUnauthorized = errors.New("токен отозван")

	// ErrStoreUnavailable : инфраструктурная ошибка хранилища (Redis/БД недоступны).
	// Не смешивается с ErrBadRequest: клиенту отдаётся 500/503, а не 400.
	ErrStoreUnavailable = errors.New("хранилище недоступно")
)
