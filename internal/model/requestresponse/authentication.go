package requestresponse

// SignUpRequest : тело запроса регистрации
type SignUpRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Nickname string `json:"nickname" example:"shortform_fan"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// SignUpResponse : успешный ответ на регистрацию
type SignUpResponse struct {
	Response struct {
		Email string `json:"email" example:"user@example.com"`
	} `json:"response"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// LoginResponse : ответ на успешную аутентификацию
type LoginResponse struct {
	Response struct {
		AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
		RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
	} `json:"response"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Email    string `json:"email" example:"user@example.com"`
	} `json:"response"`
}

// ReissueRequest : запрос на обновление пары токенов
type ReissueRequest struct {
	RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
}

// ReissueResponse : ответ на успешную ротацию токенов
type ReissueResponse struct {
	Response struct {
		AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
		RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
	} `json:"response"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Response struct {
		Revoked bool `json:"revoked" example:"true"`
	} `json:"response"`
}

// SignOutResponse : ответ на удаление аккаунта
type SignOutResponse struct {
	Response struct {
		Deleted bool `json:"deleted" example:"true"`
	} `json:"response"`
}
