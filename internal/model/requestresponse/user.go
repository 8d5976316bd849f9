package requestresponse

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid login or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data struct {
		UUID     string `json:"uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
		Email    string `json:"email" example:"user@example.com"`
		Nickname string `json:"nickname" example:"shortform_fan"`
	} `json:"data"`
}
