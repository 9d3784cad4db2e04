package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`

	// Предупреждение для устаревших эндпоинтов (опционально)
	Warning string `json:"warning,omitempty"`

	Message string `json:"message,omitempty" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`

	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Error string `json:"error"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (вне продакшена)
	Details string `json:"details,omitempty"`
}

// TokenResponse представляет ответ с токенами авторизации
type TokenResponse struct {
	// JWT токен для доступа к защищенным эндпоинтам
	AccessToken string `json:"access_token"`

	// JWT токен для обновления access токена
	RefreshToken string `json:"refresh_token"`
}

// Ok оборачивает данные в стандартный конверт {success: true, data: ...}.
func Ok(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}
