package api

// Response общая обертка ответа сервера: полезная нагрузка всегда лежит в поле data
type Response[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	UserID     string `json:"userId"`     // логин пользователя
	Password   string `json:"password"`   // пароль в открытом виде (только по TLS)
	RememberMe bool   `json:"rememberMe"` // выдать долгоживущий refresh token
}

// TokenPair пара токенов, выдаваемая при логине
type TokenPair struct {
	AccessToken  string `json:"accessToken"`  // JWT access token
	RefreshToken string `json:"refreshToken"` // refresh token
}

// ReissueRequest запрос на перевыпуск access token
type ReissueRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ReissueData содержимое data в ответе на перевыпуск.
// Refresh token сервер не ротирует.
type ReissueData struct {
	AccessToken string `json:"accessToken"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
