package api

import "time"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email"`          // email пользователя
	Password string `json:"password"`       // пароль в открытом виде (передается по TLS)
	Name     string `json:"name,omitempty"` // опциональное отображаемое имя
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo публичные данные пользователя в ответах авторизации
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse представляет ответ на успешную регистрацию или вход
type AuthResponse struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"` // bearer credential для последующих запросов
}

// SuccessResponse представляет ответ без полезной нагрузки
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
