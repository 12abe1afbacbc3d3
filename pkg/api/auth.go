package api

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	FullName string `json:"fullName"` // полное имя пользователя
	Email    string `json:"email"`    // email, используется как логин
	Password string `json:"password"` // пароль в открытом виде (только поверх TLS)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload представляет публичную часть учетной записи (без password hash)
type UserPayload struct {
	ID       string `json:"id"`       // UUID пользователя
	FullName string `json:"fullName"` // полное имя
	Email    string `json:"email"`    // email
}

// AuthResponse представляет успешный ответ signup/login
type AuthResponse struct {
	Message string      `json:"message,omitempty"` // сообщение (только при регистрации)
	Token   string      `json:"token"`             // подписанный bearer token
	User    UserPayload `json:"user"`              // публичная запись пользователя
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Message string `json:"message"` // описание ошибки
}
