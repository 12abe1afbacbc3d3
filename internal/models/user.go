package models

import "time"

// User представляет учетную запись в Credential Store
type User struct {
	ID           string     `json:"id"`                   // UUID пользователя
	FullName     string     `json:"full_name"`            // полное имя
	Email        string     `json:"email"`                // уникальный email (логин)
	PasswordHash string     `json:"-"`                    // bcrypt хеш пароля, наружу не отдается
	CreatedAt    time.Time  `json:"created_at"`           // время регистрации
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
}
