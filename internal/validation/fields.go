package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate — общий инстанс, кеширует метаданные структур
var validate = validator.New(validator.WithRequiredStructEnabled())

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
	// MaxFullNameLen максимальная длина имени
	MaxFullNameLen = 128
)

// ValidateEmail проверяет что email непустой и имеет валидный формат
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidateFullName проверяет отображаемое имя пользователя
func ValidateFullName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxFullNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxFullNameLen)
	}
	return nil
}

// ValidateStruct валидирует структуру по validate-тегам
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
