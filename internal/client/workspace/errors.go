package workspace

import "errors"

// Workspace mutation errors.
// Операции над исчезнувшим идентификатором сообщают об этом явно:
// тихий no-op прячет баги вызывающего кода.
var (
	ErrTitleRequired        = errors.New("note title is required")
	ErrNoteNotFound         = errors.New("note not found")
	ErrCategoryRequired     = errors.New("category name is required")
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTagRequired          = errors.New("tag name is required")
	ErrTagExists            = errors.New("tag already exists")
	ErrTagNotFound          = errors.New("tag not found")
	ErrEmailRequired        = errors.New("email is required")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidTheme         = errors.New("invalid theme")
	ErrInvalidImport        = errors.New("invalid import file format")
)
