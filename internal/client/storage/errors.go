package storage

import "errors"

// Client storage errors
var (
	// ErrSessionNotFound indicates that no login session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrWorkspaceNotFound indicates that no workspace aggregate is stored for the user
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrWorkspaceInvalid indicates that the stored aggregate could not be decoded.
	// Вызывающий код трактует это как отсутствие данных и пересоздает
	// агрегат с нуля (принятый риск потери данных, миграций схемы нет).
	ErrWorkspaceInvalid = errors.New("workspace data is invalid")
)
