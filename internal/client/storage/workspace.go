package storage

import (
	"context"

	"github.com/notesphere/notesphere/internal/models"
)

// WorkspaceStorage defines the Persistence Mirror contract:
// write-through копия workspace агрегата, ключ — email пользователя.
// Никакого merge: последний писатель побеждает.
type WorkspaceStorage interface {
	// SaveWorkspace writes the full serialized aggregate for the user
	SaveWorkspace(ctx context.Context, email string, ws *models.Workspace) error

	// LoadWorkspace reads the aggregate for the user.
	// Returns ErrWorkspaceNotFound when nothing is stored and
	// ErrWorkspaceInvalid when the stored value cannot be decoded.
	LoadWorkspace(ctx context.Context, email string) (*models.Workspace, error)
}
