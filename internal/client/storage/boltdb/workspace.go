package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/notesphere/notesphere/internal/client/storage"
	"github.com/notesphere/notesphere/internal/models"
)

// SaveWorkspace writes the full serialized aggregate keyed by user email.
// Перезаписывает целиком: версионирования схемы и merge нет.
func (s *Storage) SaveWorkspace(ctx context.Context, email string, ws *models.Workspace) error {
	if email == "" {
		return fmt.Errorf("email key cannot be empty")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWorkspaces)
		if bucket == nil {
			return fmt.Errorf("workspaces bucket not found")
		}

		data, err := json.Marshal(ws)
		if err != nil {
			return fmt.Errorf("failed to marshal workspace: %w", err)
		}

		if err := bucket.Put([]byte(email), data); err != nil {
			return fmt.Errorf("failed to save workspace: %w", err)
		}

		return nil
	})
}

// LoadWorkspace reads the aggregate for the user
func (s *Storage) LoadWorkspace(ctx context.Context, email string) (*models.Workspace, error) {
	var ws *models.Workspace

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWorkspaces)
		if bucket == nil {
			return fmt.Errorf("workspaces bucket not found")
		}

		data := bucket.Get([]byte(email))
		if data == nil {
			return storage.ErrWorkspaceNotFound
		}

		ws = &models.Workspace{}
		if err := json.Unmarshal(data, ws); err != nil {
			// Структурно несовместимые данные: вызывающий код пересоздаст агрегат
			return fmt.Errorf("%w: %v", storage.ErrWorkspaceInvalid, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return ws, nil
}
