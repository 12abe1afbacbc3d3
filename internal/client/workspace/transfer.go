package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/notesphere/notesphere/internal/models"
)

// Export — снимок данных пользователя для выгрузки в файл.
// Архив и настройки в снимок не входят, формат совместим
// с импортом обратно.
type Export struct {
	Notes      []models.Note `json:"notes"`
	Categories []string      `json:"categories"`
	ExportedBy string        `json:"exportedBy"`
	ExportedAt string        `json:"exportedAt"`
	TotalNotes int           `json:"totalNotes"`
}

// BuildExport собирает снимок активных заметок и категорий.
// Чистая операция: агрегат не меняется, уведомление не создается.
func (s *Service) BuildExport() Export {
	return Export{
		Notes:      s.ws.Notes,
		Categories: s.ws.Categories,
		ExportedBy: s.email,
		ExportedAt: s.now().Format("2006-01-02T15:04:05Z07:00"),
		TotalNotes: len(s.ws.Notes),
	}
}

// NotifyExported фиксирует успешную выгрузку уведомлением.
// Вызывается после того как файл действительно записан.
func (s *Service) NotifyExported(ctx context.Context, count int) error {
	s.notify("Data Exported", fmt.Sprintf("%d notes exported successfully", count))
	return s.persist(ctx)
}

// importFile — принимаемые формы файла импорта: либо плоский массив
// заметок, либо объект экспорта с полем notes
type importFile struct {
	Notes []models.Note `json:"notes"`
}

// ImportNotes разбирает файл импорта и добавляет заметки в конец
// активного списка. Каждая заметка получает свежий id, владельца
// и отметку импорта; дедупликации нет — импорт дважды дает две копии.
// Возвращает число импортированных заметок.
func (s *Service) ImportNotes(ctx context.Context, raw []byte) (int, error) {
	var notes []models.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		// Не массив — пробуем объект экспорта
		var file importFile
		if err := json.Unmarshal(raw, &file); err != nil || file.Notes == nil {
			return 0, ErrInvalidImport
		}
		notes = file.Notes
	}

	now := s.now()
	imported := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		note := n
		note.ID = uuid.New().String()
		note.OwnerEmail = s.email
		note.ImportedAt = &now
		note.Tags = normalizeTags(note.Tags)

		if note.Content == "" {
			note.Content = models.DefaultNoteContent
		}
		if !s.ws.HasCategory(note.Category) {
			note.Category = s.resolveCategory("")
		}

		// Входящие временные метки сохраняются, если они есть
		if note.CreatedAt.IsZero() {
			note.CreatedAt = now
		}
		if note.UpdatedAt.IsZero() {
			note.UpdatedAt = note.CreatedAt
		}

		imported = append(imported, note)
	}

	s.ws.Notes = append(s.ws.Notes, imported...)
	s.notify("Notes Imported", fmt.Sprintf("%d notes imported successfully", len(imported)))

	if err := s.persist(ctx); err != nil {
		return 0, err
	}

	return len(imported), nil
}
