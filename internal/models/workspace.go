package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultNoteContent подставляется вместо пустого содержимого заметки
	DefaultNoteContent = "New note content..."

	// FallbackCategory используется когда целевая категория недоступна
	FallbackCategory = "Work"
)

// DefaultCategories возвращает стартовый набор категорий нового пользователя
func DefaultCategories() []string {
	return []string{"Work", "Personal", "Study"}
}

// Theme определяет тему оформления
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Valid проверяет что значение темы входит в enum
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}

// Settings представляет пользовательские настройки workspace
type Settings struct {
	EmailNotifications bool  `json:"emailNotifications"`
	AutoSave           bool  `json:"autoSave"`
	Theme              Theme `json:"theme"`
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: false,
		AutoSave:           true,
		Theme:              ThemeLight,
	}
}

// Note представляет одну заметку workspace
type Note struct {
	ID         string     `json:"id"`                   // UUID заметки
	Title      string     `json:"title"`                // заголовок, обязателен при создании
	Content    string     `json:"content"`              // текст заметки
	Category   string     `json:"category"`             // имя категории из Workspace.Categories
	Tags       []string   `json:"tags,omitempty"`       // теги в нижнем регистре
	CreatedAt  time.Time  `json:"createdAt"`            // время создания
	UpdatedAt  time.Time  `json:"updatedAt"`            // время последнего изменения
	OwnerEmail string     `json:"userId,omitempty"`     // email владельца
	ImportedAt *time.Time `json:"importedAt,omitempty"` // выставляется только при импорте
}

// NoteForm представляет заполняемую форму заметки до сохранения.
// Поля с нулевыми значениями трактуются операциями store явно:
// пустой Title — ошибка валидации, пустой Content заменяется
// на DefaultNoteContent, пустая Category — на первую доступную.
type NoteForm struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// ToggleTag добавляет или убирает тег в черновике заметки.
// Работает только с формой, ничего не персистит.
func (f *NoteForm) ToggleTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return
	}
	for i, t := range f.Tags {
		if t == tag {
			f.Tags = append(f.Tags[:i], f.Tags[i+1:]...)
			return
		}
	}
	f.Tags = append(f.Tags, tag)
}

// HasTag сообщает присутствует ли тег в черновике
func (f *NoteForm) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Notification представляет уведомление workspace
type Notification struct {
	ID        string    `json:"id"`        // UUID уведомления
	Title     string    `json:"title"`     // заголовок
	Message   string    `json:"message"`   // текст
	Read      bool      `json:"read"`      // переход unread -> read необратим
	CreatedAt time.Time `json:"timestamp"` // время создания
}

// NewNotification создает непрочитанное уведомление
func NewNotification(title, message string, now time.Time) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Read:      false,
		CreatedAt: now,
	}
}

// Workspace представляет полный агрегат пользователя —
// единицу персистентности Persistence Mirror, ключ — email владельца.
type Workspace struct {
	Notes         []Note         `json:"notes"`
	Categories    []string       `json:"categories"`
	Tags          []string       `json:"tags"`
	Favorites     []string       `json:"favorites"`
	Archived      []Note         `json:"archived"`
	Notifications []Notification `json:"notifications"`
	Settings      Settings       `json:"settings"`
	// PendingSettings — незакоммиченная staging копия настроек.
	// nil когда staged изменений нет. Хранится в агрегате, чтобы
	// изменение пережило выход из процесса до 'settings save'.
	PendingSettings *Settings `json:"pendingSettings,omitempty"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// NewWorkspace создает агрегат нового пользователя:
// стартовые категории, одна приветственная заметка и одно уведомление.
func NewWorkspace(displayName, email string, now time.Time) *Workspace {
	if displayName == "" {
		displayName = "User"
	}

	welcome := Note{
		ID:    uuid.New().String(),
		Title: fmt.Sprintf("Welcome %s!", displayName),
		Content: fmt.Sprintf("Hi %s,\n\nWelcome to NoteSphere! This is your first note. You can:\n\n"+
			"- Create new notes\n- Organize with categories\n- Mark favorites with stars\n"+
			"- Archive old notes\n- Search through all your content\n\n"+
			"Start building your knowledge base today!", displayName),
		Category:   "Personal",
		CreatedAt:  now,
		UpdatedAt:  now,
		OwnerEmail: email,
	}

	return &Workspace{
		Notes:      []Note{welcome},
		Categories: DefaultCategories(),
		Tags:       []string{},
		Favorites:  []string{},
		Archived:   []Note{},
		Notifications: []Notification{
			NewNotification(
				fmt.Sprintf("Welcome %s!", displayName),
				"Your NoteSphere account is ready. Start creating notes!",
				now,
			),
		},
		Settings:    DefaultSettings(),
		LastUpdated: now,
	}
}

// FindNote возвращает индекс заметки в активном списке, -1 если нет
func (w *Workspace) FindNote(id string) int {
	for i := range w.Notes {
		if w.Notes[i].ID == id {
			return i
		}
	}
	return -1
}

// FindArchived возвращает индекс заметки в архиве, -1 если нет
func (w *Workspace) FindArchived(id string) int {
	for i := range w.Archived {
		if w.Archived[i].ID == id {
			return i
		}
	}
	return -1
}

// HasCategory проверяет наличие категории (сравнение регистрозависимое)
func (w *Workspace) HasCategory(name string) bool {
	for _, c := range w.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// IsFavorite проверяет членство заметки в избранном
func (w *Workspace) IsFavorite(id string) bool {
	for _, f := range w.Favorites {
		if f == id {
			return true
		}
	}
	return false
}
