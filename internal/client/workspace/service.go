package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/notesphere/notesphere/internal/client/storage"
	"github.com/notesphere/notesphere/internal/models"
)

// Service — Workspace State Store: единственный владелец workspace
// агрегата на время сессии. Каждая мутация применяется целиком и
// синхронно зеркалируется в Persistence Mirror (write-through,
// без debounce). Сервис не потокобезопасен: модель исполнения
// однопоточная, как и у view layer.
type Service struct {
	mirror        storage.WorkspaceStorage
	logger        *slog.Logger
	email         string
	displayName   string
	ws            *models.Workspace
	collaborators []string
	pending       models.Settings
	now           func() time.Time
}

// Open создает store для аутентифицированного пользователя:
// загружает агрегат из mirror, при отсутствии — создает новый
// с приветственной заметкой. Структурно несовместимые сохраненные
// данные трактуются как отсутствующие и молча пересоздаются
// (принятый риск потери данных: версионирования схемы нет).
func Open(ctx context.Context, mirror storage.WorkspaceStorage, logger *slog.Logger, email, displayName string) (*Service, error) {
	s := &Service{
		mirror:      mirror,
		logger:      logger,
		email:       email,
		displayName: displayName,
		now:         time.Now,
	}

	ws, err := mirror.LoadWorkspace(ctx, email)
	switch {
	case err == nil:
		s.ws = ws
	case errors.Is(err, storage.ErrWorkspaceNotFound):
		s.ws = models.NewWorkspace(displayName, email, s.now())
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	case errors.Is(err, storage.ErrWorkspaceInvalid):
		logger.Warn("stored workspace is invalid, reseeding", slog.String("email", email), slog.Any("error", err))
		s.ws = models.NewWorkspace(displayName, email, s.now())
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	// Staging копия: незакоммиченные изменения переживают рестарт
	s.pending = s.ws.Settings
	if s.ws.PendingSettings != nil {
		s.pending = *s.ws.PendingSettings
	}

	return s, nil
}

// Workspace возвращает текущий агрегат.
// Только для чтения: мутации идут через операции store.
func (s *Service) Workspace() *models.Workspace {
	return s.ws
}

// Email возвращает ключ агрегата — email владельца
func (s *Service) Email() string {
	return s.email
}

// persist зеркалирует полный агрегат в durable storage
func (s *Service) persist(ctx context.Context) error {
	s.ws.LastUpdated = s.now()
	if err := s.mirror.SaveWorkspace(ctx, s.email, s.ws); err != nil {
		return fmt.Errorf("failed to persist workspace: %w", err)
	}
	return nil
}

// notify добавляет непрочитанное уведомление в начало списка
func (s *Service) notify(title, message string) {
	n := models.NewNotification(title, message, s.now())
	s.ws.Notifications = append([]models.Notification{n}, s.ws.Notifications...)
}

// CreateNote создает заметку из формы: пустой заголовок — ошибка,
// пустое содержимое заменяется плейсхолдером. Новая заметка
// вставляется в начало активного списка.
func (s *Service) CreateNote(ctx context.Context, form models.NoteForm) (*models.Note, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	content := form.Content
	if content == "" {
		content = models.DefaultNoteContent
	}

	now := s.now()
	note := models.Note{
		ID:         uuid.New().String(),
		Title:      title,
		Content:    content,
		Category:   s.resolveCategory(form.Category),
		Tags:       normalizeTags(form.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
		OwnerEmail: s.email,
	}

	s.ws.Notes = append([]models.Note{note}, s.ws.Notes...)
	s.notify("Note Created", fmt.Sprintf("%q has been created successfully", note.Title))

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	return &note, nil
}

// UpdateNote заменяет изменяемые поля заметки и обновляет UpdatedAt.
// CreatedAt не трогается.
func (s *Service) UpdateNote(ctx context.Context, id string, form models.NoteForm) (*models.Note, error) {
	idx := s.ws.FindNote(id)
	if idx < 0 {
		return nil, ErrNoteNotFound
	}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	note := &s.ws.Notes[idx]
	note.Title = title
	if form.Content != "" {
		note.Content = form.Content
	}
	note.Category = s.resolveCategory(form.Category)
	note.Tags = normalizeTags(form.Tags)
	note.UpdatedAt = s.now()

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	return note, nil
}

// DeleteNote удаляет заметку из активного списка и из избранного
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	idx := s.ws.FindNote(id)
	if idx < 0 {
		return ErrNoteNotFound
	}

	title := s.ws.Notes[idx].Title
	s.ws.Notes = append(s.ws.Notes[:idx], s.ws.Notes[idx+1:]...)
	s.pruneFavorite(id)
	s.notify("Note Deleted", fmt.Sprintf("%q has been deleted", title))

	return s.persist(ctx)
}

// ToggleFavorite переключает членство заметки в избранном.
// Возвращает новое состояние. Двойное применение возвращает
// избранное к исходному.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if s.ws.FindNote(id) < 0 {
		return false, ErrNoteNotFound
	}

	if s.ws.IsFavorite(id) {
		s.pruneFavorite(id)
		return false, s.persist(ctx)
	}

	s.ws.Favorites = append(s.ws.Favorites, id)
	return true, s.persist(ctx)
}

// ArchiveNote переносит заметку из активного списка в архив
func (s *Service) ArchiveNote(ctx context.Context, id string) error {
	idx := s.ws.FindNote(id)
	if idx < 0 {
		return ErrNoteNotFound
	}

	note := s.ws.Notes[idx]
	s.ws.Notes = append(s.ws.Notes[:idx], s.ws.Notes[idx+1:]...)
	s.ws.Archived = append(s.ws.Archived, note)

	return s.persist(ctx)
}

// UnarchiveNote возвращает заметку из архива в активный список,
// все поля сохраняются как были
func (s *Service) UnarchiveNote(ctx context.Context, id string) error {
	idx := s.ws.FindArchived(id)
	if idx < 0 {
		return ErrNoteNotFound
	}

	note := s.ws.Archived[idx]
	s.ws.Archived = append(s.ws.Archived[:idx], s.ws.Archived[idx+1:]...)
	s.ws.Notes = append(s.ws.Notes, note)

	return s.persist(ctx)
}

// DeleteArchived окончательно удаляет заметку из архива
func (s *Service) DeleteArchived(ctx context.Context, id string) error {
	idx := s.ws.FindArchived(id)
	if idx < 0 {
		return ErrNoteNotFound
	}

	s.ws.Archived = append(s.ws.Archived[:idx], s.ws.Archived[idx+1:]...)

	return s.persist(ctx)
}

// AddCategory добавляет категорию. Проверка дубликата регистрозависимая.
func (s *Service) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryRequired
	}
	if s.ws.HasCategory(name) {
		return ErrCategoryExists
	}

	s.ws.Categories = append(s.ws.Categories, name)
	s.notify("Category Created", fmt.Sprintf("%q category has been added", name))

	return s.persist(ctx)
}

// DeleteCategory удаляет категорию и переназначает ее заметки
// на первую оставшуюся категорию (fallback "Work"), чтобы не
// оставлять висячих ссылок.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	found := false
	for i, c := range s.ws.Categories {
		if c == name {
			s.ws.Categories = append(s.ws.Categories[:i], s.ws.Categories[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrCategoryNotFound
	}

	fallback := models.FallbackCategory
	if len(s.ws.Categories) > 0 {
		fallback = s.ws.Categories[0]
	}

	for i := range s.ws.Notes {
		if s.ws.Notes[i].Category == name {
			s.ws.Notes[i].Category = fallback
		}
	}
	for i := range s.ws.Archived {
		if s.ws.Archived[i].Category == name {
			s.ws.Archived[i].Category = fallback
		}
	}

	return s.persist(ctx)
}

// AddTag добавляет тег, нормализуя к нижнему регистру.
// Дубликат без учета регистра отклоняется.
func (s *Service) AddTag(ctx context.Context, name string) (string, error) {
	tag := strings.ToLower(strings.TrimSpace(name))
	if tag == "" {
		return "", ErrTagRequired
	}
	for _, t := range s.ws.Tags {
		if t == tag {
			return "", ErrTagExists
		}
	}

	s.ws.Tags = append(s.ws.Tags, tag)
	s.notify("Tag Created", fmt.Sprintf("%q tag has been added", tag))

	if err := s.persist(ctx); err != nil {
		return "", err
	}

	return tag, nil
}

// DeleteTag удаляет тег и каскадно убирает его из всех заметок
func (s *Service) DeleteTag(ctx context.Context, name string) error {
	tag := strings.ToLower(strings.TrimSpace(name))

	found := false
	for i, t := range s.ws.Tags {
		if t == tag {
			s.ws.Tags = append(s.ws.Tags[:i], s.ws.Tags[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrTagNotFound
	}

	removeTag := func(notes []models.Note) {
		for i := range notes {
			for j, t := range notes[i].Tags {
				if t == tag {
					notes[i].Tags = append(notes[i].Tags[:j], notes[i].Tags[j+1:]...)
					break
				}
			}
		}
	}
	removeTag(s.ws.Notes)
	removeTag(s.ws.Archived)

	return s.persist(ctx)
}

// InviteCollaborator записывает приглашение. Список коллабораторов
// живет только в памяти сессии: транспорта шаринга нет, агрегат
// его не хранит.
func (s *Service) InviteCollaborator(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	for _, c := range s.collaborators {
		if c == email {
			// Идемпотентно: повторное приглашение не дублирует запись,
			// но уведомление отправляется как в первый раз
			s.notify("Collaborator Invited", fmt.Sprintf("Invitation sent to %s", email))
			return s.persist(ctx)
		}
	}

	s.collaborators = append(s.collaborators, email)
	s.notify("Collaborator Invited", fmt.Sprintf("Invitation sent to %s", email))

	return s.persist(ctx)
}

// Collaborators возвращает приглашенных в текущей сессии
func (s *Service) Collaborators() []string {
	return s.collaborators
}

// MarkNotificationRead помечает уведомление прочитанным.
// Переход односторонний и идемпотентный.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	for i := range s.ws.Notifications {
		if s.ws.Notifications[i].ID == id {
			if s.ws.Notifications[i].Read {
				return nil
			}
			s.ws.Notifications[i].Read = true
			return s.persist(ctx)
		}
	}
	return ErrNotificationNotFound
}

// UnreadCount возвращает количество непрочитанных уведомлений
func (s *Service) UnreadCount() int {
	count := 0
	for _, n := range s.ws.Notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// SettingsUpdate — явное перечисление опциональных полей настроек.
// nil поле означает "не менять".
type SettingsUpdate struct {
	EmailNotifications *bool
	AutoSave           *bool
	Theme              *models.Theme
}

// PendingSettings возвращает staging копию настроек
func (s *Service) PendingSettings() models.Settings {
	return s.pending
}

// UpdateSettings применяет частичное изменение к staging копии
// и персистит ее в агрегате: staged изменение должно дожить до
// 'save' в отдельном запуске процесса. Авторитетные настройки
// не меняются до SaveSettings.
func (s *Service) UpdateSettings(ctx context.Context, update SettingsUpdate) error {
	if update.Theme != nil && !update.Theme.Valid() {
		return ErrInvalidTheme
	}

	if update.EmailNotifications != nil {
		s.pending.EmailNotifications = *update.EmailNotifications
	}
	if update.AutoSave != nil {
		s.pending.AutoSave = *update.AutoSave
	}
	if update.Theme != nil {
		s.pending.Theme = *update.Theme
	}

	pending := s.pending
	s.ws.PendingSettings = &pending

	return s.persist(ctx)
}

// SaveSettings коммитит staging копию в авторитетные настройки
func (s *Service) SaveSettings(ctx context.Context) error {
	s.ws.Settings = s.pending
	s.ws.PendingSettings = nil
	s.notify("Settings Saved", "Your preferences have been updated")
	return s.persist(ctx)
}

// ResetSettings восстанавливает дефолтные настройки и коммитит сразу,
// staged изменения отбрасываются
func (s *Service) ResetSettings(ctx context.Context) error {
	s.pending = models.DefaultSettings()
	s.ws.Settings = s.pending
	s.ws.PendingSettings = nil
	return s.persist(ctx)
}

// SaveProfile фиксирует изменение профиля уведомлением.
// Сам профиль принадлежит серверу.
func (s *Service) SaveProfile(ctx context.Context) error {
	s.notify("Profile Updated", "Your profile has been updated successfully")
	return s.persist(ctx)
}

// resolveCategory возвращает категорию для заметки: известное имя
// остается как есть, пустое или неизвестное заменяется первой
// доступной категорией (fallback "Work")
func (s *Service) resolveCategory(category string) string {
	if category != "" && s.ws.HasCategory(category) {
		return category
	}
	if len(s.ws.Categories) > 0 {
		return s.ws.Categories[0]
	}
	return models.FallbackCategory
}

// pruneFavorite убирает id из избранного, если он там есть
func (s *Service) pruneFavorite(id string) {
	for i, f := range s.ws.Favorites {
		if f == id {
			s.ws.Favorites = append(s.ws.Favorites[:i], s.ws.Favorites[i+1:]...)
			return
		}
	}
}

// normalizeTags приводит теги формы к нижнему регистру и убирает
// пустые и повторяющиеся значения
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
