package workspace

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesphere/notesphere/internal/client/storage"
	"github.com/notesphere/notesphere/internal/models"
)

// memMirror - in-memory WorkspaceStorage
type memMirror struct {
	workspaces map[string][]byte
	saveErr    error
	loadErr    error
	saves      int
}

func newMemMirror() *memMirror {
	return &memMirror{workspaces: make(map[string][]byte)}
}

func (m *memMirror) SaveWorkspace(ctx context.Context, email string, ws *models.Workspace) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	m.workspaces[email] = data
	m.saves++
	return nil
}

func (m *memMirror) LoadWorkspace(ctx context.Context, email string) (*models.Workspace, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	data, ok := m.workspaces[email]
	if !ok {
		return nil, storage.ErrWorkspaceNotFound
	}
	var ws models.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, storage.ErrWorkspaceInvalid
	}
	return &ws, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestService(t *testing.T) (*Service, *memMirror) {
	t.Helper()
	mirror := newMemMirror()
	svc, err := Open(context.Background(), mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	return svc, mirror
}

func TestOpen_SeedsNewWorkspace(t *testing.T) {
	svc, mirror := openTestService(t)

	ws := svc.Workspace()
	require.Len(t, ws.Notes, 1)
	assert.Equal(t, "Welcome Alice!", ws.Notes[0].Title)
	assert.Equal(t, "Personal", ws.Notes[0].Category)
	assert.Equal(t, []string{"Work", "Personal", "Study"}, ws.Categories)
	require.Len(t, ws.Notifications, 1)
	assert.False(t, ws.Notifications[0].Read)
	assert.Equal(t, models.DefaultSettings(), ws.Settings)

	// Засеянный агрегат сразу зеркалируется
	assert.Equal(t, 1, mirror.saves)
}

func TestOpen_LoadsExistingWorkspace(t *testing.T) {
	mirror := newMemMirror()
	ctx := context.Background()

	first, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	_, err = first.CreateNote(ctx, models.NoteForm{Title: "Persisted"})
	require.NoError(t, err)

	second, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	// Повторного засева нет, заметки на месте
	assert.Len(t, second.Workspace().Notes, 2)
	assert.Equal(t, "Persisted", second.Workspace().Notes[0].Title)
}

func TestOpen_InvalidStoredWorkspace_Reseeds(t *testing.T) {
	mirror := newMemMirror()
	mirror.workspaces["alice@example.com"] = []byte("{not json")

	svc, err := Open(context.Background(), mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Len(t, svc.Workspace().Notes, 1)
	assert.Equal(t, "Welcome Alice!", svc.Workspace().Notes[0].Title)
}

func TestCreateNote_Defaults(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "  My Note  "})
	require.NoError(t, err)

	assert.Equal(t, "My Note", note.Title)
	assert.Equal(t, models.DefaultNoteContent, note.Content)
	assert.Equal(t, "Work", note.Category)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "alice@example.com", note.OwnerEmail)

	// Новая заметка встает в начало списка
	assert.Equal(t, note.ID, svc.Workspace().Notes[0].ID)

	// Уведомление о создании
	assert.Equal(t, "Note Created", svc.Workspace().Notifications[0].Title)
	assert.Equal(t, `"My Note" has been created successfully`, svc.Workspace().Notifications[0].Message)
}

func TestCreateNote_BlankTitle(t *testing.T) {
	svc, mirror := openTestService(t)
	savesBefore := mirror.saves

	_, err := svc.CreateNote(context.Background(), models.NoteForm{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)
	// Отклоненная форма ничего не персистит
	assert.Equal(t, savesBefore, mirror.saves)
}

func TestCreateNote_UnknownCategory_Fallback(t *testing.T) {
	svc, _ := openTestService(t)

	note, err := svc.CreateNote(context.Background(), models.NoteForm{Title: "N", Category: "Nonexistent"})
	require.NoError(t, err)
	assert.Equal(t, "Work", note.Category)
}

func TestCreateNote_TagNormalization(t *testing.T) {
	svc, _ := openTestService(t)

	note, err := svc.CreateNote(context.Background(), models.NoteForm{
		Title: "N",
		Tags:  []string{"Go", "  go ", "TESTING", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "testing"}, note.Tags)
}

func TestUpdateNote(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "Before"})
	require.NoError(t, err)
	created := note.CreatedAt

	time.Sleep(time.Millisecond)
	updated, err := svc.UpdateNote(ctx, note.ID, models.NoteForm{Title: "After", Content: "body"})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestUpdateNote_NotFound(t *testing.T) {
	svc, _ := openTestService(t)

	_, err := svc.UpdateNote(context.Background(), "missing-id", models.NoteForm{Title: "X"})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDeleteNote_PrunesFavorites(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "Starred"})
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, note.ID)
	require.NoError(t, err)
	require.True(t, svc.Workspace().IsFavorite(note.ID))

	require.NoError(t, svc.DeleteNote(ctx, note.ID))

	assert.Equal(t, -1, svc.Workspace().FindNote(note.ID))
	assert.False(t, svc.Workspace().IsFavorite(note.ID))
	assert.Equal(t, "Note Deleted", svc.Workspace().Notifications[0].Title)
	assert.Equal(t, `"Starred" has been deleted`, svc.Workspace().Notifications[0].Message)
}

func TestDeleteNote_NotFound(t *testing.T) {
	svc, _ := openTestService(t)
	assert.ErrorIs(t, svc.DeleteNote(context.Background(), "missing-id"), ErrNoteNotFound)
}

func TestToggleFavorite_Involution(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "N"})
	require.NoError(t, err)

	on, err := svc.ToggleFavorite(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := svc.ToggleFavorite(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, svc.Workspace().Favorites)
}

func TestToggleFavorite_NotFound(t *testing.T) {
	svc, _ := openTestService(t)
	_, err := svc.ToggleFavorite(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestArchive_RoundTrip(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "N"})
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveNote(ctx, note.ID))
	assert.Equal(t, -1, svc.Workspace().FindNote(note.ID))
	assert.GreaterOrEqual(t, svc.Workspace().FindArchived(note.ID), 0)

	// Повторное архивирование — заметки нет в активных
	assert.ErrorIs(t, svc.ArchiveNote(ctx, note.ID), ErrNoteNotFound)

	require.NoError(t, svc.UnarchiveNote(ctx, note.ID))
	idx := svc.Workspace().FindNote(note.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "N", svc.Workspace().Notes[idx].Title)
	assert.Equal(t, -1, svc.Workspace().FindArchived(note.ID))
}

func TestArchive_KeepsFavoriteMembership(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "N"})
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, note.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveNote(ctx, note.ID))
	// Членство в избранном архивирование не трогает
	assert.True(t, svc.Workspace().IsFavorite(note.ID))
}

func TestDeleteArchived(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "N"})
	require.NoError(t, err)
	require.NoError(t, svc.ArchiveNote(ctx, note.ID))

	require.NoError(t, svc.DeleteArchived(ctx, note.ID))
	assert.Equal(t, -1, svc.Workspace().FindArchived(note.ID))

	assert.ErrorIs(t, svc.DeleteArchived(ctx, note.ID), ErrNoteNotFound)
}

func TestAddCategory(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddCategory(ctx, "Projects"))
	assert.True(t, svc.Workspace().HasCategory("Projects"))
	assert.Equal(t, `"Projects" category has been added`, svc.Workspace().Notifications[0].Message)

	assert.ErrorIs(t, svc.AddCategory(ctx, "Projects"), ErrCategoryExists)
	// Сравнение регистрозависимое: другой регистр — другая категория
	assert.NoError(t, svc.AddCategory(ctx, "projects"))

	assert.ErrorIs(t, svc.AddCategory(ctx, "  "), ErrCategoryRequired)
}

func TestDeleteCategory_ReassignsNotes(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "Study note", Category: "Study"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, "Study"))
	assert.False(t, svc.Workspace().HasCategory("Study"))

	idx := svc.Workspace().FindNote(note.ID)
	require.GreaterOrEqual(t, idx, 0)
	// Переназначение на первую оставшуюся категорию
	assert.Equal(t, "Work", svc.Workspace().Notes[idx].Category)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, "Study"), ErrCategoryNotFound)
}

func TestAddTag_Normalization(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	tag, err := svc.AddTag(ctx, "  GoLang ")
	require.NoError(t, err)
	assert.Equal(t, "golang", tag)
	assert.Equal(t, `"golang" tag has been added`, svc.Workspace().Notifications[0].Message)

	_, err = svc.AddTag(ctx, "GOLANG")
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = svc.AddTag(ctx, "   ")
	assert.ErrorIs(t, err, ErrTagRequired)
}

func TestDeleteTag_CascadesToNotes(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	_, err := svc.AddTag(ctx, "go")
	require.NoError(t, err)
	note, err := svc.CreateNote(ctx, models.NoteForm{Title: "N", Tags: []string{"go", "testing"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTag(ctx, "go"))

	idx := svc.Workspace().FindNote(note.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, []string{"testing"}, svc.Workspace().Notes[idx].Tags)

	assert.ErrorIs(t, svc.DeleteTag(ctx, "go"), ErrTagNotFound)
}

func TestInviteCollaborator(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.InviteCollaborator(ctx, "bob@example.com"))
	assert.Equal(t, []string{"bob@example.com"}, svc.Collaborators())
	assert.Equal(t, "Invitation sent to bob@example.com", svc.Workspace().Notifications[0].Message)

	// Повторное приглашение не дублирует запись
	require.NoError(t, svc.InviteCollaborator(ctx, "bob@example.com"))
	assert.Len(t, svc.Collaborators(), 1)

	assert.ErrorIs(t, svc.InviteCollaborator(ctx, ""), ErrEmailRequired)
}

func TestCollaborators_SessionScoped(t *testing.T) {
	mirror := newMemMirror()
	ctx := context.Background()

	first, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	require.NoError(t, first.InviteCollaborator(ctx, "bob@example.com"))

	// Коллабораторы не переживают перезапуск
	second, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Empty(t, second.Collaborators())
}

func TestMarkNotificationRead(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	id := svc.Workspace().Notifications[0].ID
	require.Equal(t, 1, svc.UnreadCount())

	require.NoError(t, svc.MarkNotificationRead(ctx, id))
	assert.Equal(t, 0, svc.UnreadCount())

	// Идемпотентно
	require.NoError(t, svc.MarkNotificationRead(ctx, id))
	assert.True(t, svc.Workspace().Notifications[0].Read)

	assert.ErrorIs(t, svc.MarkNotificationRead(ctx, "missing-id"), ErrNotificationNotFound)
}

func TestSettings_StagingAndCommit(t *testing.T) {
	svc, mirror := openTestService(t)
	ctx := context.Background()

	dark := models.ThemeDark
	enabled := true
	require.NoError(t, svc.UpdateSettings(ctx, SettingsUpdate{Theme: &dark, EmailNotifications: &enabled}))

	// Staging не трогает авторитетные настройки
	assert.Equal(t, models.ThemeLight, svc.Workspace().Settings.Theme)
	assert.Equal(t, models.ThemeDark, svc.PendingSettings().Theme)

	require.NoError(t, svc.SaveSettings(ctx))
	assert.Equal(t, models.ThemeDark, svc.Workspace().Settings.Theme)
	assert.True(t, svc.Workspace().Settings.EmailNotifications)
	assert.Equal(t, "Your preferences have been updated", svc.Workspace().Notifications[0].Message)

	// Коммит персистится
	reopened, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, reopened.Workspace().Settings.Theme)
}

func TestSettings_InvalidTheme(t *testing.T) {
	svc, mirror := openTestService(t)
	saves := mirror.saves

	bad := models.Theme("neon")
	assert.ErrorIs(t, svc.UpdateSettings(context.Background(), SettingsUpdate{Theme: &bad}), ErrInvalidTheme)
	// Отклоненное изменение не персистится
	assert.Equal(t, saves, mirror.saves)
}

func TestSettings_StagedChangeSurvivesReopen(t *testing.T) {
	// 'set' и 'save' приходят из разных запусков процесса:
	// staging копия обязана пережить пересоздание сервиса
	mirror := newMemMirror()
	ctx := context.Background()

	first, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)

	dark := models.ThemeDark
	require.NoError(t, first.UpdateSettings(ctx, SettingsUpdate{Theme: &dark}))
	// Еще не закоммичено
	assert.Equal(t, models.ThemeLight, first.Workspace().Settings.Theme)

	second, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, second.PendingSettings().Theme)
	assert.Equal(t, models.ThemeLight, second.Workspace().Settings.Theme)

	require.NoError(t, second.SaveSettings(ctx))

	third, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, third.Workspace().Settings.Theme)
	// Коммит очищает staging копию
	assert.Nil(t, third.Workspace().PendingSettings)
	assert.Equal(t, models.ThemeDark, third.PendingSettings().Theme)
}

func TestResetSettings(t *testing.T) {
	svc, _ := openTestService(t)
	ctx := context.Background()

	dark := models.ThemeDark
	require.NoError(t, svc.UpdateSettings(ctx, SettingsUpdate{Theme: &dark}))
	require.NoError(t, svc.SaveSettings(ctx))

	notifications := len(svc.Workspace().Notifications)
	require.NoError(t, svc.ResetSettings(ctx))

	assert.Equal(t, models.DefaultSettings(), svc.Workspace().Settings)
	assert.Equal(t, models.DefaultSettings(), svc.PendingSettings())
	assert.Nil(t, svc.Workspace().PendingSettings)
	// Сброс без уведомления
	assert.Len(t, svc.Workspace().Notifications, notifications)
}

func TestSaveProfile_Notifies(t *testing.T) {
	svc, _ := openTestService(t)

	require.NoError(t, svc.SaveProfile(context.Background()))
	assert.Equal(t, "Profile Updated", svc.Workspace().Notifications[0].Title)
	assert.Equal(t, "Your profile has been updated successfully", svc.Workspace().Notifications[0].Message)
}

func TestMutations_Persist(t *testing.T) {
	svc, mirror := openTestService(t)
	ctx := context.Background()

	saves := mirror.saves
	_, err := svc.CreateNote(ctx, models.NoteForm{Title: "N"})
	require.NoError(t, err)
	assert.Equal(t, saves+1, mirror.saves)

	// Рестарт видит мутацию
	reopened, err := Open(ctx, mirror, testLogger(), "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "N", reopened.Workspace().Notes[0].Title)
}
