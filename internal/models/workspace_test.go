package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace_Seed(t *testing.T) {
	now := time.Now()
	ws := NewWorkspace("Alice Smith", "alice@example.com", now)

	// Ровно одна приветственная заметка и одно уведомление
	require.Len(t, ws.Notes, 1)
	require.Len(t, ws.Notifications, 1)
	assert.Equal(t, []string{"Work", "Personal", "Study"}, ws.Categories)

	note := ws.Notes[0]
	assert.Equal(t, "Welcome Alice Smith!", note.Title)
	assert.Equal(t, "Personal", note.Category)
	assert.Equal(t, "alice@example.com", note.OwnerEmail)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)

	notif := ws.Notifications[0]
	assert.False(t, notif.Read)
	assert.Equal(t, "Welcome Alice Smith!", notif.Title)

	assert.Empty(t, ws.Favorites)
	assert.Empty(t, ws.Archived)
	assert.Empty(t, ws.Tags)
	assert.Equal(t, DefaultSettings(), ws.Settings)
}

func TestNewWorkspace_EmptyName(t *testing.T) {
	ws := NewWorkspace("", "x@x.com", time.Now())
	assert.Equal(t, "Welcome User!", ws.Notes[0].Title)
}

func TestNoteForm_ToggleTag(t *testing.T) {
	form := &NoteForm{}

	form.ToggleTag("Work")
	assert.Equal(t, []string{"work"}, form.Tags)
	assert.True(t, form.HasTag("WORK"))

	// Повторный toggle убирает тег
	form.ToggleTag("work")
	assert.Empty(t, form.Tags)

	// Пустые значения игнорируются
	form.ToggleTag("   ")
	assert.Empty(t, form.Tags)
}

func TestNoteForm_ToggleTag_PreservesOthers(t *testing.T) {
	form := &NoteForm{Tags: []string{"alpha", "beta", "gamma"}}
	form.ToggleTag("beta")
	assert.Equal(t, []string{"alpha", "gamma"}, form.Tags)
}

func TestTheme_Valid(t *testing.T) {
	tests := []struct {
		theme Theme
		want  bool
	}{
		{ThemeLight, true},
		{ThemeDark, true},
		{ThemeAuto, true},
		{Theme("solarized"), false},
		{Theme(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.theme.Valid(), "theme %q", tt.theme)
	}
}

func TestWorkspace_Lookups(t *testing.T) {
	ws := NewWorkspace("Bob", "bob@x.com", time.Now())
	id := ws.Notes[0].ID

	assert.Equal(t, 0, ws.FindNote(id))
	assert.Equal(t, -1, ws.FindNote("missing"))
	assert.Equal(t, -1, ws.FindArchived(id))

	assert.True(t, ws.HasCategory("Work"))
	assert.False(t, ws.HasCategory("work")) // регистрозависимо

	assert.False(t, ws.IsFavorite(id))
	ws.Favorites = append(ws.Favorites, id)
	assert.True(t, ws.IsFavorite(id))
}
