package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/notesphere/notesphere/internal/client/workspace"
	"github.com/notesphere/notesphere/internal/models"
)

func (c *Cli) runAdd(ctx context.Context) error {
	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "=== New Note ===")
	fmt.Fprintln(c.out)

	title, err := c.readInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}

	content, err := c.readInput("Content (empty for placeholder): ")
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	fmt.Fprintf(c.out, "Categories: %s\n", strings.Join(svc.Workspace().Categories, ", "))
	category, err := c.readInput("Category (empty for default): ")
	if err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}

	tagsLine, err := c.readInput("Tags (comma separated, optional): ")
	if err != nil {
		return fmt.Errorf("failed to read tags: %w", err)
	}

	note, err := svc.CreateNote(ctx, models.NoteForm{
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     splitTags(tagsLine),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Note created: %s\n", note.ID)

	return nil
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	var notes []models.Note
	header := "Notes"
	if len(args) > 0 {
		switch args[0] {
		case "archived":
			notes = svc.Workspace().Archived
			header = "Archived Notes"
		case "favorites":
			notes = svc.FavoriteNotes()
			header = "Favorite Notes"
		default:
			return fmt.Errorf("unknown list filter: %s. Use: archived or favorites", args[0])
		}
	} else {
		notes = svc.Workspace().Notes
	}

	fmt.Fprintf(c.out, "=== %s ===\n", header)
	fmt.Fprintln(c.out)

	if len(notes) == 0 {
		fmt.Fprintln(c.out, "No notes found.")
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Use 'notesphere add' to create your first note.")
		return nil
	}

	fmt.Fprintf(c.out, "Found %d note(s):\n", len(notes))
	fmt.Fprintln(c.out)

	now := time.Now()
	for i, note := range notes {
		c.printNoteSummary(i+1, note, svc.Workspace().IsFavorite(note.ID), now)
	}

	return nil
}

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notesphere get <id>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	ws := svc.Workspace()
	idx := ws.FindNote(args[0])
	archived := false
	var note models.Note
	if idx >= 0 {
		note = ws.Notes[idx]
	} else {
		idx = ws.FindArchived(args[0])
		if idx < 0 {
			return workspace.ErrNoteNotFound
		}
		note = ws.Archived[idx]
		archived = true
	}

	fmt.Fprintf(c.out, "=== %s ===\n", note.Title)
	fmt.Fprintf(c.out, "ID:       %s\n", note.ID)
	fmt.Fprintf(c.out, "Category: %s\n", note.Category)
	if len(note.Tags) > 0 {
		fmt.Fprintf(c.out, "Tags:     %s\n", strings.Join(note.Tags, ", "))
	}
	fmt.Fprintf(c.out, "Created:  %s\n", note.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(c.out, "Updated:  %s (%s)\n", note.UpdatedAt.Format(time.RFC1123), workspace.TimeAgo(time.Now(), note.UpdatedAt))
	if ws.IsFavorite(note.ID) {
		fmt.Fprintln(c.out, "Favorite: yes")
	}
	if archived {
		fmt.Fprintln(c.out, "Archived: yes")
	}
	if note.ImportedAt != nil {
		fmt.Fprintf(c.out, "Imported: %s\n", note.ImportedAt.Format(time.RFC1123))
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, note.Content)

	return nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notesphere edit <id>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	idx := svc.Workspace().FindNote(args[0])
	if idx < 0 {
		return workspace.ErrNoteNotFound
	}
	current := svc.Workspace().Notes[idx]

	fmt.Fprintf(c.out, "=== Edit: %s ===\n", current.Title)
	fmt.Fprintln(c.out, "Empty input keeps the current value.")
	fmt.Fprintln(c.out)

	title, err := c.readInput(fmt.Sprintf("Title [%s]: ", current.Title))
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		title = current.Title
	}

	content, err := c.readInput("Content: ")
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if content == "" {
		content = current.Content
	}

	category, err := c.readInput(fmt.Sprintf("Category [%s]: ", current.Category))
	if err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}
	if category == "" {
		category = current.Category
	}

	tagsLine, err := c.readInput(fmt.Sprintf("Tags [%s]: ", strings.Join(current.Tags, ", ")))
	if err != nil {
		return fmt.Errorf("failed to read tags: %w", err)
	}
	tags := current.Tags
	if tagsLine != "" {
		tags = splitTags(tagsLine)
	}

	if _, err := svc.UpdateNote(ctx, current.ID, models.NoteForm{
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     tags,
	}); err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Note updated.")

	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notesphere delete <id>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	if err := svc.DeleteNote(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Note deleted.")
	return nil
}

func (c *Cli) runFavorite(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notesphere favorite <id>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	on, err := svc.ToggleFavorite(ctx, args[0])
	if err != nil {
		return err
	}

	if on {
		fmt.Fprintln(c.out, "Added to favorites.")
	} else {
		fmt.Fprintln(c.out, "Removed from favorites.")
	}
	return nil
}

func (c *Cli) runArchive(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notesphere archive <id>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	if err := svc.ArchiveNote(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Note archived.")
	return nil
}

func (c *Cli) runUnarchive(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notesphere unarchive <id>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	if err := svc.UnarchiveNote(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Note restored from archive.")
	return nil
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing query. Usage: notesphere search <query>")
	}
	query := strings.Join(args, " ")

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	results := svc.Search(query)

	fmt.Fprintf(c.out, "=== Search: %q ===\n", query)
	fmt.Fprintln(c.out)

	if len(results) == 0 {
		fmt.Fprintln(c.out, "No matching notes.")
		return nil
	}

	fmt.Fprintf(c.out, "Found %d note(s):\n", len(results))
	fmt.Fprintln(c.out)

	now := time.Now()
	for i, note := range results {
		c.printNoteSummary(i+1, note, svc.Workspace().IsFavorite(note.ID), now)
	}

	return nil
}

// printNoteSummary печатает однострочную карточку заметки в списках
func (c *Cli) printNoteSummary(n int, note models.Note, favorite bool, now time.Time) {
	marker := " "
	if favorite {
		marker = "*"
	}
	fmt.Fprintf(c.out, "%d. %s %s\n", n, marker, note.Title)
	fmt.Fprintf(c.out, "   ID:       %s\n", note.ID)
	fmt.Fprintf(c.out, "   Category: %s\n", note.Category)
	if len(note.Tags) > 0 {
		fmt.Fprintf(c.out, "   Tags:     %s\n", strings.Join(note.Tags, ", "))
	}
	fmt.Fprintf(c.out, "   Updated:  %s\n", workspace.TimeAgo(now, note.UpdatedAt))
	fmt.Fprintln(c.out)
}

// splitTags разбирает введенную через запятую строку тегов
func splitTags(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
