package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/notesphere/notesphere/internal/client/workspace"
	"github.com/notesphere/notesphere/internal/models"
)

func (c *Cli) runNotifications(ctx context.Context, args []string) error {
	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "read" {
		if len(args) < 2 {
			return fmt.Errorf("missing notification id. Usage: notesphere notifications read <id>")
		}
		if err := svc.MarkNotificationRead(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Notification marked as read.")
		return nil
	}

	notifications := svc.Workspace().Notifications

	fmt.Fprintf(c.out, "=== Notifications (%d unread) ===\n", svc.UnreadCount())
	fmt.Fprintln(c.out)

	if len(notifications) == 0 {
		fmt.Fprintln(c.out, "No notifications.")
		return nil
	}

	now := time.Now()
	for i, n := range notifications {
		marker := "•"
		if n.Read {
			marker = " "
		}
		fmt.Fprintf(c.out, "%d. %s %s — %s\n", i+1, marker, n.Title, workspace.TimeAgo(now, n.CreatedAt))
		fmt.Fprintf(c.out, "   ID: %s\n", n.ID)
		fmt.Fprintf(c.out, "   %s\n", n.Message)
		fmt.Fprintln(c.out)
	}

	return nil
}

func (c *Cli) runSettings(ctx context.Context, args []string) error {
	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		c.printSettings(svc.Workspace().Settings, svc.PendingSettings())
		return nil
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: notesphere settings set <emailNotifications|autoSave|theme> <value>")
		}
		update, err := parseSettingsUpdate(args[1], args[2])
		if err != nil {
			return err
		}
		if err := svc.UpdateSettings(ctx, update); err != nil {
			return err
		}
		// Staging: изменение применится к настройкам после 'settings save'
		fmt.Fprintln(c.out, "Setting staged. Run 'notesphere settings save' to apply.")
		return nil

	case "save":
		if err := svc.SaveSettings(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Settings saved.")
		return nil

	case "reset":
		if err := svc.ResetSettings(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Settings reset to defaults.")
		return nil

	default:
		return fmt.Errorf("unknown subcommand: %s. Use: set, save, or reset", args[0])
	}
}

func (c *Cli) printSettings(current, pending models.Settings) {
	fmt.Fprintln(c.out, "=== Settings ===")
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Email notifications: %t\n", current.EmailNotifications)
	fmt.Fprintf(c.out, "Auto-save:           %t\n", current.AutoSave)
	fmt.Fprintf(c.out, "Theme:               %s\n", current.Theme)

	if pending != current {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Staged (unsaved) changes:")
		fmt.Fprintf(c.out, "Email notifications: %t\n", pending.EmailNotifications)
		fmt.Fprintf(c.out, "Auto-save:           %t\n", pending.AutoSave)
		fmt.Fprintf(c.out, "Theme:               %s\n", pending.Theme)
	}
}

// parseSettingsUpdate транслирует пару ключ/значение в частичный апдейт
func parseSettingsUpdate(key, value string) (workspace.SettingsUpdate, error) {
	switch key {
	case "emailNotifications":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return workspace.SettingsUpdate{}, fmt.Errorf("invalid boolean: %s", value)
		}
		return workspace.SettingsUpdate{EmailNotifications: &b}, nil
	case "autoSave":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return workspace.SettingsUpdate{}, fmt.Errorf("invalid boolean: %s", value)
		}
		return workspace.SettingsUpdate{AutoSave: &b}, nil
	case "theme":
		theme := models.Theme(value)
		return workspace.SettingsUpdate{Theme: &theme}, nil
	default:
		return workspace.SettingsUpdate{}, fmt.Errorf("unknown setting: %s. Use: emailNotifications, autoSave, or theme", key)
	}
}
