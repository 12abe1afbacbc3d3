package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/notesphere/notesphere/internal/client/workspace"
)

func (c *Cli) runExport(ctx context.Context, args []string) error {
	svc, session, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("notesphere-export-%s.json", time.Now().Format("2006-01-02"))
	if len(args) > 0 {
		path = args[0]
	}

	export := svc.BuildExport()
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	// Уведомление только после успешной записи файла
	if err := svc.NotifyExported(ctx, export.TotalNotes); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Exported %d note(s) for %s to %s\n", export.TotalNotes, session.Email, path)

	return nil
}

func (c *Cli) runImport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing file path. Usage: notesphere import <path>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	count, err := svc.ImportNotes(ctx, raw)
	if err != nil {
		if errors.Is(err, workspace.ErrInvalidImport) {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return err
	}

	fmt.Fprintf(c.out, "Imported %d note(s).\n", count)

	return nil
}
