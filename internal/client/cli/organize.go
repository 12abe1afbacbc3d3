package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: notesphere category <add|list|delete> [name]")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("missing category name. Usage: notesphere category add <name>")
		}
		name := strings.Join(args[1:], " ")
		if err := svc.AddCategory(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Category %q added.\n", name)
		return nil

	case "list":
		fmt.Fprintln(c.out, "=== Categories ===")
		fmt.Fprintln(c.out)
		for i, name := range svc.Workspace().Categories {
			fmt.Fprintf(c.out, "%d. %s (%d notes)\n", i+1, name, svc.CategoryNoteCount(name))
		}
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("missing category name. Usage: notesphere category delete <name>")
		}
		name := strings.Join(args[1:], " ")
		if err := svc.DeleteCategory(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Category %q deleted; its notes were reassigned.\n", name)
		return nil

	default:
		return fmt.Errorf("unknown subcommand: %s. Use: add, list, or delete", args[0])
	}
}

func (c *Cli) runTag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: notesphere tag <add|list|delete> [name]")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("missing tag name. Usage: notesphere tag add <name>")
		}
		tag, err := svc.AddTag(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Tag %q added.\n", tag)
		return nil

	case "list":
		fmt.Fprintln(c.out, "=== Tags ===")
		fmt.Fprintln(c.out)
		if len(svc.Workspace().Tags) == 0 {
			fmt.Fprintln(c.out, "No tags yet.")
			return nil
		}
		for i, tag := range svc.Workspace().Tags {
			fmt.Fprintf(c.out, "%d. %s (%d notes)\n", i+1, tag, svc.TagNoteCount(tag))
		}
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("missing tag name. Usage: notesphere tag delete <name>")
		}
		if err := svc.DeleteTag(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Tag %q deleted from the workspace and all notes.\n", strings.ToLower(args[1]))
		return nil

	default:
		return fmt.Errorf("unknown subcommand: %s. Use: add, list, or delete", args[0])
	}
}

func (c *Cli) runShare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing email. Usage: notesphere share <email>")
	}

	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	if err := svc.InviteCollaborator(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Invitation sent to %s\n", args[0])
	fmt.Fprintln(c.out, "Note: invitations last for this session only.")

	return nil
}
