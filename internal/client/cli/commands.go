package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Run dispatches a single command. Unknown commands print usage.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.runProfile(ctx)
	case "add":
		return c.runAdd(ctx)
	case "list":
		return c.runList(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "favorite":
		return c.runFavorite(ctx, args)
	case "archive":
		return c.runArchive(ctx, args)
	case "unarchive":
		return c.runUnarchive(ctx, args)
	case "search":
		return c.runSearch(ctx, args)
	case "category":
		return c.runCategory(ctx, args)
	case "tag":
		return c.runTag(ctx, args)
	case "share":
		return c.runShare(ctx, args)
	case "notifications":
		return c.runNotifications(ctx, args)
	case "settings":
		return c.runSettings(ctx, args)
	case "export":
		return c.runExport(ctx, args)
	case "import":
		return c.runImport(ctx, args)
	case "stats":
		return c.runStats(ctx)
	case "calendar":
		return c.runCalendar(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// newLogger возвращает тихий логгер: весь пользовательский вывод
// идет через c.out, структурные логи клиенту не нужны
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
