package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/notesphere/notesphere/internal/client/auth"
	"github.com/notesphere/notesphere/internal/client/storage"
	"github.com/notesphere/notesphere/internal/client/workspace"
)

// Cli — view layer: разбирает аргументы команды, читает ввод,
// транслирует один intent в операцию сервиса и печатает результат.
// Вся доменная логика живет в сервисах, не здесь.
type Cli struct {
	authService *auth.Service
	mirror      storage.WorkspaceStorage
	in          io.Reader
	out         io.Writer
	reader      *bufio.Reader
}

// New creates a CLI bound to stdin/stdout
func New(authService *auth.Service, mirror storage.WorkspaceStorage) *Cli {
	return &Cli{
		authService: authService,
		mirror:      mirror,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// openWorkspace возвращает workspace store текущей сессии.
// Demo сессия явно помечается баннером в выводе.
func (c *Cli) openWorkspace(ctx context.Context) (*workspace.Service, *storage.Session, error) {
	session, err := c.authService.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, nil, fmt.Errorf("not authenticated. Please run 'notesphere login' first")
		}
		return nil, nil, err
	}

	if session.DemoMode {
		fmt.Fprintln(c.out, "=== OFFLINE DEMO MODE ===")
		fmt.Fprintln(c.out, "Server is unreachable; changes are stored locally only.")
		fmt.Fprintln(c.out)
	}

	svc, err := workspace.Open(ctx, c.mirror, newLogger(), session.Email, session.FullName)
	if err != nil {
		return nil, nil, err
	}

	return svc, session, nil
}

// PrintUsage prints command reference
func PrintUsage() {
	fmt.Println("NoteSphere Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  notesphere [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:5001)")
	fmt.Println("  --db PATH        Path to local database (default: notesphere-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                      Register new user")
	fmt.Println("  login                         Login to server")
	fmt.Println("  logout                        Logout and clear session")
	fmt.Println("  status                        Show session status")
	fmt.Println("  profile                       Show server profile")
	fmt.Println()
	fmt.Println("  add                           Create a note (interactive)")
	fmt.Println("  list [archived|favorites]     List notes")
	fmt.Println("  get <id>                      Show full note")
	fmt.Println("  edit <id>                     Edit a note (interactive)")
	fmt.Println("  delete <id>                   Delete a note")
	fmt.Println("  favorite <id>                 Toggle favorite")
	fmt.Println("  archive <id>                  Move note to archive")
	fmt.Println("  unarchive <id>                Restore note from archive")
	fmt.Println("  search <query>                Search title and content")
	fmt.Println()
	fmt.Println("  category add|list|delete      Manage categories")
	fmt.Println("  tag add|list|delete           Manage tags")
	fmt.Println("  share <email>                 Invite a collaborator")
	fmt.Println()
	fmt.Println("  notifications [read <id>]     List or mark notifications")
	fmt.Println("  settings [set|save|reset]     Show or change settings")
	fmt.Println("  export [path]                 Export notes to JSON file")
	fmt.Println("  import <path>                 Import notes from JSON file")
	fmt.Println("  stats                         Show workspace statistics")
	fmt.Println("  calendar                      Show monthly note calendar")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  notesphere register")
	fmt.Println("  notesphere add")
	fmt.Println("  notesphere list favorites")
	fmt.Println("  notesphere search meeting")
	fmt.Println("  notesphere category add Projects")
	fmt.Println("  notesphere --server https://example.com login")
}

// readInput читает строку из ввода.
// Один bufio.Reader на весь Cli: новый reader на каждый вызов
// терял бы уже забуференный ввод.
func (c *Cli) readInput(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if c.reader == nil {
		c.reader = bufio.NewReader(c.in)
	}
	input, err := c.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword читает пароль без отображения на экране.
// Вне терминала (тесты, pipe) деградирует в readInput.
func (c *Cli) readPassword(prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.out, prompt)
		passwordBytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return string(passwordBytes), nil
	}
	return c.readInput(prompt)
}
