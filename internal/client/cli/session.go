package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notesphere/notesphere/internal/client/auth"
	"github.com/notesphere/notesphere/internal/client/storage"
)

func (c *Cli) runRegister(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Registration ===")
	fmt.Fprintln(c.out)

	fullName, err := c.readInput("Full name: ")
	if err != nil {
		return fmt.Errorf("failed to read full name: %w", err)
	}

	email, err := c.readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.readPassword("Password (min 6 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Registering user...")

	session, err := c.authService.Signup(ctx, fullName, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	if session.DemoMode {
		fmt.Fprintln(c.out, "Server is unreachable; started OFFLINE DEMO session instead.")
	} else {
		fmt.Fprintln(c.out, "Registration successful!")
	}
	fmt.Fprintf(c.out, "Logged in as: %s <%s>\n", session.FullName, session.Email)

	return nil
}

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Login ===")
	fmt.Fprintln(c.out)

	email, err := c.readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	session, err := c.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	if session.DemoMode {
		fmt.Fprintln(c.out, "Server is unreachable; started OFFLINE DEMO session instead.")
		fmt.Fprintln(c.out, "Changes will be stored locally only.")
	} else {
		fmt.Fprintln(c.out, "Login successful!")
	}
	fmt.Fprintf(c.out, "Logged in as: %s\n", session.Email)

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Fprintln(c.out, "Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to logout: %w", err)
	}

	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	session, err := c.authService.CurrentSession(ctx)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSessionNotFound):
			fmt.Fprintln(c.out, "Status: not authenticated")
			return nil
		case errors.Is(err, auth.ErrSessionExpired):
			fmt.Fprintln(c.out, "Status: session expired, please login again")
			return nil
		}
		return err
	}

	if session.DemoMode {
		fmt.Fprintln(c.out, "Status: OFFLINE DEMO MODE")
	} else {
		fmt.Fprintln(c.out, "Status: authenticated")
		fmt.Fprintf(c.out, "Expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC1123))
	}
	fmt.Fprintf(c.out, "User:  %s\n", session.FullName)
	fmt.Fprintf(c.out, "Email: %s\n", session.Email)

	return nil
}

func (c *Cli) runProfile(ctx context.Context) error {
	user, err := c.authService.Profile(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrDemoSession) {
			fmt.Fprintln(c.out, "Profile is not available in offline demo mode.")
			return nil
		}
		return err
	}

	fmt.Fprintln(c.out, "=== Profile ===")
	fmt.Fprintf(c.out, "ID:    %s\n", user.ID)
	fmt.Fprintf(c.out, "Name:  %s\n", user.FullName)
	fmt.Fprintf(c.out, "Email: %s\n", user.Email)

	return nil
}
