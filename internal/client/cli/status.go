package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Not authenticated.")
		c.io.Println("Run 'coinkeeper login' to authenticate.")
	} else {
		session, err := c.authService.Session(ctx)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		c.io.Println("Authenticated.")
		c.io.Printf("Email: %s\n", session.Email)
		if session.Name != "" {
			c.io.Printf("Name:  %s\n", session.Name)
		}
	}

	pending, err := c.syncService.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending changes: %w", err)
	}

	c.io.Println()
	if pending == 0 {
		c.io.Println("All local changes are synced.")
	} else {
		c.io.Printf("Pending sync: %d record(s)\n", pending)
	}

	return nil
}
