package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	auth, err := c.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Logged in as %s\n", auth.Email)

	// Локальные изменения, накопленные до входа, можно доставить сразу
	pending, err := c.syncService.PendingCount(ctx)
	if err == nil && pending > 0 {
		c.io.Printf("You have %d local change(s) pending sync. Run 'coinkeeper sync' to push them.\n", pending)
	}

	return nil
}
