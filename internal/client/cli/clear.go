package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
)

func (c *Cli) runClear(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	force := fs.Bool("force", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		answer, err := c.io.ReadInput("Remove ALL collection and wishlist records? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
			c.io.Println("Aborted.")
			return nil
		}
	}

	if err := c.collectionService.ClearAll(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Collection cleared. Deletions will be pushed to the server on next sync.")
	return nil
}
