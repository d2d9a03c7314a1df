package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing coin id. Usage: coinkeeper remove <coinID>")
	}

	if err := c.collectionService.RemoveCoin(ctx, args[0]); err != nil {
		return err
	}

	c.io.Println("✓ Removed. The deletion will be pushed to the server on next sync.")
	return nil
}
