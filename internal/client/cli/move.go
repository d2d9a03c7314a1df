package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runMove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: coinkeeper move <id>")
	}

	coin, err := c.collectionService.MoveToCollection(ctx, args[0])
	if err != nil {
		return err
	}

	c.io.Printf("✓ Moved to collection: %s\n", coin.ID)
	return nil
}
