package cli

import "context"

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	result, err := c.syncService.SyncAll(ctx)
	if err != nil {
		return err
	}

	if result.Pushed == 0 {
		c.io.Println("Nothing to sync.")
		return nil
	}

	c.io.Printf("Pushed: %d, confirmed: %d, failed: %d\n", result.Pushed, result.Synced, result.Failed)
	if result.Failed > 0 {
		c.io.Println("Failed records stay pending and will be retried on next sync.")
	} else {
		c.io.Println("✓ All local changes are synced.")
	}

	return nil
}
