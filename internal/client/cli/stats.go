package cli

import "context"

func (c *Cli) runStats(ctx context.Context) error {
	stats, err := c.collectionService.Stats(ctx)
	if err != nil {
		return err
	}

	return c.render(statsTemplate, stats)
}
