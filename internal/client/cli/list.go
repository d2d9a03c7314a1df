package cli

import (
	"context"
	"flag"

	"github.com/ekorolev/coinkeeper/internal/models"
)

type collectionListView struct {
	Coins    []*models.UserCoin
	Wishlist bool
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	wishlist := fs.Bool("w", false, "list the wishlist instead of the collection")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *wishlist {
		c.io.Println("=== Wishlist ===")
	} else {
		c.io.Println("=== Collection ===")
	}

	coins, err := c.collectionService.ListCoins(ctx, *wishlist)
	if err != nil {
		return err
	}

	return c.render(collectionListTemplate, collectionListView{
		Coins:    coins,
		Wishlist: *wishlist,
	})
}
