package cli

import (
	"context"
	"flag"

	"github.com/ekorolev/coinkeeper/internal/client/collection"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	wishlist := fs.Bool("w", false, "add to the wishlist")
	condition := fs.String("condition", "", "coin condition (VF, XF, ...)")
	grade := fs.String("grade", "", "coin grade (MS-63, ...)")
	price := fs.Float64("price", 0, "purchase price")
	value := fs.Float64("value", 0, "your estimate of current value")
	date := fs.String("date", "", "purchase date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "notes")
	if err := parseArgs(fs, args, 1, "add [flags] <coinID>"); err != nil {
		return err
	}

	coin, err := c.collectionService.AddCoin(ctx, fs.Arg(0), collection.AddParams{
		Condition:     *condition,
		Grade:         *grade,
		PurchasePrice: *price,
		UserValue:     *value,
		PurchaseDate:  *date,
		Notes:         *notes,
		IsWishlist:    *wishlist,
	})
	if err != nil {
		return err
	}

	if coin.IsWishlist {
		c.io.Printf("✓ Added to wishlist: %s\n", coin.CatalogCoin.Name)
	} else {
		c.io.Printf("✓ Added to collection: %s\n", coin.CatalogCoin.Name)
	}
	c.io.Printf("Record ID: %s\n", coin.ID)

	return nil
}
