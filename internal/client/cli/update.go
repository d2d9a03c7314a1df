package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/ekorolev/coinkeeper/internal/client/collection"
)

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	condition := fs.String("condition", "", "coin condition (VF, XF, ...)")
	grade := fs.String("grade", "", "coin grade (MS-63, ...)")
	price := fs.Float64("price", 0, "purchase price")
	value := fs.Float64("value", 0, "your estimate of current value")
	date := fs.String("date", "", "purchase date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "notes")
	if err := parseArgs(fs, args, 1, "update [flags] <id>"); err != nil {
		return err
	}

	// Меняются только явно переданные флаги
	params := collection.UpdateParams{}
	changed := false
	fs.Visit(func(f *flag.Flag) {
		changed = true
		switch f.Name {
		case "condition":
			params.Condition = condition
		case "grade":
			params.Grade = grade
		case "price":
			params.PurchasePrice = price
		case "value":
			params.UserValue = value
		case "date":
			params.PurchaseDate = date
		case "notes":
			params.Notes = notes
		}
	})

	if !changed {
		return fmt.Errorf("nothing to update: pass at least one flag")
	}

	coin, err := c.collectionService.UpdateCoin(ctx, fs.Arg(0), params)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Updated record %s\n", coin.ID)
	return nil
}
