package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	catalogrules "github.com/ekorolev/coinkeeper/internal/catalog"
)

func (c *Cli) runRulers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rulers", flag.ContinueOnError)
	period := fs.String("p", "", "filter by period id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *period != "" {
		rulers, err := c.catalogService.ListRulersByPeriod(ctx, *period)
		if err != nil {
			return err
		}
		return c.render(rulersListTemplate, rulers)
	}

	rulers, err := c.catalogService.ListRulers(ctx)
	if err != nil {
		return err
	}

	return c.render(rulersListTemplate, rulers)
}

func (c *Cli) runCoins(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("coins", flag.ContinueOnError)
	denomination := fs.String("d", "", "denomination group (gold, silver_ruble, silver_small, copper, commemorative, token)")
	if err := parseArgs(fs, args, 1, "coins <rulerID>"); err != nil {
		return err
	}

	rulerID := fs.Arg(0)

	if *denomination != "" {
		coins, err := c.catalogService.ListCoinsByDenomination(ctx, rulerID, catalogrules.DenominationType(*denomination))
		if err != nil {
			return err
		}
		return c.render(coinsListTemplate, coins)
	}

	coins, err := c.catalogService.ListCoinsByRuler(ctx, rulerID)
	if err != nil {
		return err
	}

	return c.render(coinsListTemplate, coins)
}

func (c *Cli) runCoin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing coin id. Usage: coinkeeper coin <coinID>")
	}

	coin, err := c.catalogService.GetCoinByID(ctx, args[0])
	if err != nil {
		return err
	}

	return c.render(coinDetailTemplate, coin)
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing query. Usage: coinkeeper search <query>")
	}

	query := strings.Join(args, " ")

	coins, err := c.catalogService.SearchCoins(ctx, query)
	if err != nil {
		return err
	}

	if len(coins) == 0 {
		c.io.Println("Nothing found. Queries shorter than 3 characters are ignored.")
		return nil
	}

	return c.render(coinsListTemplate, coins)
}

func (c *Cli) runDenominations(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing ruler id. Usage: coinkeeper denominations <rulerID>")
	}

	groups, err := c.catalogService.GroupDenominations(ctx, args[0])
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		c.io.Println("No coins in the catalog for this ruler.")
		return nil
	}

	return c.render(denominationsTemplate, groups)
}

// parseArgs парсит флаги и проверяет количество позиционных аргументов
func parseArgs(fs *flag.FlagSet, args []string, positional int, usage string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < positional {
		return fmt.Errorf("missing arguments. Usage: coinkeeper %s", usage)
	}
	return nil
}
