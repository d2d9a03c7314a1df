package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду с аргументами. Неизвестная команда - ошибка.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "rulers":
		return c.runRulers(ctx, args)
	case "coins":
		return c.runCoins(ctx, args)
	case "coin":
		return c.runCoin(ctx, args)
	case "search":
		return c.runSearch(ctx, args)
	case "denominations":
		return c.runDenominations(ctx, args)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "update":
		return c.runUpdate(ctx, args)
	case "remove":
		return c.runRemove(ctx, args)
	case "move":
		return c.runMove(ctx, args)
	case "stats":
		return c.runStats(ctx)
	case "clear":
		return c.runClear(ctx, args)
	case "sync":
		return c.runSync(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
