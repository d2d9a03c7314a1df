package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ekorolev/coinkeeper/internal/client/api"
	"github.com/ekorolev/coinkeeper/internal/client/auth"
	"github.com/ekorolev/coinkeeper/internal/client/catalog"
	"github.com/ekorolev/coinkeeper/internal/client/cli"
	"github.com/ekorolev/coinkeeper/internal/client/collection"
	"github.com/ekorolev/coinkeeper/internal/client/config"
	"github.com/ekorolev/coinkeeper/internal/client/iocli"
	"github.com/ekorolev/coinkeeper/internal/client/storage"
	"github.com/ekorolev/coinkeeper/internal/client/storage/boltdb"
	"github.com/ekorolev/coinkeeper/internal/client/storage/sqlite"
	"github.com/ekorolev/coinkeeper/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// localStorage объединяет каталожное и коллекционное хранилища,
// которые живут в одном файле базы
type localStorage interface {
	storage.CatalogStorage
	storage.UserCoinStorage
	Close() error
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	io := iocli.NewStdio()
	cfg := config.MustLoad()

	args := flag.Args()
	if len(args) == 0 {
		c := cli.New(io, nil, nil, nil, nil)
		c.PrintUsage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx := context.Background()

	local, err := openLocalStorage(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := local.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Сессия всегда живет в отдельном BoltDB файле независимо от backend
	authStorage, err := boltdb.New(ctx, cfg.AuthDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open auth database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := authStorage.Close(); err != nil {
			logger.Error("failed to close auth database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.ServerURL)

	authService := auth.NewService(apiClient, authStorage)
	catalogService := catalog.NewService(local)
	syncService := sync.NewService(apiClient, local, authStorage, logger)
	collectionService := collection.NewService(local, local, syncService)

	syncCtx, cancelSync := context.WithCancel(ctx)
	syncService.Start(syncCtx)
	defer func() {
		// Сначала даем воркеру дочитать очередь, потом снимаем контекст:
		// обратный порядок обрывает fire-and-forget синхронизации,
		// поставленные выполненной командой
		syncService.Close()
		cancelSync()
	}()

	c := cli.New(io, authService, catalogService, collectionService, syncService)
	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLocalStorage открывает локальную базу каталога и коллекции
// выбранным backend'ом
func openLocalStorage(ctx context.Context, cfg *config.Config) (localStorage, error) {
	switch cfg.Backend {
	case "sqlite":
		return sqlite.New(ctx, cfg.DBPath)
	case "bolt":
		return boltdb.New(ctx, cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown backend %q: use sqlite or bolt", cfg.Backend)
	}
}

func printVersion() {
	fmt.Printf("CoinKeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
