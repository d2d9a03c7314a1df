// Package cli реализует командный интерфейс клиента: команды каталога,
// коллекции, сессии и синхронизации. Весь ввод-вывод идет через
// iocli.IO, что позволяет тестировать команды без настоящего терминала.
package cli

import (
	"fmt"
	"text/template"

	"github.com/ekorolev/coinkeeper/internal/client/auth"
	"github.com/ekorolev/coinkeeper/internal/client/catalog"
	"github.com/ekorolev/coinkeeper/internal/client/collection"
	"github.com/ekorolev/coinkeeper/internal/client/iocli"
	"github.com/ekorolev/coinkeeper/internal/client/sync"
)

type Cli struct {
	io                iocli.IO
	authService       auth.Service
	catalogService    catalog.Service
	collectionService collection.Service
	syncService       sync.Service
}

func New(
	io iocli.IO,
	authService auth.Service,
	catalogService catalog.Service,
	collectionService collection.Service,
	syncService sync.Service,
) *Cli {
	return &Cli{
		io:                io,
		authService:       authService,
		catalogService:    catalogService,
		collectionService: collectionService,
		syncService:       syncService,
	}
}

// render выполняет шаблон и пишет результат в io
func (c *Cli) render(tmpl string, data any) error {
	t, err := template.New("out").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

// PrintUsage печатает справку по командам
func (c *Cli) PrintUsage() {
	c.io.Printf("%s", usageText)
}
