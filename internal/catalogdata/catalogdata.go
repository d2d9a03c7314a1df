// Package catalogdata содержит статический справочный каталог,
// вшитый в бинарник. Каталог загружается в хранилище один раз
// при инициализации и пересоздается при повышении версии.
package catalogdata

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/ekorolev/coinkeeper/internal/models"
)

// Version версия справочного каталога. Повышение версии приводит
// к пересозданию справочных таблиц (countries, periods, rulers,
// catalog_coins) при следующем открытии хранилища. Пользовательские
// данные (user_coins) при этом не затрагиваются.
const Version = 5

//go:embed catalog.json
var embedCatalog embed.FS

// Catalog полный набор справочных данных
type Catalog struct {
	Countries []*models.Country     `json:"countries"`
	Periods   []*models.Period      `json:"periods"`
	Rulers    []*models.Ruler       `json:"rulers"`
	Coins     []*models.CatalogCoin `json:"coins"`
}

// Load читает и разбирает вшитый каталог.
func Load() (*Catalog, error) {
	data, err := embedCatalog.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	return &catalog, nil
}
