// Package catalog содержит чистую логику классификации каталожных монет
// по группам номиналов. Классификатор не обращается к хранилищу и не
// имеет состояния, поэтому используется и клиентом, и тестами напрямую.
package catalog

import "github.com/ekorolev/coinkeeper/internal/models"

// DenominationType тип группы номиналов
type DenominationType string

// Фиксированный набор групп номиналов. Порядок отображения задается
// DenominationOrder, а не алфавитом.
const (
	DenominationGold          DenominationType = "gold"
	DenominationSilverRuble   DenominationType = "silver_ruble"
	DenominationSilverSmall   DenominationType = "silver_small"
	DenominationCopper        DenominationType = "copper"
	DenominationCommemorative DenominationType = "commemorative"
	DenominationToken         DenominationType = "token"
)

// DenominationOrder порядок групп при отображении:
// золото, серебряные рубли, серебряная мелочь, медь, памятные, жетоны.
var DenominationOrder = []DenominationType{
	DenominationGold,
	DenominationSilverRuble,
	DenominationSilverSmall,
	DenominationCopper,
	DenominationCommemorative,
	DenominationToken,
}

// rubleThreshold граница между "рублевым" и "мелким" серебром:
// полтина (0.5 рубля) и выше относится к серебряным рублям.
const rubleThreshold = 0.5

// DenominationGroup производная группа монет одного правителя.
// Не персистится: каталог статичен, пересчет дешев.
type DenominationGroup struct {
	Type        DenominationType `json:"type"`
	DisplayName string           `json:"display_name"`
	Count       int              `json:"count"`
}

var displayNames = map[DenominationType]string{
	DenominationGold:          "Золотые монеты",
	DenominationSilverRuble:   "Серебряные рубли",
	DenominationSilverSmall:   "Серебряная мелочь",
	DenominationCopper:        "Медные монеты",
	DenominationCommemorative: "Памятные монеты",
	DenominationToken:         "Жетоны",
}

// DisplayName возвращает русское название группы номиналов.
func DisplayName(t DenominationType) string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return "Прочие"
}

// Classify относит монету к группе номиналов.
//
// Памятные монеты попадают в commemorative независимо от металла.
// Остальные классифицируются по металлу: золото -> gold, серебро
// номиналом от полтины -> silver_ruble, иначе silver_small,
// медь -> copper. Монеты из неизвестного металла не классифицируются:
// возвращается ok=false, и монета не попадает ни в одну группу.
func Classify(coin *models.CatalogCoin) (DenominationType, bool) {
	if coin.Commemorative {
		return DenominationCommemorative, true
	}

	switch coin.Metal {
	case models.MetalGold:
		return DenominationGold, true
	case models.MetalSilver:
		if coin.DenominationValue >= rubleThreshold {
			return DenominationSilverRuble, true
		}
		return DenominationSilverSmall, true
	case models.MetalCopper:
		return DenominationCopper, true
	}

	return "", false
}

// Group строит группы номиналов для набора монет одного правителя.
// Группы возвращаются в порядке DenominationOrder; пустые группы
// опускаются.
func Group(coins []*models.CatalogCoin) []DenominationGroup {
	counts := make(map[DenominationType]int)
	for _, coin := range coins {
		t, ok := Classify(coin)
		if !ok {
			continue
		}
		counts[t]++
	}

	groups := make([]DenominationGroup, 0, len(counts))
	for _, t := range DenominationOrder {
		if counts[t] == 0 {
			continue
		}
		groups = append(groups, DenominationGroup{
			Type:        t,
			DisplayName: DisplayName(t),
			Count:       counts[t],
		})
	}

	return groups
}
