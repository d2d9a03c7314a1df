package models

// Country представляет страну в справочном каталоге.
// Справочные сущности никогда не изменяются пользователем.
type Country struct {
	ID          string `json:"id"`          // ID уникальный идентификатор страны
	Name        string `json:"name"`        // Name название страны
	NameEn      string `json:"name_en"`     // NameEn название на английском
	Description string `json:"description"` // Description свободное описание
}

// Period представляет исторический период внутри страны
// (например, "Российская Империя", 1721-1917).
type Period struct {
	ID          string `json:"id"`          // ID уникальный идентификатор периода
	CountryID   string `json:"country_id"`  // CountryID ссылка на страну
	Name        string `json:"name"`        // Name название периода
	NameEn      string `json:"name_en"`     // NameEn название на английском
	StartYear   int    `json:"start_year"`  // StartYear год начала периода
	EndYear     int    `json:"end_year"`    // EndYear год окончания периода
	Description string `json:"description"` // Description свободное описание
	SortOrder   int    `json:"sort_order"`  // SortOrder порядок отображения в каталоге
}

// Ruler представляет правителя. Принадлежит исключительно каталогу:
// создается при загрузке справочных данных и не изменяется пользователем.
type Ruler struct {
	ID          string `json:"id"`          // ID уникальный идентификатор правителя
	PeriodID    string `json:"period_id"`   // PeriodID ссылка на период
	Name        string `json:"name"`        // Name имя правителя
	NameEn      string `json:"name_en"`     // NameEn имя на английском
	Title       string `json:"title"`       // Title титул (например, "Император Всероссийский")
	StartYear   int    `json:"start_year"`  // StartYear год начала правления
	EndYear     int    `json:"end_year"`    // EndYear год окончания правления
	BirthYear   int    `json:"birth_year"`  // BirthYear год рождения
	DeathYear   int    `json:"death_year"`  // DeathYear год смерти
	Description string `json:"description"` // Description биографическая справка
	Succession  string `json:"succession"`  // Succession порядок наследования престола
	Coinage     string `json:"coinage"`     // Coinage справка о чеканке при этом правителе
	ImageURL    string `json:"image_url"`   // ImageURL ссылка на портрет
	SortOrder   int    `json:"sort_order"`  // SortOrder порядок отображения в каталоге
}

// Metal константы металлов каталожных монет
const (
	MetalGold   = "gold"
	MetalSilver = "silver"
	MetalCopper = "copper"
)

// CatalogCoin представляет неизменяемую каталожную запись о типе монеты.
// Инвариант: ID глобально уникален и никогда не переназначается,
// RulerID всегда ссылается на существующего правителя.
type CatalogCoin struct {
	ID                string  `json:"id"`                 // ID уникальный идентификатор монеты
	RulerID           string  `json:"ruler_id"`           // RulerID ссылка на правителя
	CatalogNumber     string  `json:"catalog_number"`     // CatalogNumber номер по каталогу (например, Биткин)
	Name              string  `json:"name"`               // Name название монеты
	NameEn            string  `json:"name_en"`            // NameEn название на английском
	Year              int     `json:"year"`               // Year год чеканки
	Denomination      string  `json:"denomination"`       // Denomination номинал текстом ("1 рубль")
	DenominationValue float64 `json:"denomination_value"` // DenominationValue номинал в рублях (0.05 = 5 копеек)
	Currency          string  `json:"currency"`           // Currency валюта номинала
	Metal             string  `json:"metal"`              // Metal металл: gold, silver, copper
	Weight            float64 `json:"weight"`             // Weight вес в граммах
	Diameter          float64 `json:"diameter"`           // Diameter диаметр в миллиметрах
	Mint              string  `json:"mint"`               // Mint монетный двор
	MintMark          string  `json:"mint_mark"`          // MintMark знак монетного двора
	Mintage           int64   `json:"mintage"`            // Mintage тираж, штук
	Rarity            string  `json:"rarity"`             // Rarity степень редкости текстом
	RarityScore       int     `json:"rarity_score"`       // RarityScore числовая оценка редкости
	EstimatedValueMin float64 `json:"estimated_value_min"` // EstimatedValueMin нижняя оценка стоимости
	EstimatedValueMax float64 `json:"estimated_value_max"` // EstimatedValueMax верхняя оценка стоимости
	ObverseImage      string  `json:"obverse_image"`      // ObverseImage изображение аверса
	ReverseImage      string  `json:"reverse_image"`      // ReverseImage изображение реверса
	Commemorative     bool    `json:"commemorative"`      // Commemorative флаг памятной монеты
	Description       string  `json:"description"`        // Description свободное описание

	// RulerName/RulerNameEn заполняются при выборке монеты с join'ом
	// на правителя; в каталоге не хранятся.
	RulerName   string `json:"ruler_name,omitempty"`
	RulerNameEn string `json:"ruler_name_en,omitempty"`
}

// EstimatedMidpoint возвращает середину оценочного диапазона стоимости монеты.
func (c *CatalogCoin) EstimatedMidpoint() float64 {
	return (c.EstimatedValueMin + c.EstimatedValueMax) / 2
}
