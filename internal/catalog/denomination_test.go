package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekorolev/coinkeeper/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		coin     *models.CatalogCoin
		expected DenominationType
		ok       bool
	}{
		{
			name:     "gold coin",
			coin:     &models.CatalogCoin{Metal: models.MetalGold, DenominationValue: 10},
			expected: DenominationGold,
			ok:       true,
		},
		{
			name:     "silver ruble",
			coin:     &models.CatalogCoin{Metal: models.MetalSilver, DenominationValue: 1},
			expected: DenominationSilverRuble,
			ok:       true,
		},
		{
			name:     "poltina counts as ruble silver",
			coin:     &models.CatalogCoin{Metal: models.MetalSilver, DenominationValue: 0.5},
			expected: DenominationSilverRuble,
			ok:       true,
		},
		{
			name:     "small silver",
			coin:     &models.CatalogCoin{Metal: models.MetalSilver, DenominationValue: 0.2},
			expected: DenominationSilverSmall,
			ok:       true,
		},
		{
			name:     "copper",
			coin:     &models.CatalogCoin{Metal: models.MetalCopper, DenominationValue: 0.05},
			expected: DenominationCopper,
			ok:       true,
		},
		{
			name:     "commemorative wins over metal",
			coin:     &models.CatalogCoin{Metal: models.MetalGold, Commemorative: true},
			expected: DenominationCommemorative,
			ok:       true,
		},
		{
			name: "unknown metal is not classified",
			coin: &models.CatalogCoin{Metal: "platinum", DenominationValue: 3},
			ok:   false,
		},
		{
			name: "empty metal is not classified",
			coin: &models.CatalogCoin{DenominationValue: 1},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.coin)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestGroup_OrderAndOmission(t *testing.T) {
	coins := []*models.CatalogCoin{
		{Metal: models.MetalCopper, DenominationValue: 0.02},
		{Metal: models.MetalSilver, DenominationValue: 1},
		{Metal: models.MetalSilver, DenominationValue: 1, Commemorative: true},
		{Metal: models.MetalGold, DenominationValue: 5},
		{Metal: models.MetalGold, DenominationValue: 10},
		{Metal: "platinum", DenominationValue: 3}, // не попадает ни в одну группу
	}

	groups := Group(coins)

	require.Len(t, groups, 4)
	assert.Equal(t, DenominationGold, groups[0].Type)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, DenominationSilverRuble, groups[1].Type)
	assert.Equal(t, 1, groups[1].Count)
	assert.Equal(t, DenominationCopper, groups[2].Type)
	assert.Equal(t, DenominationCommemorative, groups[3].Type)

	// Группы с нулевым количеством не возвращаются
	for _, g := range groups {
		assert.NotZero(t, g.Count)
		assert.NotEmpty(t, g.DisplayName)
	}
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]*models.CatalogCoin{{Metal: "nickel"}}))
}

func TestDisplayName_Unknown(t *testing.T) {
	assert.Equal(t, "Прочие", DisplayName(DenominationType("bronze")))
}
