package analysis

import (
	"testing"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMVPEmpty(t *testing.T) {
	assert.Nil(t, AnalyzeMVP(nil))
}

func TestAnalyzeMVP(t *testing.T) {
	garments := []*domain.Garment{
		{Name: "Camiseta", Category: domain.CategoryTop},
		{Name: "Camisa", Category: domain.CategoryTop},
		{Name: "Vaquero", Category: domain.CategoryPant},
		{Name: "Falda", Category: domain.CategorySkirt},
		{Name: "Falda larga", Category: domain.CategorySkirt},
		{Name: "Zapatillas", Category: domain.CategoryFootwear},
		{Name: "Vestido", Category: domain.CategoryDress},
		{Name: "Abrigo", Category: domain.CategoryOuterwear},
	}

	report := AnalyzeMVP(garments)
	require.NotNil(t, report)

	// 外套: 2*3*1 + 1*1 = 7，上衣: 3*1*2 = 6，鞋: 2*3 + 1 = 7
	assert.Equal(t, "Zapatillas", report.MVP.Garment.Name)
	assert.Equal(t, 7, report.MVP.Power)

	powers := map[string]int{}
	for _, p := range report.Ranking {
		powers[p.Garment.Name] = p.Power
	}
	assert.Equal(t, map[string]int{
		"Camiseta":    6,
		"Camisa":      6,
		"Vaquero":     4,
		"Falda":       4,
		"Falda larga": 4,
		"Zapatillas":  7,
		"Vestido":     2,
		"Abrigo":      7,
	}, powers)

	names := make([]string, len(report.Ranking))
	for i, p := range report.Ranking {
		names[i] = p.Garment.Name
	}
	assert.Equal(t, []string{"Zapatillas", "Abrigo", "Camiseta", "Camisa", "Vaquero", "Falda", "Falda larga", "Vestido"}, names)
}

func TestAnalyzeMVPWithoutOutfits(t *testing.T) {
	report := AnalyzeMVP([]*domain.Garment{
		{Name: "Camiseta", Category: domain.CategoryTop},
		{Name: "Camisa", Category: domain.CategoryTop},
	})

	require.NotNil(t, report)
	assert.Equal(t, "Camiseta", report.MVP.Garment.Name)
	assert.Zero(t, report.MVP.Power)
}
