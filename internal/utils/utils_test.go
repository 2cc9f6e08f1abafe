package utils

import (
	"testing"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomGarmentIsValid(t *testing.T) {
	kb := knowledge.MustDefault()

	names := make(map[string]struct{})
	for range 100 {
		g := GenerateRandomGarment(kb)
		require.NoError(t, ValidateGarment(g, kb))
		names[g.Name] = struct{}{}
	}
	assert.Greater(t, len(names), 90)
}

func TestGenerateRandomID(t *testing.T) {
	id := GenerateRandomID(2, 3)
	require.Len(t, id, 5)
	assert.Contains(t, digits, string(id[4]))
}

func TestValidateGarment(t *testing.T) {
	kb := knowledge.MustDefault()
	valid := func() *domain.Garment {
		return &domain.Garment{Name: "Camiseta", Category: domain.CategoryTop, Color: "Negro", Style: "Casual", Material: "Algodón", Season: domain.SeasonAllYear, Sustainability: 3}
	}

	require.NoError(t, ValidateGarment(valid(), kb))

	tests := []struct {
		name   string
		modify func(g *domain.Garment)
	}{
		{"empty name", func(g *domain.Garment) { g.Name = "" }},
		{"unknown category", func(g *domain.Garment) { g.Category = "Sombrero" }},
		{"empty color", func(g *domain.Garment) { g.Color = "" }},
		{"unknown style", func(g *domain.Garment) { g.Style = "Cyberpunk" }},
		{"unknown material", func(g *domain.Garment) { g.Material = "Papel" }},
		{"unknown season", func(g *domain.Garment) { g.Season = "Monzón" }},
		{"rating too low", func(g *domain.Garment) { g.Sustainability = 0 }},
		{"rating too high", func(g *domain.Garment) { g.Sustainability = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid()
			tt.modify(g)
			assert.Error(t, ValidateGarment(g, kb))
		})
	}
}

func TestValidatePreferences(t *testing.T) {
	kb := knowledge.MustDefault()

	ok := &domain.Preferences{
		DesiredSize:      4,
		MandatoryIDs:     []int{0, 5},
		StylePreferences: map[string]float64{"Casual": 3, "Elegante": 1},
		Season:           "Invierno",
	}
	require.NoError(t, ValidatePreferences(ok, 10, kb))

	tests := []struct {
		name  string
		prefs domain.Preferences
	}{
		{"zero size", domain.Preferences{DesiredSize: 0}},
		{"size beyond catalog", domain.Preferences{DesiredSize: 11}},
		{"too many mandatory", domain.Preferences{DesiredSize: 2, MandatoryIDs: []int{0, 1, 2}}},
		{"mandatory out of range", domain.Preferences{DesiredSize: 2, MandatoryIDs: []int{10}}},
		{"duplicate mandatory", domain.Preferences{DesiredSize: 3, MandatoryIDs: []int{1, 1}}},
		{"unknown style", domain.Preferences{DesiredSize: 3, StylePreferences: map[string]float64{"Cyberpunk": 1}}},
		{"non positive weight", domain.Preferences{DesiredSize: 3, StylePreferences: map[string]float64{"Casual": 0}}},
		{"unknown season", domain.Preferences{DesiredSize: 3, Season: "Monzón"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidatePreferences(&tt.prefs, 10, kb))
		})
	}
}

func TestValidateOptimizationResult(t *testing.T) {
	prefs := &domain.Preferences{DesiredSize: 3, MandatoryIDs: []int{2}}

	valid := &domain.OptimizationResult{Wardrobes: []domain.WardrobeResult{
		{GarmentIDs: []int{2, 0, 1}},
		{GarmentIDs: []int{3, 2, 4}},
	}}
	require.NoError(t, ValidateOptimizationResult(valid, prefs, 5))
	require.NoError(t, ValidateOptimizationResult(&domain.OptimizationResult{}, prefs, 5))

	tests := []struct {
		name      string
		wardrobes [][]int
	}{
		{"wrong size", [][]int{{2, 0}}},
		{"out of catalog", [][]int{{2, 0, 5}}},
		{"missing mandatory", [][]int{{0, 1, 3}}},
		{"duplicate garment", [][]int{{2, 1, 1}}},
		{"duplicate wardrobe", [][]int{{2, 0, 1}, {1, 2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &domain.OptimizationResult{}
			for _, ids := range tt.wardrobes {
				result.Wardrobes = append(result.Wardrobes, domain.WardrobeResult{GarmentIDs: ids})
			}
			assert.Error(t, ValidateOptimizationResult(result, prefs, 5))
		})
	}
}
