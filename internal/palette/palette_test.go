package palette

import (
	"testing"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendedKnownSeason(t *testing.T) {
	kb := knowledge.MustDefault()
	r := New(kb)

	p := r.Recommended("Invierno", []string{"Fucsia"})

	winter, ok := kb.Season("Invierno")
	require.True(t, ok)
	for _, c := range winter.Colors {
		assert.True(t, p.Contains(c), c)
	}
	for _, c := range kb.UniversalNeutrals {
		assert.True(t, p.Contains(c), c)
	}
	assert.True(t, p.Contains("Fucsia"))

	// Negro、Gris carbón、Azul marino 同时属于冬季色和中性色，只计一次
	assert.Len(t, p, len(winter.Colors)+len(kb.UniversalNeutrals)-3)
}

func TestRecommendedUnknownSeason(t *testing.T) {
	kb := knowledge.MustDefault()
	r := New(kb)

	p := r.Recommended("Monzón", []string{"Verde lima", "Negro"})

	assert.Len(t, p, len(kb.UniversalNeutrals)+1)
	assert.True(t, p.Contains("Verde lima"))
	assert.False(t, p.Contains("Fucsia"))
}

func TestRecommendedFavoritesOutsideSeason(t *testing.T) {
	r := New(knowledge.MustDefault())

	p := r.Recommended("Verano", []string{"Naranja quemado"})
	assert.True(t, p.Contains("Naranja quemado"))
	assert.True(t, p.Contains("Lavanda"))
}

func TestRecommendedIsDeterministic(t *testing.T) {
	r := New(knowledge.MustDefault())

	a := r.Recommended("Otoño", []string{"Fucsia"})
	b := r.Recommended("Otoño", []string{"Fucsia"})
	assert.Equal(t, a.Colors(), b.Colors())
}
