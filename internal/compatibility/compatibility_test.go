package compatibility

import (
	"testing"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func garment(category domain.Category, style, material string) *domain.Garment {
	return &domain.Garment{Category: category, Style: style, Material: material}
}

func TestPairScoresAreSymmetric(t *testing.T) {
	kb := knowledge.MustDefault()
	e := New(kb)

	styles := append([]string{"Comfy", "Desconocido"}, kb.Styles...)
	for _, a := range styles {
		for _, b := range styles {
			assert.Equal(t, e.StyleScore(a, b), e.StyleScore(b, a), "style %s/%s", a, b)
		}
	}

	materials := append([]string{"Desconocido"}, kb.Materials...)
	for _, a := range materials {
		for _, b := range materials {
			assert.Equal(t, e.MaterialScore(a, b), e.MaterialScore(b, a), "material %s/%s", a, b)
		}
	}
}

func TestPairScoreRepairsOneSidedRules(t *testing.T) {
	e := New(knowledge.MustDefault())

	// Lino 只在自己的行里写了 Seda，Seda 的行里没有 Lino
	assert.Equal(t, 0.7, e.MaterialScore("Seda", "Lino"))
	assert.Equal(t, 1.0, e.StyleScore("Comfy", "Deportivo"))
	assert.Equal(t, 0.0, e.StyleScore("Casual", "Desconocido"))
}

func TestScoreOutfit(t *testing.T) {
	e := New(knowledge.MustDefault())

	t.Run("fewer than two garments", func(t *testing.T) {
		assert.Equal(t, 0.0, e.ScoreOutfit(nil))
		assert.Equal(t, 0.0, e.ScoreOutfit([]*domain.Garment{garment(domain.CategoryTop, "Casual", "Algodón")}))
	})

	t.Run("incompatible styles are vetoed", func(t *testing.T) {
		outfit := []*domain.Garment{
			garment(domain.CategoryTop, "Grunge", "Algodón"),
			garment(domain.CategoryPant, "Elegante", "Algodón"),
		}
		assert.Equal(t, 0.0, e.ScoreOutfit(outfit))
	})

	t.Run("veto ignores material", func(t *testing.T) {
		outfit := []*domain.Garment{
			garment(domain.CategoryTop, "Casual", "Algodón"),
			garment(domain.CategoryPant, "Casual", "Jean"),
			garment(domain.CategoryFootwear, "Glam", "Algodón"),
		}
		assert.Equal(t, 0.0, e.ScoreOutfit(outfit))
	})

	t.Run("mean of weighted pairs", func(t *testing.T) {
		outfit := []*domain.Garment{
			garment(domain.CategoryTop, "Casual", "Algodón"),
			garment(domain.CategoryPant, "Deportivo", "Jean"),
		}
		assert.InDelta(t, 0.7*0.9+0.3*1.0, e.ScoreOutfit(outfit), 1e-12)

		outfit = append(outfit, garment(domain.CategoryFootwear, "Casual", "Cuero"))
		expected := ((0.7*0.9 + 0.3*1.0) + (0.7*1.0 + 0.3*0.7) + (0.7*0.9 + 0.3*0.9)) / 3
		assert.InDelta(t, expected, e.ScoreOutfit(outfit), 1e-12)
	})
}

func basicWardrobe() []*domain.Garment {
	return []*domain.Garment{
		garment(domain.CategoryTop, "Casual", "Algodón"),
		garment(domain.CategoryTop, "Casual", "Algodón"),
		garment(domain.CategoryTop, "Casual", "Algodón"),
		garment(domain.CategoryPant, "Casual", "Algodón"),
		garment(domain.CategorySkirt, "Casual", "Algodón"),
		garment(domain.CategoryFootwear, "Casual", "Algodón"),
		garment(domain.CategoryFootwear, "Casual", "Algodón"),
	}
}

func TestWeightedOutfitQuality(t *testing.T) {
	e := New(knowledge.MustDefault())

	t.Run("empty wardrobe", func(t *testing.T) {
		assert.Equal(t, 0.0, e.WeightedOutfitQuality(nil))
	})

	t.Run("three tops two bottoms two shoes", func(t *testing.T) {
		assert.InDelta(t, 12.0, e.WeightedOutfitQuality(basicWardrobe()), 1e-9)
	})

	t.Run("outerwear bonus", func(t *testing.T) {
		w := append(basicWardrobe(),
			garment(domain.CategoryOuterwear, "Casual", "Algodón"),
			garment(domain.CategoryOuterwear, "Casual", "Lana"),
			garment(domain.CategoryOuterwear, "Clásico", "Lana"),
		)
		// 3 件外套，2 种风格
		assert.InDelta(t, 12.0*(1+0.6+0.2), e.WeightedOutfitQuality(w), 1e-9)
	})

	t.Run("dresses count with footwear", func(t *testing.T) {
		w := []*domain.Garment{
			garment(domain.CategoryDress, "Elegante", "Seda"),
			garment(domain.CategoryFootwear, "Elegante", "Seda"),
			garment(domain.CategoryFootwear, "Grunge", "Cuero"),
		}
		assert.InDelta(t, 0.7*1.0+0.3*0.7, e.WeightedOutfitQuality(w), 1e-12)
	})

	t.Run("missing category short-circuits", func(t *testing.T) {
		w := []*domain.Garment{
			garment(domain.CategoryTop, "Casual", "Algodón"),
			garment(domain.CategoryPant, "Casual", "Algodón"),
			garment(domain.CategoryOuterwear, "Casual", "Algodón"),
		}
		assert.Equal(t, 0.0, e.WeightedOutfitQuality(w))
	})
}

func TestEnumerateValidOutfits(t *testing.T) {
	e := New(knowledge.MustDefault())

	t.Run("product order without outerwear", func(t *testing.T) {
		w := []*domain.Garment{
			garment(domain.CategoryTop, "Casual", "Algodón"),
			garment(domain.CategoryPant, "Casual", "Jean"),
			garment(domain.CategoryPant, "Elegante", "Seda"),
			garment(domain.CategoryFootwear, "Casual", "Cuero"),
			garment(domain.CategoryDress, "Casual", "Algodón"),
		}
		outfits := e.EnumerateValidOutfits(w, DefaultOutfitThreshold)
		assert.Equal(t, [][]int{{0, 1, 3}, {4, 3}}, outfits)
	})

	t.Run("outerwear variants follow each base outfit", func(t *testing.T) {
		w := []*domain.Garment{
			garment(domain.CategoryTop, "Casual", "Algodón"),
			garment(domain.CategoryPant, "Casual", "Algodón"),
			garment(domain.CategoryFootwear, "Casual", "Algodón"),
			garment(domain.CategoryDress, "Elegante", "Seda"),
			garment(domain.CategoryOuterwear, "Casual", "Lana"),
			garment(domain.CategoryOuterwear, "Grunge", "Cuero"),
			garment(domain.CategoryFootwear, "Elegante", "Cuero"),
		}
		outfits := e.EnumerateValidOutfits(w, DefaultOutfitThreshold)
		require.Equal(t, [][]int{
			{0, 1, 2},
			{0, 1, 2, 4},
			{3, 6},
		}, outfits)
	})

	t.Run("threshold filters weak combinations", func(t *testing.T) {
		w := []*domain.Garment{
			garment(domain.CategoryTop, "Casual", "Poliéster"),
			garment(domain.CategoryPant, "Clásico", "Seda"),
			garment(domain.CategoryFootwear, "Preppy", "Lino"),
		}
		// Casual/Clásico 0.6, Casual/Preppy 0.6, Clásico/Preppy 0.8，材质都很低
		assert.Empty(t, e.EnumerateValidOutfits(w, 0.9))
		assert.Len(t, e.EnumerateValidOutfits(w, 0.3), 1)
	})

	t.Run("empty wardrobe", func(t *testing.T) {
		assert.Empty(t, e.EnumerateValidOutfits(nil, DefaultOutfitThreshold))
	})
}
