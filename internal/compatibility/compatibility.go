package compatibility

import (
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
)

const (
	StyleWeight    = 0.70
	MaterialWeight = 0.30

	// 任意一对单品的风格分数不高于这个值时，整套搭配直接记为 0
	StyleVetoThreshold = 0.1

	DefaultOutfitThreshold = 0.6

	outerwearCountBonus = 0.20
	outerwearStyleBonus = 0.10
)

type Engine struct {
	kb *knowledge.Base
}

func New(kb *knowledge.Base) *Engine {
	return &Engine{kb: kb}
}

// pairScore 两个方向都查一次并取最大值，未定义的组合记为 0
func pairScore(rules map[string]map[string]float64, a, b string) float64 {
	return max(rules[a][b], rules[b][a])
}

func (e *Engine) StyleScore(a, b string) float64 {
	return pairScore(e.kb.StyleRules, a, b)
}

func (e *Engine) MaterialScore(a, b string) float64 {
	return pairScore(e.kb.MaterialRules, a, b)
}

// ScoreOutfit 计算一套搭配的兼容分数（0 ~ 1）
// 每一对单品的分数为 0.7*风格 + 0.3*材质，结果取平均值
func (e *Engine) ScoreOutfit(garments []*domain.Garment) float64 {
	if len(garments) < 2 {
		return 0
	}

	total := 0.0
	comparisons := 0

	for i := 0; i < len(garments); i++ {
		for j := i + 1; j < len(garments); j++ {
			styleScore := e.StyleScore(garments[i].Style, garments[j].Style)
			if styleScore <= StyleVetoThreshold {
				return 0
			}
			materialScore := e.MaterialScore(garments[i].Material, garments[j].Material)

			total += StyleWeight*styleScore + MaterialWeight*materialScore
			comparisons++
		}
	}

	return total / float64(comparisons)
}
