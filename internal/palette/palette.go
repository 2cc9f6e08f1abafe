package palette

import (
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
)

type Resolver struct {
	kb *knowledge.Base
}

func New(kb *knowledge.Base) *Resolver {
	return &Resolver{kb: kb}
}

// Recommended 组合季型基础色、通用中性色和用户喜欢的颜色
// 季型未知时只返回中性色和喜欢的颜色；喜欢的颜色总是保留，即使不属于该季型
func (r *Resolver) Recommended(season string, favoriteColors []string) domain.Palette {
	p := domain.NewPalette(r.kb.UniversalNeutrals...)

	if s, ok := r.kb.Season(season); ok {
		p.Add(s.Colors...)
	}

	p.Add(favoriteColors...)

	return p
}
