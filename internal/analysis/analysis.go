package analysis

import (
	"sort"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

// GarmentPower 单品在衣橱中能参与组成的搭配数量
type GarmentPower struct {
	Garment *domain.Garment `json:"garment"`
	Power   int             `json:"power"`
}

type Report struct {
	MVP     GarmentPower   `json:"mvp"`
	Ranking []GarmentPower `json:"ranking"` // 按 Power 从高到低，相同时保持衣橱中的顺序
}

// AnalyzeMVP 找出衣橱中组合能力最强的单品，衣橱为空时返回 nil
func AnalyzeMVP(garments []*domain.Garment) *Report {
	if len(garments) == 0 {
		return nil
	}

	var tops, bottoms, footwear, outerwear, dresses int
	for _, g := range garments {
		switch {
		case g.Category == domain.CategoryTop:
			tops++
		case g.Category.IsBottom():
			bottoms++
		case g.Category == domain.CategoryFootwear:
			footwear++
		case g.Category == domain.CategoryOuterwear:
			outerwear++
		case g.Category == domain.CategoryDress:
			dresses++
		}
	}

	ranking := make([]GarmentPower, len(garments))
	for i, g := range garments {
		power := 0
		switch {
		case g.Category == domain.CategoryTop:
			power = bottoms * footwear * (1 + outerwear)
		case g.Category.IsBottom():
			power = tops * footwear * (1 + outerwear)
		case g.Category == domain.CategoryFootwear:
			power = tops*bottoms + dresses
		case g.Category == domain.CategoryDress:
			power = footwear * (1 + outerwear)
		case g.Category == domain.CategoryOuterwear:
			power = tops*bottoms*footwear + dresses*footwear
		}
		ranking[i] = GarmentPower{Garment: g, Power: power}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Power > ranking[j].Power
	})

	return &Report{
		MVP:     ranking[0],
		Ranking: ranking,
	}
}
