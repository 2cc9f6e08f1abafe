package compatibility

import "github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"

// partition 按类别划分衣橱，保存的是 garments 中的下标
type partition struct {
	tops      []int
	bottoms   []int
	footwear  []int
	dresses   []int
	outerwear []int
}

func partitionWardrobe(garments []*domain.Garment) partition {
	var p partition
	for i, g := range garments {
		switch {
		case g.Category == domain.CategoryTop:
			p.tops = append(p.tops, i)
		case g.Category.IsBottom():
			p.bottoms = append(p.bottoms, i)
		case g.Category == domain.CategoryFootwear:
			p.footwear = append(p.footwear, i)
		case g.Category == domain.CategoryDress:
			p.dresses = append(p.dresses, i)
		case g.Category == domain.CategoryOuterwear:
			p.outerwear = append(p.outerwear, i)
		}
	}
	return p
}

// baseOutfits 按笛卡尔积顺序生成所有基础搭配：先 上装×下装×鞋，再 连衣裙×鞋
func (p partition) baseOutfits(yield func(outfit []int)) {
	if len(p.tops) > 0 && len(p.bottoms) > 0 && len(p.footwear) > 0 {
		for _, t := range p.tops {
			for _, b := range p.bottoms {
				for _, f := range p.footwear {
					yield([]int{t, b, f})
				}
			}
		}
	}

	if len(p.dresses) > 0 && len(p.footwear) > 0 {
		for _, d := range p.dresses {
			for _, f := range p.footwear {
				yield([]int{d, f})
			}
		}
	}
}

func pick(garments []*domain.Garment, indexes []int) []*domain.Garment {
	res := make([]*domain.Garment, len(indexes))
	for i, idx := range indexes {
		res[i] = garments[idx]
	}
	return res
}

// WeightedOutfitQuality 累加所有基础搭配的分数（不是数量），
// 有外套时再乘以外套系数 1 + 0.2*外套数量 + 0.1*外套风格数
func (e *Engine) WeightedOutfitQuality(garments []*domain.Garment) float64 {
	if len(garments) == 0 {
		return 0
	}

	p := partitionWardrobe(garments)

	total := 0.0
	p.baseOutfits(func(outfit []int) {
		total += e.ScoreOutfit(pick(garments, outfit))
	})

	if len(p.outerwear) > 0 {
		styles := make(map[string]struct{}, len(p.outerwear))
		for _, idx := range p.outerwear {
			styles[garments[idx].Style] = struct{}{}
		}
		total *= 1 + outerwearCountBonus*float64(len(p.outerwear)) + outerwearStyleBonus*float64(len(styles))
	}

	return total
}

// EnumerateValidOutfits 返回分数不低于 threshold 的所有搭配，元素为 garments 中的下标
// 每个合格的基础搭配先原样输出一次，然后依次输出加上每件兼容外套后的版本
func (e *Engine) EnumerateValidOutfits(garments []*domain.Garment, threshold float64) [][]int {
	if len(garments) == 0 {
		return [][]int{}
	}

	p := partitionWardrobe(garments)

	base := make([][]int, 0)
	p.baseOutfits(func(outfit []int) {
		if e.ScoreOutfit(pick(garments, outfit)) >= threshold {
			base = append(base, outfit)
		}
	})

	if len(p.outerwear) == 0 || len(base) == 0 {
		return base
	}

	outfits := make([][]int, 0, len(base)*(1+len(p.outerwear)))
	for _, outfit := range base {
		outfits = append(outfits, outfit)

		for _, o := range p.outerwear {
			layered := append(append(make([]int, 0, len(outfit)+1), outfit...), o)
			// 加上外套后仍需满足阈值，否定规则同样适用
			if e.ScoreOutfit(pick(garments, layered)) >= threshold {
				outfits = append(outfits, layered)
			}
		}
	}

	return outfits
}
