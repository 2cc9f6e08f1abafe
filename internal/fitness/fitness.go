package fitness

import (
	"math"
	"slices"
	"sort"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/compatibility"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
)

// 各项指标在总适应度中的权重
const (
	OutfitWeight         = 0.45
	VersatilityWeight    = 0.35
	ColorWeight          = 0.10
	SustainabilityWeight = 0.10

	styleShare  = 0.7
	seasonShare = 0.3

	// 用户没有给出风格偏好时的中性分数
	neutralStyleSimilarity = 0.5
)

type Evaluator struct {
	engine  *compatibility.Engine
	kb      *knowledge.Base
	catalog []*domain.Garment
	palette domain.Palette

	// 归一化之后的风格偏好，为空表示用户没有偏好
	styleTarget map[string]float64
}

func New(engine *compatibility.Engine, kb *knowledge.Base, catalog []*domain.Garment, stylePreferences map[string]float64, palette domain.Palette) *Evaluator {
	return &Evaluator{
		engine:      engine,
		kb:          kb,
		catalog:     catalog,
		palette:     palette,
		styleTarget: normalize(stylePreferences),
	}
}

func normalize(weights map[string]float64) map[string]float64 {
	total := 0.0
	for _, style := range sortedKeys(weights) {
		total += weights[style]
	}
	if total <= 0 {
		return nil
	}

	res := make(map[string]float64, len(weights))
	for style, w := range weights {
		res[style] = w / total
	}
	return res
}

// Garments 把目录位置转换为单品，越界的位置会被忽略
func (ev *Evaluator) Garments(ids []int) []*domain.Garment {
	garments := make([]*domain.Garment, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(ev.catalog) {
			continue
		}
		garments = append(garments, ev.catalog[id])
	}
	return garments
}

// Evaluate 计算一个衣橱的适应度，结果只取决于单品集合，与顺序无关
// fitness = 0.45*log1p(搭配质量) + 0.35*多样性 + 0.10*色彩 + 0.10*可持续性
func (ev *Evaluator) Evaluate(ids []int) domain.FitnessRecord {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	garments := ev.Garments(sorted)
	if len(garments) == 0 {
		return domain.FitnessRecord{}
	}

	rec := domain.FitnessRecord{}

	rec.OutfitQuality = ev.engine.WeightedOutfitQuality(garments)
	rec.OutfitScore = math.Log1p(rec.OutfitQuality)

	rec.StyleSimilarity = ev.styleSimilarity(garments)
	rec.SeasonCoverage = seasonCoverage(garments)
	rec.Versatility = styleShare*rec.StyleSimilarity + seasonShare*rec.SeasonCoverage

	rec.ColorScore = ev.colorScore(garments)

	rec.SustainabilityMean = sustainabilityMean(garments)
	rec.SustainabilityScore = (rec.SustainabilityMean - 1) / 4

	rec.Fitness = OutfitWeight*rec.OutfitScore +
		VersatilityWeight*rec.Versatility +
		ColorWeight*rec.ColorScore +
		SustainabilityWeight*rec.SustainabilityScore

	return rec
}

// styleSimilarity 比较用户期望的风格分布和衣橱实际的风格分布
// 误差为两者在所有出现过的风格上的平方差之和，相似度为 1/(1+sqrt(误差))
func (ev *Evaluator) styleSimilarity(garments []*domain.Garment) float64 {
	if len(ev.styleTarget) == 0 {
		return neutralStyleSimilarity
	}

	actual := make(map[string]float64)
	for _, g := range garments {
		actual[g.Style] += 1
	}
	for style := range actual {
		actual[style] /= float64(len(garments))
	}

	styles := make(map[string]float64, len(ev.styleTarget)+len(actual))
	for style := range ev.styleTarget {
		styles[style] = 0
	}
	for style := range actual {
		styles[style] = 0
	}

	// 按固定顺序累加，保证同一个种子下结果逐位一致
	sse := 0.0
	for _, style := range sortedKeys(styles) {
		diff := ev.styleTarget[style] - actual[style]
		sse += diff * diff
	}

	return 1 / (1 + math.Sqrt(sse))
}

// seasonCoverage 有四季皆宜的单品加 0.5，覆盖两个以上具体季节再加 0.5
func seasonCoverage(garments []*domain.Garment) float64 {
	allYear := false
	seasons := make(map[string]struct{})
	for _, g := range garments {
		if g.Season == domain.SeasonAllYear {
			allYear = true
			continue
		}
		seasons[g.Season] = struct{}{}
	}

	score := 0.0
	if allYear {
		score += 0.5
	}
	if len(seasons) >= 2 {
		score += 0.5
	}
	return min(score, 1.0)
}

// colorScore 颜色属于推荐调色板的单品比例；没有调色板时退化为中性色的比例
func (ev *Evaluator) colorScore(garments []*domain.Garment) float64 {
	matched := 0
	for _, g := range garments {
		if len(ev.palette) > 0 {
			if ev.palette.Contains(g.Color) {
				matched++
			}
		} else if ev.kb.ColorCategory(g.Color) == knowledge.ColorCategoryNeutral {
			matched++
		}
	}
	return float64(matched) / float64(len(garments))
}

func sustainabilityMean(garments []*domain.Garment) float64 {
	total := 0.0
	for _, g := range garments {
		total += float64(g.Sustainability)
	}
	return total / float64(len(garments))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
