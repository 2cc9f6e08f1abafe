package optimizer

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/compatibility"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/fitness"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/palette"
)

type Optimizer struct {
	parameters   *Parameters
	catalog      []*domain.Garment
	engine       *compatibility.Engine
	evaluator    *fitness.Evaluator
	size         int
	mandatoryIDs []int            // 去重之后，保持输入顺序
	mandatory    map[int]struct{} // 与 mandatoryIDs 相同，便于查找
	rng          *rand.Rand       // 本次运行唯一的随机源
}

func New(parameters *Parameters, catalog []*domain.Garment, prefs *domain.Preferences, kb *knowledge.Base) (*Optimizer, error) {
	if kb == nil {
		return nil, errors.New("知识库不能为空")
	}
	if parameters == nil {
		parameters = DefaultParameters()
	}
	if prefs == nil {
		prefs = &domain.Preferences{}
	}

	o := &Optimizer{
		parameters:   parameters,
		catalog:      catalog,
		engine:       compatibility.New(kb),
		size:         max(0, prefs.DesiredSize),
		mandatoryIDs: make([]int, 0, len(prefs.MandatoryIDs)),
		mandatory:    make(map[int]struct{}, len(prefs.MandatoryIDs)),
	}

	for _, id := range prefs.MandatoryIDs {
		if id < 0 || id >= len(catalog) {
			return nil, fmt.Errorf("必选单品 %d 不在目录中（目录共有 %d 件单品）", id, len(catalog))
		}
		if _, exists := o.mandatory[id]; exists {
			continue
		}
		o.mandatory[id] = struct{}{}
		o.mandatoryIDs = append(o.mandatoryIDs, id)
	}

	// 调色板在整个运行期间只读
	recommended := palette.New(kb).Recommended(prefs.Season, prefs.FavoriteColors)
	o.evaluator = fitness.New(o.engine, kb, catalog, prefs.StylePreferences, recommended)

	seed := parameters.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return o, nil
}

// Evaluator 返回本次运行使用的适应度评估器
func (o *Optimizer) Evaluator() *fitness.Evaluator {
	return o.evaluator
}

// Run 执行整个遗传搜索，同一个种子和输入下结果完全一致
// 种群在某一代变为空时提前结束，返回空结果而不是错误
func (o *Optimizer) Run(reporter Reporter) *domain.OptimizationResult {
	if reporter == nil {
		reporter = NopReporter{}
	}

	result := &domain.OptimizationResult{
		Wardrobes:      []domain.WardrobeResult{},
		FitnessHistory: []float64{},
	}

	// 生成初始种群
	pop := make([]*Chromosome, 0, max(0, o.parameters.PopulationSize))
	for i := 0; i < o.parameters.PopulationSize; i++ {
		pop = append(pop, o.randomInitChromosome())
	}

	// 迭代
	generations := o.parameters.MaxGenerations
	bestSoFar := 0.0
	for gen := 0; gen < generations; gen++ {
		pop = o.filterValid(pop)
		if len(pop) == 0 {
			slog.Info("种群中没有合法的衣橱，提前结束搜索", "generation", gen+1, "size", o.size, "catalog", len(o.catalog))
			return result
		}

		// 找到本代最佳样本
		genBestFit := 0.0
		for i, ch := range pop {
			o.calcFitness(ch)
			if i == 0 || ch.fitness > genBestFit {
				genBestFit = ch.fitness
			}
		}
		result.FitnessHistory = append(result.FitnessHistory, genBestFit)
		if gen == 0 || genBestFit > bestSoFar {
			bestSoFar = genBestFit
		}

		// 历史记录是每代最佳，进度消息里是到目前为止的最佳
		report(
			reporter,
			float64(gen+1)/float64(generations),
			fmt.Sprintf("第 %d/%d 代，最佳适应度 %.4f", gen+1, generations, bestSoFar),
		)

		// 繁殖
		pop = o.nextGeneration(pop)
	}

	// 评估最后一代
	pop = o.filterValid(pop)
	for _, ch := range pop {
		o.calcFitness(ch)
	}
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].fitness > pop[j].fitness
	})

	// 按单品集合去重，保留前 TopK 个
	seen := make(map[uint64]struct{})
	for _, ch := range pop {
		if len(result.Wardrobes) >= o.parameters.TopK {
			break
		}
		h := canonicalHash(ch.genes)
		if _, exists := seen[h]; exists {
			continue
		}
		seen[h] = struct{}{}
		result.Wardrobes = append(result.Wardrobes, domain.WardrobeResult{
			GarmentIDs:         slices.Clone(ch.genes),
			Fitness:            ch.fitness,
			OutfitQuality:      ch.record.OutfitQuality,
			SustainabilityMean: ch.record.SustainabilityMean,
			Metrics:            ch.record,
		})
	}

	// 只为最佳衣橱列出全部有效搭配
	if len(result.Wardrobes) > 0 {
		best := &result.Wardrobes[0]
		best.ValidOutfits = o.ValidOutfits(best.GarmentIDs)
	}

	return result
}

// report 调用进度回调，回调 panic 不影响搜索
func report(reporter Reporter, progress float64, message string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("进度回调失败", "panic", r)
		}
	}()
	reporter.Report(progress, message)
}

// ValidOutfits 列出衣橱中所有达到阈值的搭配，元素为目录中的位置
func (o *Optimizer) ValidOutfits(ids []int) []domain.Outfit {
	garments := make([]*domain.Garment, 0, len(ids))
	positions := make([]int, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(o.catalog) {
			continue
		}
		garments = append(garments, o.catalog[id])
		positions = append(positions, id)
	}

	outfits := make([]domain.Outfit, 0)
	for _, local := range o.engine.EnumerateValidOutfits(garments, o.parameters.OutfitThreshold) {
		outfit := make(domain.Outfit, len(local))
		for i, idx := range local {
			outfit[i] = positions[idx]
		}
		outfits = append(outfits, outfit)
	}
	return outfits
}

// filterValid 丢弃长度不等于目标大小的个体
func (o *Optimizer) filterValid(pop []*Chromosome) []*Chromosome {
	valid := pop[:0]
	for _, ch := range pop {
		if len(ch.genes) == o.size {
			valid = append(valid, ch)
		}
	}
	return valid
}

func (o *Optimizer) nextGeneration(pop []*Chromosome) []*Chromosome {
	size := o.parameters.PopulationSize
	newPop := make([]*Chromosome, 0, size)

	// 保留精英
	if elite := min(o.parameters.EliteCount, len(pop), size); elite > 0 {
		ranked := slices.Clone(pop)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].fitness > ranked[j].fitness
		})
		for _, ch := range ranked[:elite] {
			newPop = append(newPop, ch.clone())
		}
	}

	// 剩余的位置通过选择、交叉和变异产生
	for len(newPop) < size {
		p1 := o.selectByTournament(pop)
		p2 := o.selectByTournament(pop)

		var c1, c2 *Chromosome
		if o.rng.Float64() < o.parameters.CrossoverRate {
			c1, c2 = o.genePoolCrossover(p1, p2)
		} else {
			// 不交叉时子代是父本的拷贝
			c1, c2 = p1.clone(), p2.clone()
		}

		o.mutate(c1)
		newPop = append(newPop, c1)

		if len(newPop) < size {
			o.mutate(c2)
			newPop = append(newPop, c2)
		}
	}

	return newPop
}
