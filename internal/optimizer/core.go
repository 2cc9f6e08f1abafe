package optimizer

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// randomInitChromosome 随机初始化一个染色体
// 必选单品 + 从剩余目录中无放回抽取，最后打乱顺序
func (o *Optimizer) randomInitChromosome() *Chromosome {
	genes := slices.Clone(o.mandatoryIDs)

	needed := o.size - len(genes)
	if needed < 0 {
		// 必选单品比衣橱容量还多，直接截断
		return &Chromosome{genes: genes[:o.size]}
	}

	candidates := o.complement(genes)
	genes = append(genes, o.sample(candidates, min(needed, len(candidates)))...)

	o.rng.Shuffle(len(genes), func(i, j int) {
		genes[i], genes[j] = genes[j], genes[i]
	})

	return &Chromosome{genes: genes}
}

// 计算染色体的适应度
func (o *Optimizer) calcFitness(ch *Chromosome) {
	ch.record = o.evaluator.Evaluate(ch.genes)
	ch.fitness = ch.record.Fitness
}

// 使用锦标赛来进行选择
// 无放回地抽取若干个体，返回其中适应度最高的一个，相同适应度时取先抽到的
func (o *Optimizer) selectByTournament(pop []*Chromosome) *Chromosome {
	size := max(1, min(o.parameters.TournamentSize, len(pop)))

	indices := make([]int, len(pop))
	for i := range indices {
		indices[i] = i
	}
	indices = o.sample(indices, size)

	best := indices[0]
	for _, idx := range indices[1:] {
		if pop[idx].fitness > pop[best].fitness {
			best = idx
		}
	}

	return pop[best]
}

// 基因池交叉
// 两个父本的单品合并为基因池，子代从必选单品开始，优先从基因池中补足，不够时再从整个目录中补
func (o *Optimizer) genePoolCrossover(ch1 *Chromosome, ch2 *Chromosome) (*Chromosome, *Chromosome) {
	pool := make([]int, 0, len(ch1.genes)+len(ch2.genes))
	seen := make(map[int]struct{}, len(ch1.genes)+len(ch2.genes))

	for _, id := range slices.Concat(ch1.genes, ch2.genes) {
		if _, exists := o.mandatory[id]; exists {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		pool = append(pool, id)
	}

	return o.fillChild(pool), o.fillChild(pool)
}

func (o *Optimizer) fillChild(pool []int) *Chromosome {
	genes := slices.Clone(o.mandatoryIDs)

	needed := o.size - len(genes)
	if needed <= 0 {
		return &Chromosome{genes: genes[:o.size]}
	}

	genes = append(genes, o.sample(pool, min(len(pool), needed))...)

	if len(genes) < o.size {
		candidates := o.complement(genes)
		genes = append(genes, o.sample(candidates, min(len(candidates), o.size-len(genes)))...)
	}

	return &Chromosome{genes: genes}
}

// 变异
// 以一定概率把一个非必选位置替换为衣橱中还没有的单品
func (o *Optimizer) mutate(ch *Chromosome) {
	if o.rng.Float64() >= o.parameters.MutationRate {
		return
	}

	var positions []int
	for i, id := range ch.genes {
		if _, exists := o.mandatory[id]; !exists {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return
	}
	position := positions[o.rng.IntN(len(positions))]

	candidates := o.complement(ch.genes)
	if len(candidates) == 0 {
		return
	}

	ch.genes[position] = candidates[o.rng.IntN(len(candidates))]
}

// complement 返回目录中不在 genes 里的位置，按升序排列
func (o *Optimizer) complement(genes []int) []int {
	used := make([]bool, len(o.catalog))
	for _, id := range genes {
		used[id] = true
	}

	res := make([]int, 0, max(0, len(o.catalog)-len(genes)))
	for id := range o.catalog {
		if !used[id] {
			res = append(res, id)
		}
	}
	return res
}

// sample 从 pool 中无放回地抽取 k 个元素，不修改 pool
func (o *Optimizer) sample(pool []int, k int) []int {
	cp := slices.Clone(pool)
	for i := 0; i < k; i++ {
		j := i + o.rng.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:k]
}

func (ch *Chromosome) clone() *Chromosome {
	return &Chromosome{
		genes:   slices.Clone(ch.genes),
		fitness: ch.fitness,
		record:  ch.record,
	}
}

// canonicalHash 与顺序无关的衣橱指纹，用于最终结果去重
func canonicalHash(genes []int) uint64 {
	sorted := slices.Clone(genes)
	slices.Sort(sorted)

	buf := make([]byte, 0, 8*len(sorted))
	for _, id := range sorted {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(id))
	}
	return xxhash.Sum64(buf)
}
