package optimizer

import "github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"

// Chromosome: 一个候选衣橱，基因是单品在目录中的位置
type Chromosome struct {
	genes   []int
	fitness float64
	record  domain.FitnessRecord
}

// 遗传算法参数
type Parameters struct {
	PopulationSize  int     `env:"POPULATION_SIZE" envDefault:"50"`   // 种群大小
	MaxGenerations  int     `env:"MAX_GENERATIONS" envDefault:"100"`  // 最大迭代次数
	CrossoverRate   float64 `env:"CROSSOVER_RATE" envDefault:"0.85"`  // 交叉概率
	MutationRate    float64 `env:"MUTATION_RATE" envDefault:"0.10"`   // 变异概率（针对每个子代，而不是每个基因）
	TournamentSize  int     `env:"TOURNAMENT_SIZE" envDefault:"5"`    // 锦标赛规模
	EliteCount      int     `env:"ELITE_COUNT" envDefault:"0"`        // 精英数量，默认不保留
	TopK            int     `env:"TOP_K" envDefault:"3"`              // 返回的不重复衣橱数量
	OutfitThreshold float64 `env:"OUTFIT_THRESHOLD" envDefault:"0.6"` // 有效搭配的最低分数
	Seed            uint64  `env:"SEED" envDefault:"0"`               // 随机种子，为 0 时每次运行随机
}

func DefaultParameters() *Parameters {
	return &Parameters{
		PopulationSize:  50,
		MaxGenerations:  100,
		CrossoverRate:   0.85,
		MutationRate:    0.10,
		TournamentSize:  5,
		EliteCount:      0,
		TopK:            3,
		OutfitThreshold: 0.6,
		Seed:            0,
	}
}
