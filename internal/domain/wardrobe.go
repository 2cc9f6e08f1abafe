package domain

// Outfit 是衣橱内的一套搭配，元素为目录中的位置（从 0 开始）
type Outfit []int

// FitnessRecord 每次评估都会重新生成，不跨代缓存
type FitnessRecord struct {
	Fitness             float64 `json:"fitness"`
	OutfitQuality       float64 `json:"outfitQuality"` // 未取对数的搭配质量总和
	OutfitScore         float64 `json:"outfitScore"`   // log1p(OutfitQuality)
	StyleSimilarity     float64 `json:"styleSimilarity"`
	SeasonCoverage      float64 `json:"seasonCoverage"`
	Versatility         float64 `json:"versatility"`
	ColorScore          float64 `json:"colorScore"`
	SustainabilityMean  float64 `json:"sustainabilityMean"`
	SustainabilityScore float64 `json:"sustainabilityScore"`
}

type WardrobeResult struct {
	GarmentIDs         []int         `json:"garmentIDs"`
	Fitness            float64       `json:"fitness"`
	OutfitQuality      float64       `json:"outfitQuality"`
	SustainabilityMean float64       `json:"sustainabilityMean"`
	Metrics            FitnessRecord `json:"metrics"`
	ValidOutfits       []Outfit      `json:"validOutfits,omitempty"` // 只有最佳衣橱才会计算
}

type OptimizationResult struct {
	Wardrobes      []WardrobeResult `json:"wardrobes"`
	FitnessHistory []float64        `json:"fitnessHistory"`
}
