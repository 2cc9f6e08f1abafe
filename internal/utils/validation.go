package utils

import (
	"errors"
	"fmt"
	"slices"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
)

// ValidateGarment 检查单品的属性是否都在知识库的词表中
func ValidateGarment(g *domain.Garment, kb *knowledge.Base) error {
	if g.Name == "" {
		return errors.New("单品名称不能为空")
	}
	if !slices.Contains(domain.Categories, g.Category) {
		return fmt.Errorf("未知的单品类型 %s", g.Category)
	}
	if g.Color == "" {
		return errors.New("单品颜色不能为空")
	}
	if !kb.IsStyle(g.Style) {
		return fmt.Errorf("未知的风格 %s", g.Style)
	}
	if !kb.IsMaterial(g.Material) {
		return fmt.Errorf("未知的材质 %s", g.Material)
	}
	if !kb.IsGarmentSeason(g.Season) {
		return fmt.Errorf("未知的季节 %s", g.Season)
	}
	if g.Sustainability < 1 || g.Sustainability > 5 {
		return fmt.Errorf("可持续性评分必须在 1 到 5 之间，当前为 %d", g.Sustainability)
	}
	return nil
}

// ValidatePreferences 检查优化请求与目录是否匹配，MandatoryIDs 为目录位置
// 优化器本身对这些情况是宽容的，这里在接口层直接拒绝
func ValidatePreferences(prefs *domain.Preferences, catalogSize int, kb *knowledge.Base) error {
	if prefs.DesiredSize < 1 {
		return errors.New("衣橱大小必须大于 0")
	}
	if prefs.DesiredSize > catalogSize {
		return fmt.Errorf("衣橱大小 %d 超过了目录中的单品数量 %d", prefs.DesiredSize, catalogSize)
	}
	if len(prefs.MandatoryIDs) > prefs.DesiredSize {
		return fmt.Errorf("必选单品数量 %d 超过了衣橱大小 %d", len(prefs.MandatoryIDs), prefs.DesiredSize)
	}

	seen := make(map[int]struct{}, len(prefs.MandatoryIDs))
	for _, id := range prefs.MandatoryIDs {
		if id < 0 || id >= catalogSize {
			return fmt.Errorf("必选单品 %d 不在目录中", id)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("必选单品 %d 重复", id)
		}
		seen[id] = struct{}{}
	}

	for style, weight := range prefs.StylePreferences {
		if !kb.IsStyle(style) {
			return fmt.Errorf("未知的风格 %s", style)
		}
		if weight <= 0 {
			return fmt.Errorf("风格 %s 的权重必须大于 0", style)
		}
	}

	if prefs.Season != "" {
		if _, ok := kb.Season(prefs.Season); !ok {
			return fmt.Errorf("未知的色彩季型 %s", prefs.Season)
		}
	}

	return nil
}

// ValidateOptimizationResult 检查结果中的每个衣橱都满足大小、必选单品和去重的约束
func ValidateOptimizationResult(result *domain.OptimizationResult, prefs *domain.Preferences, catalogSize int) error {
	seen := make([][]int, 0, len(result.Wardrobes))

	for rank, wardrobe := range result.Wardrobes {
		if len(wardrobe.GarmentIDs) != prefs.DesiredSize {
			return fmt.Errorf("衣橱 %d 的大小为 %d，应为 %d", rank+1, len(wardrobe.GarmentIDs), prefs.DesiredSize)
		}

		for _, id := range wardrobe.GarmentIDs {
			if id < 0 || id >= catalogSize {
				return fmt.Errorf("衣橱 %d 中的单品 %d 不在目录中", rank+1, id)
			}
		}
		for _, id := range prefs.MandatoryIDs {
			if !slices.Contains(wardrobe.GarmentIDs, id) {
				return fmt.Errorf("衣橱 %d 缺少必选单品 %d", rank+1, id)
			}
		}

		sorted := slices.Clone(wardrobe.GarmentIDs)
		slices.Sort(sorted)
		if len(slices.Compact(slices.Clone(sorted))) != len(sorted) {
			return fmt.Errorf("衣橱 %d 中有重复的单品", rank+1)
		}
		for i, other := range seen {
			if slices.Equal(sorted, other) {
				return fmt.Errorf("衣橱 %d 与衣橱 %d 完全相同", rank+1, i+1)
			}
		}
		seen = append(seen, sorted)
	}

	return nil
}
