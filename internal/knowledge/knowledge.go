package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultKnowledge []byte

const ColorCategoryNeutral = "Neutro"
const ColorCategoryOther = "Otro"

type Season struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Colors      []string `yaml:"colors" json:"colors"`
}

type ColorCategory struct {
	Name   string   `yaml:"name" json:"name"`
	Colors []string `yaml:"colors" json:"colors"`
}

// Base 搭配知识库：风格/材质兼容矩阵、色彩季型调色板和颜色分类
// 创建之后只读，可以被多个运行共享
type Base struct {
	Styles            []string                      `yaml:"styles"`
	StyleRules        map[string]map[string]float64 `yaml:"style_rules"`
	Materials         []string                      `yaml:"materials"`
	MaterialRules     map[string]map[string]float64 `yaml:"material_rules"`
	GarmentSeasons    []string                      `yaml:"garment_seasons"`
	UniversalNeutrals []string                      `yaml:"universal_neutrals"`
	Seasons           []Season                      `yaml:"seasons"`
	ColorCategories   []ColorCategory               `yaml:"color_categories"`
}

// Default 解析内置的知识库
func Default() (*Base, error) {
	return Parse(defaultKnowledge)
}

// MustDefault 内置知识库解析失败说明打包有问题，直接 panic
func MustDefault() *Base {
	kb, err := Default()
	if err != nil {
		panic(err)
	}
	return kb
}

// Load 从文件加载知识库，path 为空时使用内置知识库
func Load(path string) (*Base, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func Parse(data []byte) (*Base, error) {
	kb := &Base{}
	if err := yaml.Unmarshal(data, kb); err != nil {
		return nil, fmt.Errorf("无法解析知识库: %w", err)
	}

	if err := kb.validate(); err != nil {
		return nil, err
	}

	return kb, nil
}

func (kb *Base) validate() error {
	if len(kb.Styles) == 0 {
		return errors.New("知识库中没有定义风格")
	}
	if len(kb.StyleRules) == 0 {
		return errors.New("知识库中没有定义风格兼容规则")
	}
	if len(kb.MaterialRules) == 0 {
		return errors.New("知识库中没有定义材质兼容规则")
	}

	for from, row := range kb.StyleRules {
		for to, score := range row {
			if score < 0 || score > 1 {
				return fmt.Errorf("风格 %s 与 %s 的兼容分数 %v 超出范围", from, to, score)
			}
		}
	}
	for from, row := range kb.MaterialRules {
		for to, score := range row {
			if score < 0 || score > 1 {
				return fmt.Errorf("材质 %s 与 %s 的兼容分数 %v 超出范围", from, to, score)
			}
		}
	}

	return nil
}

// Season 按名称查找季型
func (kb *Base) Season(name string) (Season, bool) {
	for _, s := range kb.Seasons {
		if s.Name == name {
			return s, true
		}
	}
	return Season{}, false
}

// ColorCategory 返回颜色所属的大类，没有匹配时返回 Otro
func (kb *Base) ColorCategory(color string) string {
	for _, category := range kb.ColorCategories {
		if slices.Contains(category.Colors, color) {
			return category.Name
		}
	}
	return ColorCategoryOther
}

func (kb *Base) IsStyle(style string) bool {
	return slices.Contains(kb.Styles, style)
}

func (kb *Base) IsMaterial(material string) bool {
	return slices.Contains(kb.Materials, material)
}

func (kb *Base) IsGarmentSeason(season string) bool {
	return slices.Contains(kb.GarmentSeasons, season)
}

// Colors 返回知识库中出现过的所有颜色，按字母排序
func (kb *Base) Colors() []string {
	set := make(map[string]struct{})
	for _, c := range kb.UniversalNeutrals {
		set[c] = struct{}{}
	}
	for _, s := range kb.Seasons {
		for _, c := range s.Colors {
			set[c] = struct{}{}
		}
	}
	for _, category := range kb.ColorCategories {
		for _, c := range category.Colors {
			set[c] = struct{}{}
		}
	}

	colors := make([]string, 0, len(set))
	for c := range set {
		colors = append(colors, c)
	}
	slices.Sort(colors)
	return colors
}
