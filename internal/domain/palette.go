package domain

import "sort"

// Palette 为颜色名称的集合，在一次运行中只读
type Palette map[string]struct{}

func NewPalette(colors ...string) Palette {
	p := make(Palette, len(colors))
	p.Add(colors...)
	return p
}

func (p Palette) Add(colors ...string) {
	for _, c := range colors {
		p[c] = struct{}{}
	}
}

func (p Palette) Contains(color string) bool {
	_, ok := p[color]
	return ok
}

// Colors 返回排序后的颜色列表
func (p Palette) Colors() []string {
	colors := make([]string, 0, len(p))
	for c := range p {
		colors = append(colors, c)
	}
	sort.Strings(colors)
	return colors
}
