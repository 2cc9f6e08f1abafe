package domain

import "time"

type Category string

const (
	CategoryTop       Category = "Top"
	CategoryPant      Category = "Pantalón"
	CategorySkirt     Category = "Falda"
	CategoryFootwear  Category = "Calzado"
	CategoryOuterwear Category = "Exterior"
	CategoryDress     Category = "Vestido"
)

var Categories = []Category{
	CategoryTop,
	CategoryPant,
	CategorySkirt,
	CategoryFootwear,
	CategoryOuterwear,
	CategoryDress,
}

// IsBottom 裤子和裙子都算作下装
func (c Category) IsBottom() bool {
	return c == CategoryPant || c == CategorySkirt
}

// SeasonAllYear 表示四季皆宜的单品
const SeasonAllYear = "Todo el año"

type Garment struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	Color          string    `json:"color"`
	Style          string    `json:"style"`
	Material       string    `json:"material"`
	Season         string    `json:"season"`
	Sustainability int32     `json:"sustainability"` // 1~5
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
