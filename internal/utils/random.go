package utils

import (
	"math/rand/v2"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
)

var garmentNouns = map[domain.Category][]string{
	domain.CategoryTop:       {"Camiseta", "Blusa", "Camisa", "Jersey", "Sudadera", "Polo"},
	domain.CategoryPant:      {"Pantalón", "Vaquero", "Chino", "Jogger"},
	domain.CategorySkirt:     {"Falda", "Falda midi", "Minifalda"},
	domain.CategoryFootwear:  {"Zapatillas", "Botines", "Mocasines", "Sandalias", "Botas"},
	domain.CategoryOuterwear: {"Chaqueta", "Abrigo", "Cárdigan", "Gabardina", "Blazer"},
	domain.CategoryDress:     {"Vestido", "Vestido midi", "Vestido largo"},
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

var digits = "0123456789"

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.IntN(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.IntN(len(digits))])
		}
	}
	return string(random_id)
}

func pickOne[T any](arr []T) T {
	return arr[rand.IntN(len(arr))]
}

// GenerateRandomGarment 从知识库的词表中随机生成一件单品，名称带随机后缀以满足唯一约束
func GenerateRandomGarment(kb *knowledge.Base) *domain.Garment {
	category := pickOne(domain.Categories)
	color := pickOne(kb.Colors())

	return &domain.Garment{
		Name:           pickOne(garmentNouns[category]) + " " + color + " " + GenerateRandomID(2, 3),
		Category:       category,
		Color:          color,
		Style:          pickOne(kb.Styles),
		Material:       pickOne(kb.Materials),
		Season:         pickOne(kb.GarmentSeasons),
		Sustainability: int32(rand.IntN(5) + 1),
	}
}
