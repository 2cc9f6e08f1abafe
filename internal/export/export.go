package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

const (
	SheetHistory = "Evolución"
	SheetOutfits = "Atuendos"

	defaultSheet = "Sheet1"
)

var ErrNoResult = errors.New("运行还没有结果")

var garmentHeader = []any{"Nombre", "Tipo", "Color", "Estilo", "Material", "Temporada", "Sostenibilidad"}

func WardrobeSheet(rank int) string {
	return fmt.Sprintf("Armario %d", rank)
}

// Workbook 把运行结果整理为工作簿：每个衣橱一张表，另外是适应度变化和最佳衣橱的搭配
func Workbook(run domain.OptimizationRun) (*excelize.File, error) {
	if run.Result == nil {
		return nil, ErrNoResult
	}

	f := excelize.NewFile()

	sheets := make([]string, 0, len(run.Result.Wardrobes)+2)
	for i := range run.Result.Wardrobes {
		sheets = append(sheets, WardrobeSheet(i+1))
	}
	sheets = append(sheets, SheetHistory, SheetOutfits)

	// 新文件自带一张 Sheet1，直接改名作为第一张表
	if err := f.SetSheetName(defaultSheet, sheets[0]); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, sheet := range sheets[1:] {
		if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	for i, wardrobe := range run.Result.Wardrobes {
		if err := writeWardrobe(f, WardrobeSheet(i+1), run.Catalog, wardrobe); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if err := writeHistory(f, run.Result.FitnessHistory); err != nil {
		_ = f.Close()
		return nil, err
	}
	var outfits []domain.Outfit
	if len(run.Result.Wardrobes) > 0 {
		outfits = run.Result.Wardrobes[0].ValidOutfits
	}
	if err := writeOutfits(f, run.Catalog, outfits); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write 生成工作簿并写入 w
func Write(w io.Writer, run domain.OptimizationRun) error {
	f, err := Workbook(run)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func writeWardrobe(f *excelize.File, sheet string, catalog []*domain.Garment, wardrobe domain.WardrobeResult) error {
	if err := f.SetSheetRow(sheet, "A1", &garmentHeader); err != nil {
		return err
	}

	row := 2
	for _, id := range wardrobe.GarmentIDs {
		g := garmentAt(catalog, id)
		if g == nil {
			continue
		}
		values := []any{g.Name, string(g.Category), g.Color, g.Style, g.Material, g.Season, g.Sustainability}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	// 空一行之后写汇总
	row++
	summary := [][]any{
		{"Fitness", wardrobe.Fitness},
		{"Calidad de atuendos", wardrobe.OutfitQuality},
		{"Sostenibilidad media", wardrobe.SustainabilityMean},
		{"Versatilidad", wardrobe.Metrics.Versatility},
		{"Armonía de color", wardrobe.Metrics.ColorScore},
	}
	for _, values := range summary {
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	return nil
}

func writeHistory(f *excelize.File, history []float64) error {
	if err := setRow(f, SheetHistory, 1, []any{"Generación", "Mejor fitness"}); err != nil {
		return err
	}
	for i, fitness := range history {
		if err := setRow(f, SheetHistory, i+2, []any{i + 1, fitness}); err != nil {
			return err
		}
	}
	return nil
}

func writeOutfits(f *excelize.File, catalog []*domain.Garment, outfits []domain.Outfit) error {
	if err := setRow(f, SheetOutfits, 1, []any{"Atuendo", "Prendas"}); err != nil {
		return err
	}
	for i, outfit := range outfits {
		names := make([]string, 0, len(outfit))
		for _, id := range outfit {
			if g := garmentAt(catalog, id); g != nil {
				names = append(names, g.Name)
			}
		}
		if err := setRow(f, SheetOutfits, i+2, []any{i + 1, strings.Join(names, " + ")}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func garmentAt(catalog []*domain.Garment, id int) *domain.Garment {
	if id < 0 || id >= len(catalog) {
		return nil
	}
	return catalog[id]
}
