package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/utils"
)

// 目录 CSV 的列名，Imagen 可以省略
const (
	ColumnName           = "Nombre"
	ColumnCategory       = "Tipo"
	ColumnColor          = "Color"
	ColumnStyle          = "Estilo"
	ColumnMaterial       = "Material"
	ColumnSeason         = "Temporada"
	ColumnSustainability = "Sostenibilidad"
	ColumnImage          = "Imagen"
)

var requiredColumns = []string{ColumnName, ColumnCategory, ColumnColor, ColumnStyle, ColumnMaterial, ColumnSeason, ColumnSustainability}

// GarmentCreator 批量写入单品，由 repository 实现
type GarmentCreator interface {
	CreateGarments(garments []*domain.Garment) error
}

// ReadCatalog 读取目录 CSV，返回的顺序就是文件中的行顺序
func ReadCatalog(r io.Reader) ([]*domain.Garment, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[strings.TrimPrefix(strings.TrimSpace(header), "\ufeff")] = i
	}
	for _, column := range requiredColumns {
		if _, exists := index[column]; !exists {
			return nil, fmt.Errorf("没有找到列 %s", column)
		}
	}

	// 读取数据
	garments := make([]*domain.Garment, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("读取第 %d 行失败: %w", line, err)
		}

		get := func(column string) string {
			i, exists := index[column]
			if !exists || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		sustainability, err := strconv.ParseInt(get(ColumnSustainability), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行的可持续性评分不是整数: %w", line, err)
		}

		garments = append(garments, &domain.Garment{
			Name:           get(ColumnName),
			Category:       domain.Category(get(ColumnCategory)),
			Color:          get(ColumnColor),
			Style:          get(ColumnStyle),
			Material:       get(ColumnMaterial),
			Season:         get(ColumnSeason),
			Sustainability: int32(sustainability),
			Image:          get(ColumnImage),
		})
	}

	return garments, nil
}

// LoadCatalogFile 读取并校验一个目录文件
func LoadCatalogFile(path string, kb *knowledge.Base) ([]*domain.Garment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	garments, err := ReadCatalog(file)
	if err != nil {
		return nil, err
	}

	for i, g := range garments {
		if err := utils.ValidateGarment(g, kb); err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", i+2, err)
		}
	}

	return garments, nil
}

// ImportCatalog 把目录文件中的单品全部写入数据库，任意一行不合法时不写入
func ImportCatalog(creator GarmentCreator, path string, kb *knowledge.Base) (int, error) {
	garments, err := LoadCatalogFile(path, kb)
	if err != nil {
		return 0, err
	}

	if err := creator.CreateGarments(garments); err != nil {
		return 0, err
	}

	slog.Info("导入目录成功", "path", path, "count", len(garments))
	return len(garments), nil
}
