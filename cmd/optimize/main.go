package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/analysis"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/export"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/optimizer"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/seed"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/utils"
)

func main() {
	parameters := optimizer.DefaultParameters()

	var (
		catalogPath   string
		knowledgePath string
		size          int
		mandatory     string
		season        string
		favorites     string
		styles        string
		output        string
		debug         bool
	)

	flag.StringVar(&catalogPath, "catalog", "", "目录 CSV 文件")
	flag.StringVar(&knowledgePath, "knowledge", "", "知识库 YAML 文件，为空时使用内置知识库")
	flag.IntVar(&size, "size", 10, "衣橱大小")
	flag.StringVar(&mandatory, "mandatory", "", "必选单品在目录中的位置（从 0 开始），以逗号分隔")
	flag.StringVar(&season, "season", "", "色彩季型")
	flag.StringVar(&favorites, "favorite", "", "喜欢的颜色，以逗号分隔")
	flag.StringVar(&styles, "styles", "", "风格偏好，例如 Casual=2,Clásico=1")
	flag.StringVar(&output, "out", "", "把结果导出为 XLSX 文件")
	flag.BoolVar(&debug, "debug", false, "输出每一代的进度")
	flag.IntVar(&parameters.PopulationSize, "population", parameters.PopulationSize, "种群大小")
	flag.IntVar(&parameters.MaxGenerations, "generations", parameters.MaxGenerations, "迭代次数")
	flag.Float64Var(&parameters.CrossoverRate, "crossover", parameters.CrossoverRate, "交叉概率")
	flag.Float64Var(&parameters.MutationRate, "mutation", parameters.MutationRate, "变异概率")
	flag.IntVar(&parameters.EliteCount, "elite", parameters.EliteCount, "精英数量")
	flag.Uint64Var(&parameters.Seed, "seed", parameters.Seed, "随机种子，为 0 时随机")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(parameters, catalogPath, knowledgePath, size, mandatory, season, favorites, styles, output); err != nil {
		logger.Error("优化失败", "error", err)
		os.Exit(1)
	}
}

func run(parameters *optimizer.Parameters, catalogPath, knowledgePath string, size int, mandatory, season, favorites, styles, output string) error {
	if catalogPath == "" {
		return errors.New("请指定目录文件 -catalog")
	}

	kb, err := knowledge.Load(knowledgePath)
	if err != nil {
		return err
	}

	catalog, err := seed.LoadCatalogFile(catalogPath, kb)
	if err != nil {
		return err
	}

	mandatoryIDs, err := parseIntList(mandatory)
	if err != nil {
		return err
	}
	stylePreferences, err := parseStyleWeights(styles)
	if err != nil {
		return err
	}

	prefs := domain.Preferences{
		DesiredSize:      size,
		MandatoryIDs:     mandatoryIDs,
		StylePreferences: stylePreferences,
		Season:           season,
		FavoriteColors:   splitList(favorites),
	}
	if err := utils.ValidatePreferences(&prefs, len(catalog), kb); err != nil {
		return err
	}

	opt, err := optimizer.New(parameters, catalog, &prefs, kb)
	if err != nil {
		return err
	}

	slog.Info("开始优化", "catalog", len(catalog), "size", size, "population", parameters.PopulationSize, "generations", parameters.MaxGenerations, "seed", parameters.Seed)

	start := time.Now()
	result := opt.Run(optimizer.LogReporter{})
	finished := time.Now()

	if err := utils.ValidateOptimizationResult(result, &prefs, len(catalog)); err != nil {
		return err
	}

	if len(result.Wardrobes) == 0 {
		slog.Warn("没有找到合法的衣橱", "generations", len(result.FitnessHistory))
		return nil
	}

	for i, wardrobe := range result.Wardrobes {
		names := make([]string, len(wardrobe.GarmentIDs))
		for j, id := range wardrobe.GarmentIDs {
			names[j] = catalog[id].Name
		}
		slog.Info("衣橱",
			"rank", i+1,
			"fitness", fmt.Sprintf("%.4f", wardrobe.Fitness),
			"outfitQuality", fmt.Sprintf("%.2f", wardrobe.OutfitQuality),
			"sustainability", fmt.Sprintf("%.2f", wardrobe.SustainabilityMean),
			"garments", strings.Join(names, ", "),
		)
	}

	best := result.Wardrobes[0]
	for _, outfit := range best.ValidOutfits {
		names := make([]string, len(outfit))
		for i, id := range outfit {
			names[i] = catalog[id].Name
		}
		slog.Debug("有效搭配", "garments", strings.Join(names, " + "))
	}

	garments := make([]*domain.Garment, len(best.GarmentIDs))
	for i, id := range best.GarmentIDs {
		garments[i] = catalog[id]
	}
	if report := analysis.AnalyzeMVP(garments); report != nil {
		slog.Info("最佳单品", "name", report.MVP.Garment.Name, "power", report.MVP.Power, "outfits", len(best.ValidOutfits))
	}

	if output == "" {
		return nil
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	// 导出沿用服务端运行的结构
	runRecord := domain.OptimizationRun{
		ID:          "cli",
		Status:      domain.RunStatusSucceeded,
		Progress:    1,
		Preferences: prefs,
		Catalog:     catalog,
		Result:      result,
		CreatedAt:   start,
		StartedAt:   &start,
		FinishedAt:  &finished,
	}
	if err := export.Write(file, runRecord); err != nil {
		return err
	}

	slog.Info("已导出结果", "file", output)
	return nil
}
