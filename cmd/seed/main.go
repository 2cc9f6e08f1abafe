package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/config"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/repository"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/seed"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机单品, 2: 从 CSV 导入目录)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&file, "file", "", "要导入的目录 CSV 文件")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		logger.Error("无法加载搭配知识库", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的单品数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				garment := utils.GenerateRandomGarment(kb)
				if err := repo.CreateGarment(garment); err != nil {
					slog.Error("无法插入单品", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入单品成功", slog.Int("count", n-cnt))
		}
	case 2:
		if file == "" {
			slog.Error("请指定要导入的目录文件")
			return
		}
		if _, err := seed.ImportCatalog(repo, file, kb); err != nil {
			slog.Error("无法导入目录", slog.String("file", file), slog.String("error", err.Error()))
		}
	default:
		slog.Error("指定的操作非法")
	}
}
