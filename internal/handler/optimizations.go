package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/analysis"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/export"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/metrics"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/optimizer"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type wardrobeView struct {
	Rank               int                  `json:"rank"`
	GarmentIDs         []int64              `json:"garmentIDs"`
	Garments           []*domain.Garment    `json:"garments"`
	Fitness            float64              `json:"fitness"`
	OutfitQuality      float64              `json:"outfitQuality"`
	SustainabilityMean float64              `json:"sustainabilityMean"`
	Metrics            domain.FitnessRecord `json:"metrics"`
	Outfits            [][]int64            `json:"outfits,omitempty"`
	Analysis           *analysis.Report     `json:"analysis,omitempty"`
}

type optimizationView struct {
	ID             string           `json:"id"`
	Status         domain.RunStatus `json:"status"`
	Progress       float64          `json:"progress"`
	Message        string           `json:"message"`
	Error          string           `json:"error,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	StartedAt      *time.Time       `json:"startedAt"`
	FinishedAt     *time.Time       `json:"finishedAt"`
	Wardrobes      []wardrobeView   `json:"wardrobes"`
	FitnessHistory []float64        `json:"fitnessHistory"`
}

// newOptimizationView 把结果中的目录位置换回数据库中的单品 ID
func newOptimizationView(run domain.OptimizationRun) optimizationView {
	view := optimizationView{
		ID:             run.ID,
		Status:         run.Status,
		Progress:       run.Progress,
		Message:        run.Message,
		Error:          run.Error,
		CreatedAt:      run.CreatedAt,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		Wardrobes:      []wardrobeView{},
		FitnessHistory: []float64{},
	}
	if run.Result == nil {
		return view
	}
	if run.Result.FitnessHistory != nil {
		view.FitnessHistory = run.Result.FitnessHistory
	}

	for i, wardrobe := range run.Result.Wardrobes {
		wv := wardrobeView{
			Rank:               i + 1,
			GarmentIDs:         make([]int64, len(wardrobe.GarmentIDs)),
			Garments:           make([]*domain.Garment, len(wardrobe.GarmentIDs)),
			Fitness:            wardrobe.Fitness,
			OutfitQuality:      wardrobe.OutfitQuality,
			SustainabilityMean: wardrobe.SustainabilityMean,
			Metrics:            wardrobe.Metrics,
		}
		for j, pos := range wardrobe.GarmentIDs {
			wv.Garments[j] = run.Catalog[pos]
			wv.GarmentIDs[j] = run.Catalog[pos].ID
		}
		if wardrobe.ValidOutfits != nil {
			wv.Outfits = make([][]int64, len(wardrobe.ValidOutfits))
			for j, outfit := range wardrobe.ValidOutfits {
				wv.Outfits[j] = make([]int64, len(outfit))
				for k, pos := range outfit {
					wv.Outfits[j][k] = run.Catalog[pos].ID
				}
			}
			// 只对最佳衣橱做 MVP 分析
			wv.Analysis = analysis.AnalyzeMVP(wv.Garments)
		}
		view.Wardrobes = append(view.Wardrobes, wv)
	}

	return view
}

func (h *Handler) CreateOptimization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DesiredSize      int                `json:"desiredSize" validate:"required,min=1"`
		MandatoryIDs     []int64            `json:"mandatoryIDs"`
		StylePreferences map[string]float64 `json:"stylePreferences"`
		Season           string             `json:"season"`
		FavoriteColors   []string           `json:"favoriteColors"`
		NotifyEmail      string             `json:"notifyEmail" validate:"omitempty,email"`
		Seed             *uint64            `json:"seed"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.DesiredSize > h.config.Optimizer.MaxDesiredSize {
		h.errorResponse(w, r, fmt.Sprintf("衣橱大小不能超过 %d", h.config.Optimizer.MaxDesiredSize))
		return
	}

	// 同一客户端在冷却时间内只能提交一次
	allowed, err := h.acquireCooldown(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !allowed {
		h.errorResponse(w, r, "提交过于频繁，请稍后再试")
		return
	}

	catalog, err := h.repository.GetAllGarments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(catalog) == 0 {
		h.errorResponse(w, r, "单品目录为空")
		return
	}

	// 必选单品从数据库 ID 换成目录位置
	positions := make(map[int64]int, len(catalog))
	for i, g := range catalog {
		positions[g.ID] = i
	}
	mandatory := make([]int, 0, len(req.MandatoryIDs))
	for _, id := range req.MandatoryIDs {
		pos, ok := positions[id]
		if !ok {
			h.errorResponse(w, r, fmt.Sprintf("必选单品 %d 不存在", id))
			return
		}
		mandatory = append(mandatory, pos)
	}

	prefs := domain.Preferences{
		DesiredSize:      req.DesiredSize,
		MandatoryIDs:     mandatory,
		StylePreferences: req.StylePreferences,
		Season:           req.Season,
		FavoriteColors:   req.FavoriteColors,
	}
	if err := utils.ValidatePreferences(&prefs, len(catalog), h.knowledge); err != nil {
		h.badRequest(w, r, err)
		return
	}

	parameters := h.config.Optimizer.Parameters
	if req.Seed != nil {
		parameters.Seed = *req.Seed
	}

	opt, err := optimizer.New(&parameters, catalog, &prefs, h.knowledge)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	run := h.Runs.Submit(prefs, catalog, req.NotifyEmail, func(reporter optimizer.Reporter) (*domain.OptimizationResult, error) {
		result := opt.Run(optimizer.MultiReporter{reporter, optimizer.LogReporter{}})
		if err := utils.ValidateOptimizationResult(result, &prefs, len(catalog)); err != nil {
			return nil, err
		}
		return result, nil
	})

	h.successResponse(w, r, "已提交优化任务", newOptimizationView(run))
}

func (h *Handler) GetOptimization(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(OptimizationRunCtx).(domain.OptimizationRun)

	h.successResponse(w, r, "获取优化任务成功", newOptimizationView(run))
}

func (h *Handler) ExportOptimization(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(OptimizationRunCtx).(domain.OptimizationRun)

	if run.FinishedAt == nil {
		h.errorResponse(w, r, "优化任务尚未完成")
		return
	}

	f, err := export.Workbook(run)
	if err != nil {
		switch {
		case errors.Is(err, export.ErrNoResult):
			h.errorResponse(w, r, "优化任务没有可导出的结果")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ecocloset-%s.xlsx"`, run.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

// acquireCooldown 没有配置 redis 或冷却时间为 0 时总是允许
func (h *Handler) acquireCooldown(r *http.Request) (bool, error) {
	if h.redisClient == nil || h.config.Optimizer.Cooldown <= 0 {
		return true, nil
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	return h.redisClient.SetNX(
		ctx,
		fmt.Sprintf("optimization_cooldown_%s", ip),
		1,
		time.Duration(h.config.Optimizer.Cooldown)*time.Second,
	).Result()
}

// onRunFinished 更新指标，并在留有邮箱时通过消息队列发送结果通知
func (h *Handler) onRunFinished(run domain.OptimizationRun) {
	metrics.RunFinished(run)

	if run.NotifyEmail == "" || h.mailChannel == nil {
		return
	}

	data := domain.WardrobeReadyMailData{
		RunID:     run.ID,
		Status:    string(run.Status),
		Wardrobes: []domain.WardrobeReadyMailOption{},
	}
	if run.Result != nil {
		data.Generations = len(run.Result.FitnessHistory)
		for i, wardrobe := range run.Result.Wardrobes {
			option := domain.WardrobeReadyMailOption{
				Rank:          i + 1,
				Fitness:       wardrobe.Fitness,
				OutfitQuality: wardrobe.OutfitQuality,
				GarmentNames:  make([]string, len(wardrobe.GarmentIDs)),
				OutfitCount:   len(wardrobe.ValidOutfits),
			}
			for j, pos := range wardrobe.GarmentIDs {
				option.GarmentNames[j] = run.Catalog[pos].Name
			}
			data.Wardrobes = append(data.Wardrobes, option)
		}
	}

	mailData, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeWardrobeReady,
		To:   run.NotifyEmail,
		Data: data,
	})
	if err != nil {
		slog.Error("无法序列化邮件", "id", run.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("无法发送邮件到消息队列", "id", run.ID, "error", err)
		return
	}

	slog.Info("已投递衣橱通知邮件", "id", run.ID, "to", run.NotifyEmail)
}
