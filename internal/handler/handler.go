package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/config"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/metrics"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/runs"
)

// GarmentRepository 单品目录的存储，由 repository.Repository 实现
type GarmentRepository interface {
	CreateGarment(garment *domain.Garment) error
	GetGarmentByID(id int64) (*domain.Garment, error)
	GetAllGarments() ([]*domain.Garment, error)
	UpdateGarment(garment *domain.Garment) error
	DeleteGarment(id int64) error
}

// MailPublisher 把邮件投递到消息队列，由 *amqp.Channel 实现
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// CooldownStore 用于限制同一客户端的提交频率，由 *redis.Client 实现
type CooldownStore interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	repository        GarmentRepository
	translator        ut.Translator
	mailChannel       MailPublisher
	redisClient       CooldownStore
	knowledge         *knowledge.Base
	adminPasswordHash []byte

	Runs *runs.Store
	Mux  *chi.Mux
}

func NewHandler(cfg *config.Config, repo GarmentRepository, mailCh MailPublisher, rdb CooldownStore, kb *knowledge.Base) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 管理员密码只在内存中保存哈希
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		validate:          validate,
		config:            cfg,
		repository:        repo,
		translator:        trans,
		mailChannel:       mailCh,
		redisClient:       rdb,
		knowledge:         kb,
		adminPasswordHash: passwordHash,

		Mux: chi.NewRouter(),
	}

	h.Runs = runs.NewStore(
		cfg.Optimizer.MaxConcurrentRuns,
		time.Duration(cfg.Optimizer.RunRetention)*time.Second,
		runs.Hooks{
			OnStart:  metrics.RunStarted,
			OnFinish: h.onRunFinished,
		},
	)

	return h, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(metrics.Middleware())

	h.Mux.Handle("/metrics", promhttp.Handler())

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 搭配知识
	h.Mux.Route("/knowledge", func(r chi.Router) {
		r.Get("/styles", h.GetStyles)
		r.Get("/seasons", h.GetSeasons)
		r.Get("/palettes/{season}", h.GetPalette)
	})

	// 单品目录，读取公开，修改需要管理员登录
	h.Mux.Route("/garments", func(r chi.Router) {
		r.Get("/", h.GetAllGarments)
		r.With(h.auth).Post("/", h.CreateGarment)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.garment)
			r.Get("/", h.GetGarment)
			r.With(h.auth).Patch("/", h.UpdateGarment)
			r.With(h.auth).Delete("/", h.DeleteGarment)
		})
	})

	// 衣橱优化
	h.Mux.Route("/optimizations", func(r chi.Router) {
		r.Post("/", h.CreateOptimization)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.optimizationRun)
			r.Get("/", h.GetOptimization)
			r.Get("/export", h.ExportOptimization)
		})
	})
}
