package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/utils"
)

func (h *Handler) GetAllGarments(w http.ResponseWriter, r *http.Request) {
	garments, err := h.repository.GetAllGarments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if garments == nil {
		garments = []*domain.Garment{}
	}

	h.successResponse(w, r, "获取单品列表成功", garments)
}

func (h *Handler) GetGarment(w http.ResponseWriter, r *http.Request) {
	garment := r.Context().Value(GarmentCtx).(*domain.Garment)

	h.successResponse(w, r, "获取单品成功", garment)
}

func (h *Handler) CreateGarment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name" validate:"required,max=100"`
		Category       string `json:"category" validate:"required"`
		Color          string `json:"color" validate:"required"`
		Style          string `json:"style" validate:"required"`
		Material       string `json:"material" validate:"required"`
		Season         string `json:"season" validate:"required"`
		Sustainability int32  `json:"sustainability" validate:"required,min=1,max=5"`
		Image          string `json:"image" validate:"omitempty,url"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	garment := &domain.Garment{
		Name:           req.Name,
		Category:       domain.Category(req.Category),
		Color:          req.Color,
		Style:          req.Style,
		Material:       req.Material,
		Season:         req.Season,
		Sustainability: req.Sustainability,
		Image:          req.Image,
	}

	// 风格、材质等必须是知识库中已知的取值
	if err := utils.ValidateGarment(garment, h.knowledge); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateGarment(garment); err != nil {
		h.garmentWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建单品成功", garment)
}

func (h *Handler) UpdateGarment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           *string `json:"name" validate:"omitempty,max=100"`
		Category       *string `json:"category"`
		Color          *string `json:"color"`
		Style          *string `json:"style"`
		Material       *string `json:"material"`
		Season         *string `json:"season"`
		Sustainability *int32  `json:"sustainability" validate:"omitempty,min=1,max=5"`
		Image          *string `json:"image" validate:"omitempty,url"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 中间件里取出的单品是独立的副本，可以直接修改
	garment := r.Context().Value(GarmentCtx).(*domain.Garment)

	if req.Name != nil {
		garment.Name = *req.Name
	}
	if req.Category != nil {
		garment.Category = domain.Category(*req.Category)
	}
	if req.Color != nil {
		garment.Color = *req.Color
	}
	if req.Style != nil {
		garment.Style = *req.Style
	}
	if req.Material != nil {
		garment.Material = *req.Material
	}
	if req.Season != nil {
		garment.Season = *req.Season
	}
	if req.Sustainability != nil {
		garment.Sustainability = *req.Sustainability
	}
	if req.Image != nil {
		garment.Image = *req.Image
	}

	if err := utils.ValidateGarment(garment, h.knowledge); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateGarment(garment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "单品已被修改，请重试")
		default:
			h.garmentWriteError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新单品成功", garment)
}

func (h *Handler) DeleteGarment(w http.ResponseWriter, r *http.Request) {
	garment := r.Context().Value(GarmentCtx).(*domain.Garment)

	if err := h.repository.DeleteGarment(garment.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除单品成功", nil)
}

func (h *Handler) garmentWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch {
		case pgErr.ConstraintName == "garments_name_key":
			h.badRequest(w, r, errors.New("单品名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
	default:
		h.internalServerError(w, r, err)
	}
}
