package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/knowledge"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/palette"
)

func (h *Handler) GetStyles(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取风格列表成功", map[string]any{
		"styles":     h.knowledge.Styles,
		"materials":  h.knowledge.Materials,
		"categories": domain.Categories,
		"seasons":    h.knowledge.GarmentSeasons,
		"colors":     h.knowledge.Colors(),
	})
}

func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons := h.knowledge.Seasons
	if seasons == nil {
		seasons = []knowledge.Season{}
	}
	h.successResponse(w, r, "获取色彩季型成功", seasons)
}

// GetPalette 返回季型的推荐调色板，favorite 参数以逗号分隔
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")

	var favorites []string
	if raw := r.URL.Query().Get("favorite"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				favorites = append(favorites, c)
			}
		}
	}

	_, known := h.knowledge.Season(season)
	colors := palette.New(h.knowledge).Recommended(season, favorites).Colors()

	h.successResponse(w, r, "获取推荐调色板成功", map[string]any{
		"season": season,
		"known":  known,
		"colors": colors,
	})
}
