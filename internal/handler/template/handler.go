package template

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	tmplstore "github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/template"
	"github.com/AquinasRousseau/sentiment-chatbot-api/pkg/utils"
)

// Handler 回复模板的HTTP处理器
type Handler struct {
	templates tmplstore.Store
}

// New 创建模板处理器
func New(templates tmplstore.Store) *Handler {
	return &Handler{templates: templates}
}

// RegisterRoutes 注册模板相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/templates", h.handleListTemplates)
	r.Get("/templates/{intent}", h.handleGetTemplate)
}

// handleListTemplates 列出所有模板
func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.templates.List())
}

// handleGetTemplate 按意图查询模板
func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	item, ok := h.templates.FindByIntent(chi.URLParam(r, "intent"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "template not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
