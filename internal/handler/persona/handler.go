package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/skillsetter/backend/internal/model/persona"
	"github.com/zhouzirui/skillsetter/backend/pkg/utils"
)

// Handler 顾问人设的HTTP处理器
type Handler struct {
	advisor persona.Advisor
}

// New 创建persona处理器
func New(advisor persona.Advisor) *Handler {
	return &Handler{advisor: advisor}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/advisor", h.handleGetAdvisor)
}

func (h *Handler) handleGetAdvisor(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.advisor)
}
