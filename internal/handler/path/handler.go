package path

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
	"github.com/zhouzirui/skillsetter/backend/pkg/utils"
)

// Handler 学习路径的HTTP处理器
type Handler struct {
	generator   advice.PathGenerator
	defaultPath func() path.Path
	defaults    func() learner.Profile
}

// New 创建学习路径处理器
func New(generator advice.PathGenerator, defaultPath func() path.Path, defaultProfile func() learner.Profile) *Handler {
	return &Handler{generator: generator, defaultPath: defaultPath, defaults: defaultProfile}
}

// RegisterRoutes 注册学习路径相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/learning-path", h.handleGenerate)
}

// handleGenerate 校验画像后请求生成路径，无结果时回退到默认路径
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	profile := h.defaults()
	var payload learner.Profile
	err := utils.DecodeJSON(r, &payload)
	switch {
	case err == nil:
		profile = payload
	case errors.Is(err, io.EOF):
	default:
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := profile.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, advice.ResolvePath(r.Context(), h.generator, profile, h.defaultPath))
}
