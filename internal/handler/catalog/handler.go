package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/skillsetter/backend/internal/model/catalog"
	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/pkg/utils"
)

// Handler 暴露引导流程所需的种子数据
type Handler struct {
	catalog *catalog.Catalog
}

// New 创建catalog处理器
func New(c *catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

// RegisterRoutes 注册catalog相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.handleGetCatalog)
}

type catalogResponse struct {
	Roles          []learner.Aspiration    `json:"roles"`
	Skills         []learner.Skill         `json:"skills"`
	LearningStyles []learner.LearningStyle `json:"learningStyles"`
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, catalogResponse{
		Roles:          h.catalog.Roles(),
		Skills:         h.catalog.Skills(),
		LearningStyles: learner.Styles(),
	})
}
