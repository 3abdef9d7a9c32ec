package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	catalogHandler "github.com/zhouzirui/skillsetter/backend/internal/handler/catalog"
	"github.com/zhouzirui/skillsetter/backend/internal/handler/chat"
	"github.com/zhouzirui/skillsetter/backend/internal/handler/live"
	pathHandler "github.com/zhouzirui/skillsetter/backend/internal/handler/path"
	"github.com/zhouzirui/skillsetter/backend/internal/handler/persona"
	middlewarePkg "github.com/zhouzirui/skillsetter/backend/internal/middleware"
	"github.com/zhouzirui/skillsetter/backend/internal/model/catalog"
	adviceService "github.com/zhouzirui/skillsetter/backend/internal/service/advice"
	chatService "github.com/zhouzirui/skillsetter/backend/internal/service/chat"
	"github.com/zhouzirui/skillsetter/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(seed *catalog.Catalog, adviceClient *adviceService.Client, chatSvc *chatService.Service, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"aiEnabled": adviceClient.Available(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		persona.New(adviceClient.Persona()).RegisterRoutes(api)
		catalogHandler.New(seed).RegisterRoutes(api)
		chat.New(chatSvc, seed).RegisterRoutes(api)
		live.New(chatSvc, log).RegisterRoutes(api)
		pathHandler.New(adviceClient, seed.DefaultPath, seed.DefaultProfile).RegisterRoutes(api)
	})

	return r
}
