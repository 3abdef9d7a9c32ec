package chat

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/skillsetter/backend/internal/model/catalog"
	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	chatService "github.com/zhouzirui/skillsetter/backend/internal/service/chat"
	"github.com/zhouzirui/skillsetter/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	seed    *catalog.Catalog
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, seed *catalog.Catalog) *Handler {
	return &Handler{chatSvc: chatSvc, seed: seed}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Route("/sessions/{sessionID}", func(s chi.Router) {
		s.Get("/messages", h.handleListMessages)
		s.Post("/messages", h.handleAsk)
		s.Put("/profile", h.handleUpdateProfile)
		s.Post("/onboarding", h.handleOnboarding)
	})
}

type sessionResponse struct {
	Session  chat.Session   `json:"session"`
	Messages []chat.Message `json:"messages,omitempty"`
}

type askResponse struct {
	Question chat.Message `json:"question"`
	Message  chat.Message `json:"message"`
	Fallback bool         `json:"fallback"`
}

// handleCreateSession 创建会话，未提供画像时使用默认画像
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Profile *learner.Profile `json:"profile"`
	}

	if err := utils.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, messages, err := h.chatSvc.CreateSession(r.Context(), payload.Profile)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sessionResponse{Session: session, Messages: messages})
}

// handleListMessages 返回会话记录快照
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// handleAsk 追加用户消息并同步返回顾问回复
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.chatSvc.Ask(r.Context(), chi.URLParam(r, "sessionID"), payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, askResponse{
		Question: exchange.Question,
		Message:  exchange.Answer,
		Fallback: exchange.Fallback(),
	})
}

// handleUpdateProfile 替换会话的学习者画像（完成引导流程后调用）
func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile learner.Profile
	if err := utils.DecodeJSON(r, &profile); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.chatSvc.UpdateProfile(r.Context(), chi.URLParam(r, "sessionID"), profile)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sessionResponse{Session: session})
}

// handleOnboarding 把引导问卷的学习风格和目标岗位合并进会话画像
func (h *Handler) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		LearningStyles []learner.LearningStyle `json:"learningStyles"`
		RoleID         string                  `json:"roleId"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	current, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	profile, err := h.seed.Onboard(current.Profile, payload.LearningStyles, payload.RoleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	session, err := h.chatSvc.UpdateProfile(r.Context(), sessionID, profile)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sessionResponse{Session: session})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrInvalidInput), errors.Is(err, learner.ErrInvalidProfile):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatService.ErrRequestInFlight):
		utils.RespondError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
