package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	chatService "github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/chat"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/pipeline"
	"github.com/AquinasRousseau/sentiment-chatbot-api/pkg/utils"
)

const (
	// SessionHeader 请求与响应中携带会话 ID 的头部。
	SessionHeader = "X-Session-ID"
	// SessionCookie 浏览器端保存会话 ID 的 cookie 名称。
	SessionCookie = "session_id"

	maxBodyBytes    = 64 << 10
	maxSessionIDLen = 128
)

// Analyzer 处理一条用户消息并返回分析结果。
type Analyzer interface {
	Handle(ctx context.Context, sessionID, message string) (pipeline.Result, error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc  *chatService.Service
	analyzer Analyzer
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, analyzer Analyzer) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		analyzer: analyzer,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Get("/session/{sessionID}/transcript", h.handleTranscript)
}

// HandleAnalyze 处理 POST /analyze-chat。
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, pipeline.ErrEmptyMessage.Error())
		return
	}

	sessionID, ok := resolveSessionID(r, payload.SessionID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	result, err := h.analyzer.Handle(r.Context(), sessionID, payload.Message)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[chat] analyze failed session=%s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	w.Header().Set(SessionHeader, sessionID)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondJSON(w, http.StatusOK, result)
}

// resolveSessionID 依次从请求体、头部、cookie 中取会话 ID，都没有时生成新的。
func resolveSessionID(r *http.Request, fromBody string) (string, bool) {
	candidates := []string{fromBody, r.Header.Get(SessionHeader)}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		candidates = append(candidates, cookie.Value)
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		return candidate, ValidSessionID(candidate)
	}
	return uuid.NewString(), true
}

// ValidSessionID 校验客户端提供的会话 ID：1 到 128 个字符，仅允许字母、数字与 "._-"。
func ValidSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// handleCreateSession 创建会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(SessionHeader, session.ID)
	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleGetSession 查询会话元数据
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

// handleTranscript 返回会话的对话记录
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	transcript, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"turns":     transcript,
	})
}
