package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/config"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/handler/chat"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/handler/demo"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/handler/template"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/handler/ws"
	middlewarePkg "github.com/AquinasRousseau/sentiment-chatbot-api/internal/middleware"
	tmplstore "github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/template"
	chatService "github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/chat"
	"github.com/AquinasRousseau/sentiment-chatbot-api/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(serverCfg config.ServerConfig, templates tmplstore.Store, chatSvc *chatService.Service, analyzer chat.Analyzer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(serverCfg.AllowedOrigins))

	// 仅在使用演示默认密钥时把密钥预填到页面中。
	demoKey := ""
	if serverCfg.APIKey == config.DefaultAPIKey {
		demoKey = serverCfg.APIKey
	}
	r.Method(http.MethodGet, "/", demo.New(demoKey))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	chatHandler := chat.New(chatSvc, analyzer)
	templateHandler := template.New(templates)
	wsHandler := ws.New(analyzer, serverCfg.AllowedOrigins)

	r.Group(func(protected chi.Router) {
		protected.Use(middlewarePkg.APIKey(serverCfg.APIKey))

		protected.Post("/analyze-chat", chatHandler.HandleAnalyze)

		protected.Route("/api", func(api chi.Router) {
			chatHandler.RegisterRoutes(api)
			templateHandler.RegisterRoutes(api)
			wsHandler.RegisterRoutes(api)
		})
	})

	return r
}
