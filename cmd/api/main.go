package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/config"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/handler"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/logging"
	tmplstore "github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/template"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/chat"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/classify"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/llm"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/pipeline"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/reply"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logSink := logging.Setup(cfg.Log)
	defer logSink.Close()

	chatModel, err := llm.NewChatModel(ctx, cfg.AI)
	switch {
	case errors.Is(err, llm.ErrNoModel):
		log.Printf("warning: %v", err)
		log.Println("continuing without a chat model - every reply uses default labels and the fallback text")
		chatModel = nil
	case err != nil:
		log.Fatalf("failed to initialize chat model: %v", err)
	default:
		log.Printf("chat model initialized: provider=%s model=%s", cfg.AI.Provider, cfg.AI.ModelName())
	}

	templates := tmplstore.NewMemoryStore(tmplstore.Seed())
	chatService := chat.NewService()

	p, err := buildPipeline(ctx, cfg, chatModel, templates, chatService)
	if err != nil {
		log.Fatalf("failed to build pipeline: %v", err)
	}

	go pruneSessions(ctx, chatService, cfg.Session.IdleTTL)

	router := handler.NewRouter(cfg.Server, templates, chatService, p)

	startServer(ctx, cfg.Server, router)
}

func buildPipeline(ctx context.Context, cfg *config.Config, chatModel model.BaseChatModel, templates tmplstore.Store, store chat.Store) (*pipeline.Pipeline, error) {
	policy := llm.PolicyFromConfig(cfg.AI)

	sentiment, err := classify.New(ctx, classify.SentimentTask, chatModel, policy)
	if err != nil {
		return nil, err
	}
	intent, err := classify.New(ctx, classify.IntentTask, chatModel, policy)
	if err != nil {
		return nil, err
	}

	generator, err := reply.NewGenerator(ctx, chatModel, policy.WithTemperature(cfg.AI.GenerateTemperature), cfg.AI.ReplyWordBudget)
	if err != nil {
		return nil, err
	}
	dispatcher, err := reply.NewDispatcher(templates, generator)
	if err != nil {
		return nil, err
	}

	return pipeline.New(sentiment, intent, dispatcher, store, pipeline.Options{
		Parallel:      cfg.AI.ParallelClassify,
		TranscriptCap: cfg.Session.TranscriptCap,
	}), nil
}

// pruneSessions drops idle sessions until ctx is cancelled.
func pruneSessions(ctx context.Context, svc *chat.Service, idleTTL time.Duration) {
	if idleTTL <= 0 {
		return
	}

	interval := idleTTL / 2
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := svc.PruneIdle(idleTTL); removed > 0 {
				log.Printf("[session] pruned %d idle sessions, %d active", removed, svc.Len())
			}
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if serverCfg.APIKey == config.DefaultAPIKey {
		log.Println("warning: API_KEY not set, using the demo key")
	}
	log.Printf("sentiment chatbot API listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
