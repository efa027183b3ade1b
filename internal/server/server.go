// Package server exposes the assistant pipeline and admin workflow over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"banking-assistant/internal/admin/session"
	"banking-assistant/internal/admin/unanswered"
	"banking-assistant/internal/assistant/orchestrator"
	"banking-assistant/internal/assistant/speech"
	apperrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/observability"
)

type Server struct {
	orchestrator *orchestrator.Orchestrator
	history      orchestrator.HistoryStore
	speech       *speech.Client
	questions    *unanswered.Store
	notifier     *unanswered.Notifier
	sessions     *session.Store
	obs          *observability.Observability
	logger       logger.Logger
	errs         *apperrors.Handler

	httpServer *http.Server
}

type Deps struct {
	Orchestrator  *orchestrator.Orchestrator
	History       orchestrator.HistoryStore
	Speech        *speech.Client
	Questions     *unanswered.Store
	Notifier      *unanswered.Notifier
	Sessions      *session.Store
	Observability *observability.Observability
	Logger        logger.Logger
}

func New(addr string, deps Deps) *Server {
	s := &Server{
		orchestrator: deps.Orchestrator,
		history:      deps.History,
		speech:       deps.Speech,
		questions:    deps.Questions,
		notifier:     deps.Notifier,
		sessions:     deps.Sessions,
		obs:          deps.Observability,
		logger:       deps.Logger,
		errs:         apperrors.NewHandler(deps.Logger),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/voice", s.handleVoiceChat)
	mux.HandleFunc("GET /api/conversation/{id}", s.handleGetConversation)
	mux.HandleFunc("DELETE /api/conversation/{id}", s.handleClearConversation)
	mux.HandleFunc("GET /api/languages", s.handleLanguages)

	mux.HandleFunc("POST /api/admin/unanswered", s.handleSaveQuestion)
	mux.HandleFunc("GET /api/admin/unanswered", s.handleListQuestions)
	mux.HandleFunc("POST /api/admin/unanswered/{id}/answer", s.handleAnswerQuestion)

	mux.HandleFunc("POST /api/session", s.handleCreateSession)
	mux.HandleFunc("GET /api/session/{id}", s.handleGetSession)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
