// Package webserver exposes the runner, usage ledger and model catalogue over HTTP
package webserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/genum-ai/genum/internal/llm"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/runner"
	"github.com/genum-ai/genum/internal/usage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// WebServer represents a simple HTTP server
type WebServer struct {
	APIPort      string
	server       *http.Server
	addr         net.Addr
	router       *chi.Mux
	llmHandler   *llm.LLMHandler
	runHandler   *runner.RunHandler
	usageHandler *usage.Handler
	logger       logger.Logger
}

// NewWebServer creates a new WebServer instance with the specified API port
func NewWebServer(
	apiPort string,
	llmHandler *llm.LLMHandler,
	runHandler *runner.RunHandler,
	usageHandler *usage.Handler,
	log logger.Logger,
) *WebServer {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	ws := &WebServer{
		APIPort:      apiPort,
		router:       r,
		llmHandler:   llmHandler,
		runHandler:   runHandler,
		usageHandler: usageHandler,
		logger:       logger.OrDiscard(log),
	}
	ws.setupRoutes()

	return ws
}

// Router returns the chi router to allow adding routes from outside
func (ws *WebServer) Router() *chi.Mux {
	return ws.router
}

func (ws *WebServer) setupRoutes() {
	ws.router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	ws.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/vendors", ws.llmHandler.ListProvidersHTTPHandler())
		r.Get("/vendors/{vendor}", ws.llmHandler.GetProviderByIDHTTPHandler())
		r.Post("/cost", ws.llmHandler.CostHTTPHandler())

		r.Post("/runs", ws.runHandler.HandleRun())
		r.Get("/runs", ws.usageHandler.ListRunsHTTPHandler())
		r.Get("/usage/summary", ws.usageHandler.SummaryHTTPHandler())
	})
}

// Start listens on the configured port and serves in the background
func (ws *WebServer) Start() error {
	ws.server = &http.Server{
		Addr:              ":" + ws.APIPort,
		Handler:           ws.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", ws.server.Addr)
	if err != nil {
		return err
	}

	ws.addr = listener.Addr()
	ws.logger.Info("API server listening", map[string]interface{}{"addr": ws.addr.String()})

	go func() {
		if err := ws.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ws.logger.Error("API server stopped", map[string]interface{}{logger.ErrorKey: err})
		}
	}()

	return nil
}

// Addr returns the bound address once the server has started
func (ws *WebServer) Addr() net.Addr {
	return ws.addr
}

// Stop gracefully shuts down the server with a timeout
func (ws *WebServer) Stop() error {
	if ws.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := ws.server.Shutdown(ctx); err != nil {
		return err
	}

	ws.logger.Info("API server stopped", nil)
	return nil
}
