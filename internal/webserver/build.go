package webserver

import (
	"strconv"

	"github.com/genum-ai/genum/internal/config"
	"github.com/genum-ai/genum/internal/llm"
	"github.com/genum-ai/genum/internal/logger"
	"github.com/genum-ai/genum/internal/runner"
	"github.com/genum-ai/genum/internal/usage"
)

// BuildWebserver wires the API handlers around an existing runner and usage store
func BuildWebserver(cfg config.Config, r runner.Runner, store usage.Store, log logger.Logger) *WebServer {
	return NewWebServer(
		strconv.Itoa(cfg.Server.Port),
		llm.NewLLMHandler(llm.GetSupportedLLMProviders()),
		runner.NewRunHandler(r),
		usage.NewHandler(store),
		log,
	)
}
