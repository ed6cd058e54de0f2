// Package server initializes and runs the symptom checker backend. It wires
// the storage layer, the identity and symptom check services, the analysis
// gateway, and the HTTP server, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"

	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/analysis"
	"github.com/medassist/symptomchecker/internal/server/config"
	"github.com/medassist/symptomchecker/internal/server/httpapi"
	"github.com/medassist/symptomchecker/internal/server/metrics"
	"github.com/medassist/symptomchecker/internal/server/shared/db"
	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
	"github.com/medassist/symptomchecker/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      db.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewDefault()

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	userService := users.NewService(rm.Users())

	client := openai.NewClient(c.OpenAIAPIKey)
	gateway := analysis.NewGateway(client, c, logger, m)

	checkService := symptomchecks.NewService(rm.SymptomChecks(), gateway, logger)

	handlers := httpapi.NewHandlers(userService, checkService, gateway, rm.Conn(), logger)
	router := httpapi.NewRouter(handlers, logger, m, registry)
	httpServer := httpapi.NewServer(c, router.Setup(), logger)

	return &App{config: c, logger: logger, repos: rm, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}

	app.logger.Info(ctx, "Shutdown complete")
}
