package cli

import (
	"database/sql"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/job-scalper/infrastructure"
	"github.com/job-scalper/internal/client"
	"github.com/job-scalper/internal/config"
	"github.com/job-scalper/internal/controller"
	"github.com/job-scalper/internal/logging"
	"github.com/job-scalper/internal/render"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	endpoint string
	logLevel string
	noColor  bool
}

// app holds the dependencies a command needs, built once per invocation.
type app struct {
	cfg    config.Config
	logger *logrus.Logger
	client *client.JobsClient
	opts   *globalOptions
}

func newApp(opts *globalOptions) (*app, error) {
	logger := logging.NewLogger()
	config.LoadEnv(logger)
	if opts.logLevel != "" {
		logger.SetLevel(config.ParseLogLevel(opts.logLevel))
	} else {
		logger.SetLevel(config.GetLogLevel())
	}

	cfg := config.LoadConfigFromEnv()
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}

	jobsClient, err := client.NewJobsClient(client.Config{
		Endpoint:       cfg.Endpoint,
		RequestTimeout: cfg.RequestTimeout,
		MaxRPS:         cfg.MaxRPS,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, client: jobsClient, opts: opts}, nil
}

func (a *app) newController() *controller.Controller {
	return controller.New(a.client, a.logger)
}

func (a *app) textRenderer() *render.TextRenderer {
	return render.NewTextRenderer(!a.opts.noColor && !color.NoColor)
}

func (a *app) openArchive() (*sql.DB, error) {
	db, err := infrastructure.NewConnection(infrastructure.LoadConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("archive unavailable: %w", err)
	}
	a.logger.Debug("Connected to archive database")
	return db, nil
}
