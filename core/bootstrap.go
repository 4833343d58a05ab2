package core

import (
	"context"
	"fmt"

	"tradebot/config"
	"tradebot/pkg/exchange"
	"tradebot/pkg/logger"
	"tradebot/pkg/order"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// App carries what one invocation needs. Build it with Bootstrap and Close it
// on exit.
type App struct {
	Env    config.Environment
	Config *config.Config
	RunId  string
	Logger *log.Entry

	log *logger.Logger
}

func Bootstrap(env config.Environment, cfg *config.Config) (*App, error) {
	fileLevel, err := logger.ParseLevel(cfg.Log.Level, log.DebugLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	consoleLevel, err := logger.ParseLevel(cfg.Log.ConsoleLevel, log.WarnLevel)
	if err != nil {
		return nil, fmt.Errorf("bad console log level: %w", err)
	}
	l, err := logger.New(logger.Config{
		Dir:          cfg.Log.Dir,
		FileName:     cfg.Log.File,
		FileLevel:    fileLevel,
		ConsoleLevel: consoleLevel,
	})
	if err != nil {
		return nil, err
	}

	runId := uuid.NewString()
	entry := l.WithFields(log.Fields{"run": runId, "env": env.EnvName})
	entry.WithFields(log.Fields{
		"exchange": cfg.Exchange.ExchangeName,
		"baseUrl":  cfg.Exchange.BaseUrl,
	}).Info("application started")

	return &App{
		Env:    env,
		Config: cfg,
		RunId:  runId,
		Logger: entry,
		log:    l,
	}, nil
}

// Connect loads credentials and builds the configured exchange client.
func (a *App) Connect() (exchange.Exchange, error) {
	credentials, err := config.LoadCredentials(a.Config.Exchange.EnvPrefix)
	if err != nil {
		return nil, err
	}
	return exchange.NewExchange(a.Config.Exchange, credentials, a.Logger.WithField("component", "client"))
}

// Run drives one order through the pipeline.
func (a *App) Run(ctx context.Context, in Input, onValidated func(order.Intent)) Outcome {
	p := &Pipeline{
		Logger: a.Logger,
		Connect: func() (order.Placer, error) {
			e, err := a.Connect()
			if err != nil {
				return nil, err
			}
			return e, nil
		},
		OnValidated: onValidated,
	}
	return p.Run(ctx, in)
}

func (a *App) LogPath() string {
	return a.log.Path()
}

func (a *App) Close() error {
	return a.log.Close()
}
