package cli

import (
	"fmt"

	"go.uber.org/zap"

	"mercauca/internal/api"
	"mercauca/internal/config"
	"mercauca/internal/eventbus"
	"mercauca/internal/logger"
	"mercauca/internal/session"
	"mercauca/internal/ui/commands"
)

// env holds what every command needs once the config is resolved
type env struct {
	cfg    *config.Config
	client *api.Client
	store  session.Store
	bus    eventbus.EventBus
}

// loadConfig reads the config file, then applies environment and flag
// overrides in that order
func loadConfig(opts *options) (*config.Config, error) {
	svc := config.NewConfigServiceAt(opts.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(nil)
	if opts.apiURL != "" {
		cfg.APIURL = opts.apiURL
	}
	if opts.reduceMotion {
		cfg.Carousel.ReduceMotion = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", svc.Path(), err)
	}
	return cfg, nil
}

func setup(opts *options) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log.Level, cfg.LogFile()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := session.Open(cfg.SessionDir())
	if err != nil {
		return nil, err
	}
	logger.Info("mercauca starting",
		zap.String("version", Version),
		zap.String("api", cfg.APIURL),
		zap.Bool("reduce_motion", cfg.Carousel.ReduceMotion))

	return &env{
		cfg:    cfg,
		client: api.NewClient(cfg.APIURL, api.WithTimeout(cfg.Timeout())),
		store:  store,
		bus:    eventbus.New(),
	}, nil
}

// executor returns the command executor shared with the TUI
func (e *env) executor() *commands.Executor {
	return commands.NewExecutor(e.commandContext())
}

func (e *env) commandContext() commands.CommandContext {
	return commands.CommandContext{
		Backend:  e.client,
		Store:    e.store,
		Bus:      e.bus,
		Timeout:  e.cfg.Timeout(),
		Currency: e.cfg.Shop.Currency,
	}
}

func (e *env) Close() {
	e.bus.Close()
	if err := e.store.Close(); err != nil {
		logger.Error("failed to close session store", zap.Error(err))
	}
	_ = logger.Sync()
}
