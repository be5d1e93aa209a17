package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mercauca/internal/eventbus"
	"mercauca/internal/logger"
	"mercauca/internal/ui"
)

// uiEvents are the bus events the storefront reacts to
var uiEvents = []eventbus.EventType{
	eventbus.EventSessionStarted,
	eventbus.EventSessionEnded,
	eventbus.EventCartChanged,
	eventbus.EventCheckoutCompleted,
	eventbus.EventProductPublished,
	eventbus.EventError,
}

func runTUI(opts *options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := ui.NewModel(ui.Deps{
		Config:  e.cfg,
		Backend: e.client,
		Store:   e.store,
		Bus:     e.bus,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Bus handlers run on their own goroutines, so events may arrive in any
	// order. A single forwarder keeps p.Send off the bus goroutines.
	events := make(chan eventbus.DomainEvent, 100)
	for _, t := range uiEvents {
		unsubscribe := e.bus.Subscribe(t, func(ev eventbus.DomainEvent) {
			select {
			case events <- ev:
			default:
				logger.Warn("event channel full, dropping event", zap.String("type", string(ev.Type())))
			}
		})
		defer unsubscribe()
	}
	go func() {
		for {
			select {
			case ev := <-events:
				p.Send(ui.EventMsg{Event: ev})
			case <-ctx.Done():
				return
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("terminated, quitting")
			p.Quit()
		case <-ctx.Done():
		}
	}()

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", zap.Error(err))
		return fmt.Errorf("failed to run storefront: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}
