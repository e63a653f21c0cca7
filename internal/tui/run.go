package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive flip browser and blocks until it exits.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Storage == nil {
		return fmt.Errorf("storage is required")
	}
	if cfg.Publisher == nil {
		return fmt.Errorf("feed publisher is required")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if cfg.MouseSupport {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	program := tea.NewProgram(newModel(cfg), progOpts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	return nil
}
