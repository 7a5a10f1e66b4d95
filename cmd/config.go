package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/getlawrence/reporter/internal/config"
	"github.com/getlawrence/reporter/internal/logger"
	"github.com/getlawrence/reporter/internal/metrics"
	"github.com/getlawrence/reporter/internal/reporter"
	"github.com/getlawrence/reporter/internal/tracing"
	"github.com/getlawrence/reporter/internal/ui"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config   *config.Config
	Reporter *reporter.Reporter
	closers  []func() error
}

// NewAppConfig wires the logger selected by cfg, plus metrics and tracing
// exports when they are configured.
func NewAppConfig(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*AppConfig, error) {
	app := &AppConfig{Config: cfg}

	var (
		out  logger.Logger
		opts []reporter.Option
	)
	switch cfg.Output.Format {
	case config.FormatJSON:
		s := logger.NewStructured(stdout)
		plain := lipgloss.NewRenderer(stdout)
		plain.SetColorProfile(termenv.Ascii)
		opts = append(opts, reporter.WithRenderer(plain))
		app.onClose(func() error {
			// syncing a terminal or pipe fails on some platforms; nothing is lost
			_ = s.Sync()
			return nil
		})
		out = s
	case config.FormatLive:
		l := ui.NewLive(ctx, stdout)
		app.onClose(l.Close)
		opts = append(opts, reporter.WithRenderer(l.Renderer()))
		out = l
	default:
		consoleOpts := []logger.ConsoleOption{logger.WithErrorOutput(stderr)}
		if !cfg.Output.Color {
			consoleOpts = append(consoleOpts, logger.WithColorProfile(termenv.Ascii))
		}
		c := logger.NewConsole(stdout, consoleOpts...)
		opts = append(opts, reporter.WithRenderer(c.Renderer()))
		out = c
	}
	out.SetVerbose(cfg.IsVerbose())

	if path := cfg.Metrics.File; path != "" {
		recorder, err := metrics.NewRecorder()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to set up metrics: %w", err), app.Close())
		}
		app.onClose(func() error { return recorder.WriteFile(path) })
		opts = append(opts, reporter.WithObserver(recorder))
	}

	if path := cfg.Tracing.File; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create trace file: %w", err), app.Close())
		}
		provider, err := tracing.NewFileProvider(f, "reporter")
		if err != nil {
			return nil, errors.Join(err, f.Close(), app.Close())
		}
		app.onClose(func() error {
			return errors.Join(provider.Shutdown(context.Background()), f.Close())
		})
		opts = append(opts, reporter.WithTracer(provider.Tracer("github.com/getlawrence/reporter")))
	}

	app.Reporter = reporter.New(out, opts...)
	return app, nil
}

func (a *AppConfig) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (a *AppConfig) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
