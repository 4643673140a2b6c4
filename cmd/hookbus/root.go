package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/hookbus/internal/config"
	"github.com/dshills/hookbus/internal/event"
	"github.com/dshills/hookbus/internal/script"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "hookbus",
		Short: "Synchronous event dispatcher driven by Lua hooks",
		Long: `hookbus registers named events, loads Lua scripts that attach
listeners and global hooks, and dispatches events synchronously,
printing every collected result as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (TOML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCmd(opts),
		newEventsCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// session is a dispatcher with its scripts loaded.
type session struct {
	dispatcher *event.Dispatcher
	state      *script.State
}

// openSession loads configuration, registers configured events and runs the
// configured scripts followed by extra.
func (o *rootOptions) openSession(ctx context.Context, extra []string) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.OverrideLogLevel(o.logLevel); err != nil {
		return nil, err
	}

	logger := cfg.Logging.NewLogger(o.stderr)
	d := event.New(event.WithLogger(logger))
	for _, name := range cfg.Events.Register {
		d.Register(name)
	}

	state, err := script.NewState(d, script.WithContext(ctx), script.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create script state: %w", err)
	}

	scripts := append(append([]string{}, cfg.Events.Scripts...), extra...)
	for _, path := range scripts {
		logger.Debug("loading script", "path", path)
		if err := state.DoFile(path); err != nil {
			_ = state.Close()
			return nil, fmt.Errorf("failed to load script %s: %w", path, err)
		}
	}

	return &session{
		dispatcher: d,
		state:      state,
	}, nil
}

func (s *session) Close() error {
	return s.state.Close()
}
