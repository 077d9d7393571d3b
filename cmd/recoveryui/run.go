package main

import (
	"os"
	"os/signal"
	"syscall"

	"recoveryui/app"
	"recoveryui/internal/buildinfo"

	"github.com/spf13/cobra"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Load the theme and drive the display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, flags)
		},
	}
}

func runUI(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	log.Info().Str("version", buildinfo.Short()).Str("theme", cfg.Theme).
		Str("backend", cfg.Display.Backend).Msg("starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx, cfg, log)
}
