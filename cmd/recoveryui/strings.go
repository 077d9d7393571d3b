package main

import (
	"recoveryui/app"
	"recoveryui/hal"

	"github.com/spf13/cobra"
)

func newStringsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "strings",
		Short: "Print the theme's string table after rendering its start page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			h := hal.New(hal.HostConfig{Width: cfg.Display.Width, Height: cfg.Display.Height, Log: log})
			a, err := app.New(cfg, log, h)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.Step(); err != nil {
				return err
			}
			return a.Resources().DumpStrings(cmd.OutOrStdout())
		},
	}
}
