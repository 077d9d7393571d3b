package main

import (
	"os"

	"recoveryui/internal/config"
	"recoveryui/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	theme      string
	backend    string
	width      int
	height     int
	ticks      uint64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "recoveryui",
		Short:         "Render an XML recovery theme on a framebuffer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&flags.theme, "theme", "", "Theme zip, directory or XML file (overrides config)")
	pf.StringVar(&flags.backend, "backend", "", "Display backend: window, headless, mmap or fbdev")
	pf.IntVar(&flags.width, "width", 0, "Display width for host backends")
	pf.IntVar(&flags.height, "height", 0, "Display height for host backends")
	pf.Uint64Var(&flags.ticks, "ticks", 0, "Stop after N ticks (0 = run forever)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newStringsCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file (or the defaults) and applies flag
// overrides before validating.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	var cfg *config.Config
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		def := config.Default()
		cfg = &def
	}

	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.backend != "" {
		cfg.Display.Backend = flags.backend
	}
	if flags.width > 0 {
		cfg.Display.Width = flags.width
	}
	if flags.height > 0 {
		cfg.Display.Height = flags.height
	}
	if flags.ticks > 0 {
		cfg.Display.Ticks = flags.ticks
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	out := cmd.ErrOrStderr()
	if out == nil {
		out = os.Stderr
	}
	return logger.New(logger.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Format != "json",
		Writer:        out,
	})
}
