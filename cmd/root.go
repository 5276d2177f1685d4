package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/wlrwrap/internal/config"
	"github.com/bnema/wlrwrap/internal/logger"
	"github.com/bnema/wlrwrap/native/headless"
	"github.com/spf13/cobra"
)

var (
	// ErrNoRenderer is returned when the backend has no renderer to offer.
	ErrNoRenderer = errors.New("no renderer available")
	// ErrCursorAlloc is returned when the native cursor cannot be allocated.
	ErrCursorAlloc = errors.New("failed to allocate cursor")
	// ErrReadPixels is returned when the render target cannot be read back.
	ErrReadPixels = errors.New("failed to read pixels")
)

// newLibrary builds the native library commands run against. Tests replace
// it to inject failures.
var newLibrary = func() *headless.Library {
	return headless.New(headless.WithLogger(logger.Named("headless")))
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "wlrwrap",
		Short: "wlrwrap - wrappers around the wlroots renderer and cursor",
		Long: `wlrwrap exercises the renderer, cursor and output layout wrappers on a
headless software backend: render scenes to PNG, list texture formats and
replay scripted input through a cursor.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(configPath)
		},
	}
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/wlrwrap/wlrwrap.toml)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFormatsCmd())
	root.AddCommand(newCursorCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads the configuration and applies its log level.
func setup(configPath string) error {
	config.SetConfigPath(configPath)
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if level := config.Get().Logging.LogLevel; level != "" {
		if err := logger.SetLevel(level); err != nil {
			return fmt.Errorf("invalid logging.log_level: %w", err)
		}
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
