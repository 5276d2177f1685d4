package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bnema/wlrwrap/internal/config"
	"github.com/bnema/wlrwrap/internal/logger"
	"github.com/bnema/wlrwrap/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage wlrwrap configuration",
		Long:  `Manage wlrwrap configuration including renderer defaults and the output layout.`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSaveCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showConfig(cmd.OutOrStdout(), config.Get())
			return nil
		},
	}
}

func showConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, ui.FormatKeyValue("Config file", config.GetConfigPath()))

	fmt.Fprintln(out, ui.HeaderStyle.Render("\n[Renderer]"))
	fmt.Fprintln(out, ui.FormatKeyValue("  Size", fmt.Sprintf("%dx%d", cfg.Renderer.Width, cfg.Renderer.Height)))
	fmt.Fprintln(out, ui.FormatKeyValue("  Background", cfg.Renderer.Background))
	fmt.Fprintln(out, ui.FormatKeyValue("  Format", cfg.Renderer.Format))

	fmt.Fprintln(out, ui.HeaderStyle.Render("\n[Cursor]"))
	image := cfg.Cursor.Image
	if image == "" {
		image = "(none)"
	}
	fmt.Fprintln(out, ui.FormatKeyValue("  Image", image))
	fmt.Fprintln(out, ui.FormatKeyValue("  Hotspot", fmt.Sprintf("%d,%d", cfg.Cursor.HotspotX, cfg.Cursor.HotspotY)))
	fmt.Fprintln(out, ui.FormatKeyValue("  Scale", strconv.FormatFloat(cfg.Cursor.Scale, 'g', -1, 64)))

	fmt.Fprintln(out, ui.HeaderStyle.Render("\n[Outputs]"))
	if len(cfg.Outputs) == 0 {
		fmt.Fprintln(out, ui.SubtleStyle.Render("  none"))
	} else {
		rows := make([][]string, 0, len(cfg.Outputs))
		for _, o := range cfg.Outputs {
			pos := fmt.Sprintf("%d,%d", o.X, o.Y)
			if o.Auto {
				pos = "auto"
			}
			rows = append(rows, []string{
				o.Name,
				pos,
				fmt.Sprintf("%dx%d", o.Width, o.Height),
				strconv.FormatFloat(o.Scale, 'g', -1, 64),
			})
		}
		fmt.Fprintln(out, ui.Table([]string{"NAME", "POSITION", "SIZE", "SCALE"}, rows).String())
	}

	fmt.Fprintln(out, ui.HeaderStyle.Render("\n[Logging]"))
	level := cfg.Logging.LogLevel
	if level == "" {
		level = "(LOG_LEVEL)"
	}
	fmt.Fprintln(out, ui.FormatKeyValue("  Log level", level))
}

func newConfigSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save current configuration to file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus(true, "Configuration saved to: "+config.GetConfigPath()))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := config.GetConfigPath()
			if _, err := os.Stat(configPath); err == nil && !force {
				logger.Info("Configuration file already exists", "path", configPath)
				fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus(false, "Configuration exists, use --force to overwrite"))
				return nil
			}

			config.Set(&config.DefaultConfig)
			if err := config.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus(true, "Configuration initialized at: "+configPath))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing configuration")
	return cmd
}
