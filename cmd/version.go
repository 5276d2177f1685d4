package cmd

import (
	"fmt"

	"github.com/bnema/wlrwrap/native/wlroots"
	"github.com/spf13/cobra"
)

var (
	// Version info set by main package
	Version = "0.1.0-dev"
	Commit  string
	Date    string
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wlrwrap %s\n", Version)
			if Commit != "" {
				fmt.Fprintf(out, "commit: %s\n", Commit)
			}
			if Date != "" {
				fmt.Fprintf(out, "built: %s\n", Date)
			}
			fmt.Fprintf(out, "wlroots binding: %v\n", wlroots.Available())
		},
	}
}
