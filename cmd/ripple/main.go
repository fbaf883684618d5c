package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/ripple/internal/app"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "ripple",
		Short: "Ripple-trim a row of clips in the terminal",
		Long: `ripple shows a row of contiguous clips. Select a clip, then drag its
left or right handle with the mouse (or nudge it from the keyboard) to trim
it; neighbouring clips ripple so the row never has gaps.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(opts).Run()
		},
	}
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $RIPPLE_CONFIG_HOME/config.toml)")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	cmd.Flags().Float64SliceVar(&opts.Widths, "clips", nil, "initial clip widths, e.g. 200,150,240")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ripple:", err)
		os.Exit(1)
	}
}
