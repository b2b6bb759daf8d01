// Command vgdraw replays gesture scripts through the drawing commands and
// inspects the documents they produce.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/vgcore"
)

type globalFlags struct {
	config  string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	root := &cobra.Command{
		Use:          "vgdraw",
		Short:        "Replay drawing gestures into documents and images",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			vgcore.SetLogger(slog.New(h))
		},
	}
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "TOML configuration `file`")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug messages")

	root.AddCommand(
		newRenderCmd(&flags),
		newInfoCmd(),
		newSVGCmd(),
	)
	return root
}

func (f *globalFlags) loadConfig() (*vgcore.Config, error) {
	if f.config == "" {
		return vgcore.Load()
	}
	cfg, err := vgcore.LoadFile(f.config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
