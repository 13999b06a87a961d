// Command blur applies parallel integer convolution kernels to images.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/blur"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blur",
		Short:         "Blur images with a parallel integer convolution engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			return setupLogging(level)
		},
	}
	root.PersistentFlags().String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")

	root.AddCommand(newApplyCmd(), newKernelCmd(), newBatchCmd(), newSnapshotCmd())
	return root
}

// setupLogging installs a text handler on stderr. An empty level keeps the
// library silent.
func setupLogging(level string) error {
	if level == "" {
		blur.SetLogger(nil)
		return nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	blur.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
