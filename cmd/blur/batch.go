package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/blur"
	"github.com/gogpu/blur/internal/image"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Blur many image files into an output directory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	cmd.Flags().StringP("output", "o", "", "Output directory")
	cmd.Flags().Int("jobs", 2, "Files processed concurrently")
	addBlurFlags(cmd)
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("output")
	jobs, _ := cmd.Flags().GetInt("jobs")

	cfg, err := readBlurFlags(cmd)
	if err != nil {
		return err
	}
	outputs, err := batchOutputs(outDir, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// One orchestrator serves every job; its pool is shared.
	o := blur.New(cfg.opts...)
	defer o.Close()

	var pixels atomic.Int64
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(jobs, 1))

	for i, in := range args {
		g.Go(func() error {
			src, err := image.Load(in)
			if err != nil {
				return err
			}
			out, err := o.RunPasses(ctx, src, cfg.kernel, cfg.passes)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if err := image.Save(outputs[i], out); err != nil {
				return err
			}
			pixels.Add(int64(src.Width * src.Height))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer().Fprintf(cmd.OutOrStdout(), "Blurred %d files (%d pixels) into %s\n", len(args), pixels.Load(), outDir)
	return nil
}

// batchOutputs maps each input to outDir/<base name>. Two inputs sharing a
// base name would write the same file, so they are rejected up front.
func batchOutputs(outDir string, inputs []string) ([]string, error) {
	seen := make(map[string]string, len(inputs))
	outputs := make([]string, len(inputs))
	for i, in := range inputs {
		base := filepath.Base(in)
		if prev, ok := seen[base]; ok {
			return nil, fmt.Errorf("inputs %s and %s both write %s", prev, in, filepath.Join(outDir, base))
		}
		seen[base] = in
		outputs[i] = filepath.Join(outDir, base)
	}
	return outputs, nil
}
