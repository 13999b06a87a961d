package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/blur"
	"github.com/gogpu/blur/internal/image"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Blur one image file",
		Args:  cobra.NoArgs,
		RunE:  runApply,
	}
	cmd.Flags().StringP("input", "i", "", "Input image file")
	cmd.Flags().StringP("output", "o", "", "Output image file (format from extension)")
	addBlurFlags(cmd)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runApply(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	cfg, err := readBlurFlags(cmd)
	if err != nil {
		return err
	}

	src, err := image.Load(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	o := blur.New(cfg.opts...)
	defer o.Close()

	start := time.Now()
	out, err := o.RunPasses(cmd.Context(), src, cfg.kernel, cfg.passes)
	if err != nil {
		return fmt.Errorf("blur: %w", err)
	}
	elapsed := time.Since(start)

	if err := image.Save(outputPath, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	p := printer()
	p.Fprintf(cmd.OutOrStdout(), "Blurred %dx%d with %dx%d kernel (sum %d), %d pass(es), %d workers\n",
		src.Width, src.Height, cfg.kernel.Width, cfg.kernel.Height(), cfg.kernel.Sum(), cfg.passes, o.Workers())
	p.Fprintf(cmd.OutOrStdout(), "Rows:   %d in %v\n", o.Stats().Rows, elapsed.Round(time.Microsecond))
	p.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outputPath)
	return nil
}
