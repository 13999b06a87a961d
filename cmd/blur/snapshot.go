package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/blur"
	"github.com/gogpu/blur/internal/image"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write an image, optionally blurred, as a raw zstd snapshot",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	cmd.Flags().StringP("input", "i", "", "Input image file")
	cmd.Flags().StringP("output", "o", "", "Output snapshot file")
	cmd.Flags().Bool("blur", false, "Blur before writing the snapshot")
	addBlurFlags(cmd)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	doBlur, _ := cmd.Flags().GetBool("blur")

	buf, err := image.Load(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if doBlur {
		cfg, err := readBlurFlags(cmd)
		if err != nil {
			return err
		}
		o := blur.New(cfg.opts...)
		defer o.Close()
		if buf, err = o.RunPasses(cmd.Context(), buf, cfg.kernel, cfg.passes); err != nil {
			return fmt.Errorf("blur: %w", err)
		}
	}

	if err := image.SaveRaw(outputPath, buf); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	printer().Fprintf(cmd.OutOrStdout(), "Snapshot %dx%d (%d pixels): %s\n", buf.Width, buf.Height, len(buf.Pix), outputPath)
	return nil
}
