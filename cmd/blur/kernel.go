package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/blur"
)

func newKernelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Print a kernel's weights and sum",
		Args:  cobra.NoArgs,
		RunE:  runKernel,
	}
	cmd.Flags().String("kernel", blur.KernelCone, "Kernel shape (cone, box, binomial)")
	cmd.Flags().Int("radius", 1, "Kernel radius")
	return cmd
}

func runKernel(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("kernel")
	radius, _ := cmd.Flags().GetInt("radius")

	k, err := blur.KernelByName(name, radius)
	if err != nil {
		return err
	}

	cell := 1
	for _, w := range k.Weights {
		cell = max(cell, len(strconv.Itoa(int(w))))
	}

	w := cmd.OutOrStdout()
	var line strings.Builder
	for row := 0; row < k.Height(); row++ {
		line.Reset()
		for col := 0; col < k.Width; col++ {
			if col > 0 {
				line.WriteByte(' ')
			}
			s := strconv.Itoa(int(k.At(col, row)))
			line.WriteString(strings.Repeat(" ", cell-len(s)))
			line.WriteString(s)
		}
		line.WriteByte('\n')
		if _, err := w.Write([]byte(line.String())); err != nil {
			return err
		}
	}
	printer().Fprintf(w, "sum: %d\n", k.Sum())
	return nil
}
