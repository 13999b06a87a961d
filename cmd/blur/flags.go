package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/blur"
)

// addBlurFlags registers the flags shared by every command that runs a blur.
func addBlurFlags(cmd *cobra.Command) {
	cmd.Flags().String("kernel", blur.KernelCone, "Kernel shape (cone, box, binomial)")
	cmd.Flags().Int("radius", 1, "Kernel radius; the kernel is 2*radius+1 wide")
	cmd.Flags().Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	cmd.Flags().Int("passes", 1, "Number of times the blur is applied")
	cmd.Flags().String("partition", blur.PartitionLastAbsorbs.String(), "Row partition strategy (last, balanced)")
}

type blurConfig struct {
	kernel blur.Kernel
	passes int
	opts   []blur.Option
}

func readBlurFlags(cmd *cobra.Command) (blurConfig, error) {
	kernelName, _ := cmd.Flags().GetString("kernel")
	radius, _ := cmd.Flags().GetInt("radius")
	workers, _ := cmd.Flags().GetInt("workers")
	passes, _ := cmd.Flags().GetInt("passes")
	partitionName, _ := cmd.Flags().GetString("partition")

	kernel, err := blur.KernelByName(kernelName, radius)
	if err != nil {
		return blurConfig{}, err
	}
	partition, err := blur.ParsePartition(partitionName)
	if err != nil {
		return blurConfig{}, err
	}

	return blurConfig{
		kernel: kernel,
		passes: passes,
		opts:   []blur.Option{blur.WithWorkers(workers), blur.WithPartition(partition)},
	}, nil
}

// printer formats counts with digit grouping.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}
