// Command beamdecode decodes a cost matrix against a text-format decoding
// graph and prints the best output label sequence.
//
// Usage:
//
//	beamdecode decode --graph graph.fst.txt --scores costs.txt
//	beamdecode decode --graph graph.fst.txt --scores costs.txt --chunk 10
//
// The scores file holds one frame per line, whitespace-separated costs with
// column j scoring output symbol j+1. With --chunk N the matrix is fed to
// the decoder N frames at a time through the incremental API, exercising the
// same code path a live audio feed would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "beamdecode",
		Short:         "Best-path decoding over weighted finite-state graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDecodeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
