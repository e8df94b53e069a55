package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/topoconv"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in.json> <out.json>",
	Short: "Convert an editor topology document into the engine's internal shape",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, outPath := args[0], args[1]

		data, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", inPath, err)
		}
		doc, err := topoconv.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", inPath, err)
		}
		topo, err := topoconv.Convert(doc)
		if err != nil {
			return fmt.Errorf("converting %q: %w", inPath, err)
		}

		out, err := json.MarshalIndent(topo, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling converted topology: %w", err)
		}
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", outPath, err)
		}
		fmt.Printf("wrote %d nodes, %d links to %s\n", len(topo.Nodes), len(topo.Links), outPath)
		return nil
	},
}
