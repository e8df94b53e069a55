package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/cli"
	"github.com/netlab-project/netlab/pkg/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate <topology.json>",
	Short: "Check a topology for isolated nodes and disconnected components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := loadTopology(args[0])
		if err != nil {
			return err
		}

		issues := graph.New(topo).Validate()
		if len(issues) == 0 {
			fmt.Println(cli.Green("No issues found."))
			return nil
		}

		fmt.Printf("%d issue(s) found:\n", len(issues))
		for _, issue := range issues {
			fmt.Println(" -", cli.Yellow(issue))
		}
		return nil
	},
}
