package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/cli"
	"github.com/netlab-project/netlab/pkg/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run YAML-driven regression scenarios",
}

var scenarioRunCmd = &cobra.Command{
	Use:   "run <dir>",
	Short: "Run every scenario YAML file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		scenarios, err := scenario.LoadAll(dir)
		if err != nil {
			return fmt.Errorf("loading scenarios from %q: %w", dir, err)
		}
		if len(scenarios) == 0 {
			fmt.Println("(no scenario files found)")
			return nil
		}

		const dotWidth = 40
		failed := 0
		for _, s := range scenarios {
			result, err := scenario.Run(s, dir)
			padded := cli.DotPad(s.Name, dotWidth)
			if err != nil {
				fmt.Printf("%s %s\n", padded, cli.Red("ERROR: "+err.Error()))
				failed++
				continue
			}
			if result.Passed() {
				fmt.Printf("%s %s\n", padded, cli.Green("PASS"))
				continue
			}
			fmt.Printf("%s %s\n", padded, cli.Red("FAIL"))
			for _, step := range result.Steps {
				if !step.Passed {
					fmt.Printf("  - %s: %s\n", step.Name, step.Failure)
				}
			}
			failed++
		}

		fmt.Printf("\n%d/%d scenarios passed\n", len(scenarios)-failed, len(scenarios))
		if failed > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	scenarioCmd.AddCommand(scenarioRunCmd)
}
