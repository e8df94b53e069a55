package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/store"
	"github.com/netlab-project/netlab/pkg/topoconv"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Save, load, and list topologies in the configured store",
	Long: `Store topology documents to disk (--store-dir, the default) or to
Redis (--store-addr). The document shape is the editor's {nodes, edges}
format, the same one 'netsim simulate' and 'netsim convert' read.`,
}

func resolveStore() store.Store {
	if app.storeAddr != "" {
		return store.NewRedisStore(app.storeAddr)
	}
	return store.NewFileStore(app.storeDir)
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <topology.json> <name>",
	Short: "Save a topology document under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, name := args[0], args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		doc, err := topoconv.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := resolveStore().Save(context.Background(), name, doc); err != nil {
			return fmt.Errorf("saving %q: %w", name, err)
		}
		fmt.Printf("saved %q (%d nodes, %d edges)\n", name, len(doc.Nodes), len(doc.Edges))
		return nil
	},
}

var storeLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a saved topology document and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := resolveStore().Load(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("loading %q: %w", args[0], err)
		}
		return printJSON(doc)
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved topology names",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := resolveStore().List(context.Background())
		if err != nil {
			return fmt.Errorf("listing store: %w", err)
		}
		if len(names) == 0 {
			fmt.Println("(no saved topologies)")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeSaveCmd, storeLoadCmd, storeListCmd)
}
