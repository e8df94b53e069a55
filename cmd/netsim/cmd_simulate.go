package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/netlab-project/netlab/pkg/audit"
	"github.com/netlab-project/netlab/pkg/cli"
	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/sim"
	"github.com/netlab-project/netlab/pkg/topoconv"
	"github.com/netlab-project/netlab/pkg/util"
)

var (
	simProtocol   string
	simTTL        int
	simMaxHops    int
	simTraceLevel string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <topology.json> <src-node> <dst-node>",
	Short: "Simulate one packet's journey from src to dst",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		topoPath, srcID, dstID := args[0], args[1], args[2]

		topo, err := loadTopology(topoPath)
		if err != nil {
			return err
		}

		opts := model.Options{MaxHops: app.settings.GetMaxHops(), TraceLevel: app.settings.GetTraceLevel()}
		if simMaxHops > 0 {
			opts.MaxHops = simMaxHops
		}
		if simTraceLevel != "" {
			opts.TraceLevel = model.TraceLevel(simTraceLevel)
		}

		spec := model.PacketSpec{
			SrcNodeID: srcID,
			DstNodeID: dstID,
			Protocol:  protocolOrDefault(simProtocol),
			TTL:       simTTL,
		}

		start := time.Now()
		result := sim.Simulate(topo, spec, opts)
		elapsed := time.Since(start)

		event := audit.NewEvent(topoPath, srcID, dstID).
			WithProtocol(string(spec.Protocol)).
			WithResult(result.Success, result.Delivered, result.Blocked, result.Loop, result.Reason, len(result.Trace)).
			WithDuration(elapsed)
		if err := audit.Log(event); err != nil {
			util.Logger.Warnf("could not write audit log: %v", err)
		}

		if app.jsonOutput {
			return printJSON(result)
		}

		printResult(result)
		return nil
	},
}

func protocolOrDefault(s string) model.Protocol {
	if s == "" {
		return model.ProtoICMP
	}
	return model.Protocol(s)
}

func printResult(result model.Result) {
	t := cli.NewTable("TIME", "NODE", "IFACE", "ACTION", "REASON")
	for _, hop := range result.Trace {
		t.Row(fmt.Sprintf("%d", hop.Time), hop.NodeLabel, hop.IfaceID, cli.TraceActionColor(hop.Action), hop.Reason)
	}
	t.Flush()

	fmt.Println()
	fmt.Printf("success=%v delivered=%v blocked=%v loop=%v\n", result.Success, result.Delivered, result.Blocked, result.Loop)
	if result.Reason != "" {
		fmt.Println("reason:", result.Reason)
	}
}

func loadTopology(path string) (*model.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology %q: %w", path, err)
	}
	doc, err := topoconv.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing topology %q: %w", path, err)
	}
	return topoconv.Convert(doc)
}

func init() {
	simulateCmd.Flags().StringVar(&simProtocol, "protocol", "", "protocol (icmp, tcp, udp, arp, other; default icmp)")
	simulateCmd.Flags().IntVar(&simTTL, "ttl", 0, "originating TTL override (0 = device default)")
	simulateCmd.Flags().IntVar(&simMaxHops, "max-hops", 0, "hop cap override (0 = settings default)")
	simulateCmd.Flags().StringVar(&simTraceLevel, "trace-level", "", "trace verbosity: minimal or detailed")
}
