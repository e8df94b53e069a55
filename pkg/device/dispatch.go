package device

import (
	"github.com/netlab-project/netlab/pkg/mactable"
	"github.com/netlab-project/netlab/pkg/model"
)

// Process dispatches one ingress event to the behavior matching node's
// type tag. tables holds one MAC table per switch node, keyed by node id;
// it is nil or ignored for non-switch node types.
func Process(node *model.Node, ifaceID string, pkt *model.Packet, topo *model.Topology, tables map[string]*mactable.Table, clock int64) Result {
	switch node.Type {
	case model.NodeSwitch:
		table := tables[node.ID]
		if table == nil {
			table = mactable.New()
			tables[node.ID] = table
		}
		return ProcessSwitch(node, ifaceID, pkt, topo, table, clock)
	case model.NodeRouter:
		return ProcessRouter(node, ifaceID, pkt, topo, clock)
	case model.NodeFirewall:
		return ProcessFirewall(node, ifaceID, pkt, topo, clock)
	case model.NodeCloud:
		return ProcessCloud(node, ifaceID, pkt, clock)
	default:
		return ProcessPacket(node, ifaceID, pkt, clock)
	}
}

// NewMACTables allocates an empty MAC table for every switch node in topo.
func NewMACTables(topo *model.Topology) map[string]*mactable.Table {
	tables := make(map[string]*mactable.Table)
	for _, n := range topo.Nodes {
		if n.Type == model.NodeSwitch {
			tables[n.ID] = mactable.New()
		}
	}
	return tables
}
