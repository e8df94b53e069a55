// Package device implements the per-device packet-processing behaviors:
// pure functions from (node, ingress interface, packet, topology, clock
// [, mac table]) to emitted events, trace hops, and a delivered flag.
//
// There is no device interface or inheritance hierarchy; dispatch is by
// the node's type tag (model.NodeType), following the tagged-variant
// pattern for behaviors that don't share an implementation.
package device

import "github.com/netlab-project/netlab/pkg/model"

// Emission is one packet the device wants enqueued to a specific
// (node, interface). It carries no timestamp; the driver's queue stamps
// that at enqueue time.
type Emission struct {
	Packet  *model.Packet
	NodeID  string
	IfaceID string
}

// Result is the outcome of one device's processing of one ingress event.
type Result struct {
	Emissions []Emission
	Trace     []model.TraceHop
	Delivered bool
}

// addTrace appends a hop built from the current packet snapshot.
func addTrace(r *Result, t int64, node *model.Node, ifaceID string, action model.TraceAction, reason string, pkt *model.Packet) {
	r.Trace = append(r.Trace, model.NewTraceHop(t, node.ID, node.Label, ifaceID, action, reason, pkt))
}

// emitTo finds the peer of (node.ID, egressIfaceID) on topo's link set and,
// if one exists, appends an Emission to it. It reports whether a peer was
// found.
func emitTo(r *Result, topo *model.Topology, nodeID, egressIfaceID string, pkt *model.Packet) bool {
	peer, ok := topo.PeerOf(nodeID, egressIfaceID)
	if !ok {
		return false
	}
	r.Emissions = append(r.Emissions, Emission{Packet: pkt, NodeID: peer.NodeID, IfaceID: peer.IfaceID})
	return true
}
