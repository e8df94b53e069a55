package model

// TraceAction is the closed set of actions a device can record in a hop.
type TraceAction string

const (
	TraceReceive  TraceAction = "receive"
	TraceForward  TraceAction = "forward"
	TraceFlood    TraceAction = "flood"
	TraceDrop     TraceAction = "drop"
	TraceDeliver  TraceAction = "deliver"
	TraceLearn    TraceAction = "learn"
	TraceRoute    TraceAction = "route"
	TraceARP      TraceAction = "arp"
	TraceACLAllow TraceAction = "acl-allow"
	TraceACLDeny  TraceAction = "acl-deny"
)

// TraceHop is one timestamped record of a device's decision about a packet.
// Hops are append-only: once emitted, a hop is never edited.
type TraceHop struct {
	Time      int64       `json:"time"`
	NodeID    string      `json:"node_id"`
	NodeLabel string      `json:"node_label"`
	IfaceID   string      `json:"iface_id,omitempty"`
	Action    TraceAction `json:"action"`
	Reason    string      `json:"reason"`
	Packet    *Packet     `json:"packet"`
}

// NewTraceHop builds a hop, snapshotting pkt so later mutation of the live
// packet can never retroactively change a previously emitted hop.
func NewTraceHop(t int64, nodeID, nodeLabel, ifaceID string, action TraceAction, reason string, pkt *Packet) TraceHop {
	return TraceHop{
		Time:      t,
		NodeID:    nodeID,
		NodeLabel: nodeLabel,
		IfaceID:   ifaceID,
		Action:    action,
		Reason:    reason,
		Packet:    pkt.Clone(),
	}
}

// IsTerminal reports whether the action ends a packet's journey.
func (a TraceAction) IsTerminal() bool {
	switch a {
	case TraceDrop, TraceDeliver, TraceACLDeny:
		return true
	default:
		return false
	}
}
