package device

import (
	"fmt"

	"github.com/netlab-project/netlab/pkg/mactable"
	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/util"
)

// ProcessSwitch implements layer-2 forwarding: ingress VLAN resolution,
// MAC learning, and unicast-or-flood egress. table is the caller-owned MAC
// table for this specific switch node; switches never share state.
func ProcessSwitch(node *model.Node, ifaceID string, pkt *model.Packet, topo *model.Topology, table *mactable.Table, clock int64) Result {
	var r Result

	ingress := node.Interface(ifaceID)
	if ingress == nil {
		addTrace(&r, clock, node, ifaceID, model.TraceDrop, "Unknown ingress interface", pkt)
		return r
	}

	vlan, allowed, dropReason := resolveIngressVLAN(ingress, pkt)
	if !allowed {
		addTrace(&r, clock, node, ifaceID, model.TraceDrop, dropReason, pkt)
		return r
	}
	working := pkt.Clone()
	working.VLAN = vlan

	if node.Switch != nil && node.Switch.MACLearning {
		if table.Learn(working.SrcMAC, vlan, ifaceID, clock) {
			learned := &model.Packet{ID: working.ID, SrcMAC: working.SrcMAC, VLAN: vlan, Protocol: working.Protocol}
			addTrace(&r, clock, node, ifaceID, model.TraceLearn, fmt.Sprintf("Learned %s on %s (VLAN %d)", working.SrcMAC, ifaceID, vlan), learned)
		}
	}

	addTrace(&r, clock, node, ifaceID, model.TraceReceive, "Received on "+ifaceID, working)

	switch {
	case util.IsBroadcastMAC(working.DstMAC):
		floodEgress(&r, node, ifaceID, working, topo, vlan, "Broadcast destination, flooding", clock)
	case util.IsMulticastMAC(working.DstMAC):
		floodEgress(&r, node, ifaceID, working, topo, vlan, "Multicast destination, flooding", clock)
	default:
		if egressID, ok := table.Lookup(working.DstMAC, vlan); ok && egressID != ifaceID {
			forwardUnicast(&r, node, ifaceID, egressID, working, topo, clock)
		} else {
			floodEgress(&r, node, ifaceID, working, topo, vlan, "Unknown unicast destination, flooding", clock)
		}
	}

	return r
}

// resolveIngressVLAN applies spec §4.2's ingress VLAN resolution.
func resolveIngressVLAN(iface *model.Interface, pkt *model.Packet) (vlan int, allowed bool, dropReason string) {
	switch iface.Mode {
	case model.PortModeAccess:
		return iface.EffectiveVLAN(), true, ""
	case model.PortModeTrunk:
		v := pkt.VLAN
		if v <= 0 {
			v = 1
		}
		if !iface.AllowsVLAN(v) {
			return v, false, fmt.Sprintf("VLAN %d not allowed on trunk", v)
		}
		return v, true, ""
	default:
		return 1, true, ""
	}
}

// admitsEgress reports whether iface may transmit for the given VLAN.
func admitsEgress(iface *model.Interface, vlan int) bool {
	switch iface.Mode {
	case model.PortModeAccess:
		return iface.EffectiveVLAN() == vlan
	case model.PortModeTrunk:
		return iface.AllowsVLAN(vlan)
	default:
		return vlan == 1
	}
}

// taggedForEgress returns the packet as it should leave iface: tag stripped
// for an access port, preserved for a trunk port.
func taggedForEgress(pkt *model.Packet, iface *model.Interface) *model.Packet {
	cp := pkt.Clone()
	if iface.Mode != model.PortModeTrunk {
		cp.VLAN = 0
	}
	return cp
}

func forwardUnicast(r *Result, node *model.Node, ingressID, egressID string, pkt *model.Packet, topo *model.Topology, clock int64) {
	egress := node.Interface(egressID)
	if egress == nil || !admitsEgress(egress, pkt.VLAN) {
		return
	}
	out := taggedForEgress(pkt, egress)
	if emitTo(r, topo, node.ID, egressID, out) {
		addTrace(r, clock, node, egressID, model.TraceForward, "Forwarding to known port "+egressID, out)
	}
}

func floodEgress(r *Result, node *model.Node, ingressID string, pkt *model.Packet, topo *model.Topology, vlan int, reason string, clock int64) {
	addTrace(r, clock, node, ingressID, model.TraceFlood, reason, pkt)
	for _, iface := range node.Interfaces {
		if iface.ID == ingressID {
			continue
		}
		if !admitsEgress(iface, vlan) {
			continue
		}
		out := taggedForEgress(pkt, iface)
		emitTo(r, topo, node.ID, iface.ID, out)
	}
}
