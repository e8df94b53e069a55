package device

import (
	"fmt"

	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/util"
)

// ProcessRouter implements layer-3 forwarding: consume-for-self, TTL
// handling, directly-connected delivery, and longest-prefix-match static
// routing.
func ProcessRouter(node *model.Node, ifaceID string, pkt *model.Packet, topo *model.Topology, clock int64) Result {
	var r Result

	if node.HasInterfaceIP(pkt.DstIP) {
		addTrace(&r, clock, node, ifaceID, model.TraceDeliver, "Delivered to "+node.Label, pkt)
		r.Delivered = true
		return r
	}

	if pkt.TTL <= 1 {
		addTrace(&r, clock, node, ifaceID, model.TraceDrop, "TTL expired", pkt)
		return r
	}
	working := pkt.Clone()
	working.TTL--

	addTrace(&r, clock, node, ifaceID, model.TraceReceive, "Received on "+ifaceID, working)

	if working.DstIP == "" {
		addTrace(&r, clock, node, ifaceID, model.TraceDrop, "No destination IP for routing", working)
		return r
	}

	if egress, reason := directlyConnectedEgress(node, ifaceID, working.DstIP); egress != nil {
		out := working.Clone()
		out.SrcMAC = egress.MAC
		if emitTo(&r, topo, node.ID, egress.ID, out) {
			addTrace(&r, clock, node, egress.ID, model.TraceRoute, reason, out)
		}
		return r
	}

	if route := longestPrefixMatch(node.Router, working.DstIP); route != nil {
		egress := node.Interface(route.EgressID)
		if egress != nil {
			out := working.Clone()
			out.SrcMAC = egress.MAC
			if emitTo(&r, topo, node.ID, egress.ID, out) {
				addTrace(&r, clock, node, egress.ID, model.TraceRoute,
					fmt.Sprintf("Routing via static route %s next-hop %s", route.Prefix, route.NextHopIP), out)
			}
		}
		return r
	}

	addTrace(&r, clock, node, ifaceID, model.TraceDrop, "No route to "+working.DstIP, working)
	return r
}

// directlyConnectedEgress checks every non-ingress interface with an IP for
// subnet containment of dstIP, in configured interface order. First match
// wins.
func directlyConnectedEgress(node *model.Node, ingressID, dstIP string) (*model.Interface, string) {
	for _, iface := range node.Interfaces {
		if iface.ID == ingressID || !iface.HasIP() {
			continue
		}
		if util.IPInRange(dstIP, iface.IP) {
			return iface, "Routing to directly connected network via " + iface.ID
		}
	}
	return nil, ""
}

// longestPrefixMatch selects the static route with the longest matching
// prefix, tie-breaking to the earlier route in the configured order.
func longestPrefixMatch(cfg *model.RouterConfig, dstIP string) *model.StaticRoute {
	if cfg == nil {
		return nil
	}
	var best *model.StaticRoute
	bestLen := -1
	for _, route := range cfg.Routes {
		if !util.IPInRange(dstIP, route.Prefix) {
			continue
		}
		length := util.PrefixLength(route.Prefix)
		if length > bestLen {
			best = route
			bestLen = length
		}
	}
	return best
}
