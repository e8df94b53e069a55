package device

import (
	"fmt"
	"sort"

	"github.com/netlab-project/netlab/pkg/model"
)

// ProcessFirewall implements a stateless, ordered ACL filter with a default
// policy: consume-for-self, then evaluate rules ascending by Order, then
// forward on allow to the first non-ingress interface with a live peer.
func ProcessFirewall(node *model.Node, ifaceID string, pkt *model.Packet, topo *model.Topology, clock int64) Result {
	var r Result

	addTrace(&r, clock, node, ifaceID, model.TraceReceive, "Received on "+ifaceID, pkt)

	if node.HasInterfaceIP(pkt.DstIP) {
		addTrace(&r, clock, node, ifaceID, model.TraceDeliver, "Delivered to "+node.Label, pkt)
		r.Delivered = true
		return r
	}

	action, reason := evaluateACL(node.Firewall, pkt)

	if action == model.ACLActionDeny {
		addTrace(&r, clock, node, ifaceID, model.TraceACLDeny, reason, pkt)
		return r
	}

	addTrace(&r, clock, node, ifaceID, model.TraceACLAllow, reason, pkt)

	egress := firstForwardableInterface(node, ifaceID, topo)
	if egress == nil {
		return r
	}
	out := pkt.Clone()
	out.SrcMAC = egress.MAC
	emitTo(&r, topo, node.ID, egress.ID, out)
	return r
}

// evaluateACL sorts the firewall's rules by ascending order and returns the
// first matching rule's action, or the default policy if none match.
func evaluateACL(cfg *model.FirewallConfig, pkt *model.Packet) (model.ACLAction, string) {
	if cfg == nil {
		return model.ACLActionAllow, "no firewall configuration, default allow"
	}

	rules := make([]*model.ACLRule, len(cfg.Rules))
	copy(rules, cfg.Rules)
	sort.Slice(rules, func(i, j int) bool { return rules[i].Order < rules[j].Order })

	for _, rule := range rules {
		if rule.Matches(pkt) {
			return rule.Action, fmt.Sprintf("matched rule order %d", rule.Order)
		}
	}
	return cfg.DefaultPolicy, "no rule matched, default policy " + string(cfg.DefaultPolicy)
}

func firstForwardableInterface(node *model.Node, ingressID string, topo *model.Topology) *model.Interface {
	for _, iface := range node.Interfaces {
		if iface.ID == ingressID {
			continue
		}
		if _, ok := topo.PeerOf(node.ID, iface.ID); ok {
			return iface
		}
	}
	return nil
}
