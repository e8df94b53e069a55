package device

import (
	"testing"

	"github.com/netlab-project/netlab/pkg/mactable"
	"github.com/netlab-project/netlab/pkg/model"
)

func twoHostsViaSwitch() (*model.Topology, *model.Node, *model.Node, *model.Node) {
	a := model.NewNode("a", "Host A", model.NodeHost)
	a.Interfaces = []*model.Interface{{ID: "eth0", MAC: "02:AA:00:00:00:01", IP: "192.168.1.10/24", Mode: model.PortModeAccess, VLAN: 1}}

	b := model.NewNode("b", "Host B", model.NodeHost)
	b.Interfaces = []*model.Interface{{ID: "eth0", MAC: "02:AA:00:00:00:02", IP: "192.168.1.11/24", Mode: model.PortModeAccess, VLAN: 1}}

	sw := model.NewNode("sw", "Switch", model.NodeSwitch)
	sw.Interfaces = []*model.Interface{
		{ID: "port-a", MAC: "02:BB:00:00:00:01", Mode: model.PortModeAccess, VLAN: 1},
		{ID: "port-b", MAC: "02:BB:00:00:00:02", Mode: model.PortModeAccess, VLAN: 1},
	}

	topo := &model.Topology{
		Nodes: []*model.Node{a, b, sw},
		Links: []*model.Link{
			{A: model.Endpoint{NodeID: "a", IfaceID: "eth0"}, B: model.Endpoint{NodeID: "sw", IfaceID: "port-a"}},
			{A: model.Endpoint{NodeID: "b", IfaceID: "eth0"}, B: model.Endpoint{NodeID: "sw", IfaceID: "port-b"}},
		},
	}
	return topo, a, b, sw
}

func TestSend_ForwardsToPeer(t *testing.T) {
	topo, a, _, _ := twoHostsViaSwitch()
	r := Send(a, "02:BB:00:00:00:01", "192.168.1.11", model.ProtoICMP, 0, 0, 0, topo, 0)

	if len(r.Emissions) != 1 {
		t.Fatalf("expected 1 emission, got %d", len(r.Emissions))
	}
	if r.Emissions[0].NodeID != "sw" || r.Emissions[0].IfaceID != "port-a" {
		t.Errorf("emission went to %+v, want sw/port-a", r.Emissions[0])
	}
	if len(r.Trace) != 1 || r.Trace[0].Action != model.TraceForward {
		t.Fatalf("expected a forward trace, got %+v", r.Trace)
	}
}

func TestSend_NoLink(t *testing.T) {
	lonely := model.NewNode("l", "Lonely", model.NodeHost)
	lonely.Interfaces = []*model.Interface{{ID: "eth0", MAC: "02:CC:00:00:00:01"}}
	topo := &model.Topology{Nodes: []*model.Node{lonely}}

	r := Send(lonely, model.BroadcastMAC, "", model.ProtoICMP, 0, 0, 0, topo, 0)
	if len(r.Emissions) != 0 {
		t.Errorf("expected no emissions, got %d", len(r.Emissions))
	}
	if len(r.Trace) != 1 || r.Trace[0].Action != model.TraceDrop || r.Trace[0].Reason != "No link connected" {
		t.Fatalf("expected a 'No link connected' drop, got %+v", r.Trace)
	}
}

func TestProcessPacket_DeliversForUs(t *testing.T) {
	_, _, b, _ := twoHostsViaSwitch()
	pkt := &model.Packet{ID: "pkt-1", DstMAC: b.Interfaces[0].MAC, DstIP: "192.168.1.11", TTL: 64}

	r := ProcessPacket(b, "eth0", pkt, 1)
	if !r.Delivered {
		t.Fatal("expected delivery")
	}
	if r.Trace[0].Action != model.TraceDeliver {
		t.Errorf("expected deliver trace, got %s", r.Trace[0].Action)
	}
}

func TestProcessPacket_DropsNotForUs(t *testing.T) {
	_, _, b, _ := twoHostsViaSwitch()
	pkt := &model.Packet{ID: "pkt-1", DstMAC: "02:FF:FF:FF:FF:FF", DstIP: "10.0.0.99", TTL: 64}

	r := ProcessPacket(b, "eth0", pkt, 1)
	if r.Delivered {
		t.Fatal("expected no delivery")
	}
	if r.Trace[0].Reason != "Packet not addressed to this host" {
		t.Errorf("unexpected reason: %s", r.Trace[0].Reason)
	}
}

func TestProcessSwitch_S1_LearnsAndFloodsUnknownUnicast(t *testing.T) {
	topo, a, b, sw := twoHostsViaSwitch()
	table := mactable.New()

	pkt := &model.Packet{ID: "pkt-1", SrcMAC: a.Interfaces[0].MAC, DstMAC: b.Interfaces[0].MAC, TTL: 64}
	r := ProcessSwitch(sw, "port-a", pkt, topo, table, 1)

	if iface, ok := table.Lookup(a.Interfaces[0].MAC, 1); !ok || iface != "port-a" {
		t.Errorf("expected switch to learn A on port-a, got (%q, %v)", iface, ok)
	}

	var actions []model.TraceAction
	for _, hop := range r.Trace {
		actions = append(actions, hop.Action)
	}
	if len(actions) < 3 || actions[0] != model.TraceLearn || actions[1] != model.TraceReceive || actions[2] != model.TraceFlood {
		t.Errorf("unexpected trace sequence: %v", actions)
	}
	if len(r.Emissions) != 1 || r.Emissions[0].NodeID != "b" {
		t.Errorf("expected a single flood emission to b, got %+v", r.Emissions)
	}
}

func TestProcessSwitch_VLANIsolation(t *testing.T) {
	topo, a, b, sw := twoHostsViaSwitch()
	sw.Interfaces[0].VLAN = 10
	sw.Interfaces[1].VLAN = 20
	table := mactable.New()

	pkt := &model.Packet{ID: "pkt-1", SrcMAC: a.Interfaces[0].MAC, DstMAC: b.Interfaces[0].MAC, TTL: 64}
	r := ProcessSwitch(sw, "port-a", pkt, topo, table, 1)

	for _, em := range r.Emissions {
		if em.NodeID == "b" {
			t.Fatal("packet on VLAN 10 should never reach a VLAN 20 port")
		}
	}
}

func TestProcessRouter_DirectlyConnected(t *testing.T) {
	r := model.NewNode("r", "Router", model.NodeRouter)
	r.Interfaces = []*model.Interface{
		{ID: "eth0", MAC: "02:DD:00:00:00:01", IP: "10.0.0.1/24"},
		{ID: "eth1", MAC: "02:DD:00:00:00:02", IP: "10.0.1.1/24"},
	}
	b := model.NewNode("b", "Host B", model.NodeHost)
	b.Interfaces = []*model.Interface{{ID: "eth0", MAC: "02:EE:00:00:00:01", IP: "10.0.1.10/24"}}

	topo := &model.Topology{
		Nodes: []*model.Node{r, b},
		Links: []*model.Link{{A: model.Endpoint{NodeID: "r", IfaceID: "eth1"}, B: model.Endpoint{NodeID: "b", IfaceID: "eth0"}}},
	}

	pkt := &model.Packet{ID: "pkt-1", DstIP: "10.0.1.10", TTL: 64}
	result := ProcessRouter(r, "eth0", pkt, topo, 1)

	if len(result.Emissions) != 1 || result.Emissions[0].NodeID != "b" {
		t.Fatalf("expected forward to b, got %+v", result.Emissions)
	}
	foundRoute := false
	for _, hop := range result.Trace {
		if hop.Action == model.TraceRoute {
			foundRoute = true
		}
	}
	if !foundRoute {
		t.Errorf("expected a route trace, got %+v", result.Trace)
	}
}

func TestProcessRouter_TTLExpired(t *testing.T) {
	r := model.NewNode("r", "Router", model.NodeRouter)
	r.Interfaces = []*model.Interface{{ID: "eth0", MAC: "02:DD:00:00:00:01", IP: "10.0.0.1/24"}}
	topo := &model.Topology{Nodes: []*model.Node{r}}

	pkt := &model.Packet{ID: "pkt-1", DstIP: "10.0.1.10", TTL: 1}
	result := ProcessRouter(r, "eth0", pkt, topo, 1)

	if result.Delivered || len(result.Emissions) != 0 {
		t.Fatal("expected no delivery and no emissions on TTL expiry")
	}
	if result.Trace[0].Action != model.TraceDrop || result.Trace[0].Reason != "TTL expired" {
		t.Errorf("expected TTL expired drop, got %+v", result.Trace[0])
	}
}

func TestProcessFirewall_ACLDeny(t *testing.T) {
	f := model.NewNode("f", "Firewall", model.NodeFirewall)
	f.Interfaces = []*model.Interface{
		{ID: "eth0", MAC: "02:FF:00:00:00:01", IP: "10.0.0.1/24"},
		{ID: "eth1", MAC: "02:FF:00:00:00:02", IP: "10.0.1.1/24"},
	}
	f.Firewall.DefaultPolicy = model.ACLActionAllow
	f.Firewall.Rules = []*model.ACLRule{
		{ID: "r1", Order: 1, Action: model.ACLActionDeny, DstIP: "10.0.1.10", Protocol: model.ProtoICMP},
	}
	topo := &model.Topology{Nodes: []*model.Node{f}}

	pkt := &model.Packet{ID: "pkt-1", DstIP: "10.0.1.10", Protocol: model.ProtoICMP, TTL: 64}
	result := ProcessFirewall(f, "eth0", pkt, topo, 1)

	if result.Delivered || len(result.Emissions) != 0 {
		t.Fatal("expected deny to block delivery and forwarding")
	}
	last := result.Trace[len(result.Trace)-1]
	if last.Action != model.TraceACLDeny {
		t.Errorf("expected last trace to be acl-deny, got %s", last.Action)
	}
}

func TestProcessFirewall_AllowForwards(t *testing.T) {
	f := model.NewNode("f", "Firewall", model.NodeFirewall)
	f.Interfaces = []*model.Interface{
		{ID: "eth0", MAC: "02:FF:00:00:00:01", IP: "10.0.0.1/24"},
		{ID: "eth1", MAC: "02:FF:00:00:00:02"},
	}
	f.Firewall.DefaultPolicy = model.ACLActionAllow
	b := model.NewNode("b", "Host B", model.NodeHost)
	b.Interfaces = []*model.Interface{{ID: "eth0", MAC: "02:EE:00:00:00:01"}}

	topo := &model.Topology{
		Nodes: []*model.Node{f, b},
		Links: []*model.Link{{A: model.Endpoint{NodeID: "f", IfaceID: "eth1"}, B: model.Endpoint{NodeID: "b", IfaceID: "eth0"}}},
	}

	pkt := &model.Packet{ID: "pkt-1", DstIP: "10.0.1.10", Protocol: model.ProtoICMP, TTL: 64}
	result := ProcessFirewall(f, "eth0", pkt, topo, 1)

	if len(result.Emissions) != 1 || result.Emissions[0].NodeID != "b" {
		t.Fatalf("expected allow to forward to b, got %+v", result.Emissions)
	}
}
