package topoconv

import (
	"testing"

	"github.com/netlab-project/netlab/pkg/model"
)

func twoHostDoc() *Document {
	return &Document{
		Nodes: []DocNode{
			{
				ID: "a", Label: "Host A", Type: model.NodeHost,
				Config: DocNodeConfig{Interfaces: []*model.Interface{{ID: "eth0", MAC: "02:AA:00:00:00:01"}}},
			},
			{
				ID: "b", Label: "Host B", Type: model.NodeHost,
				Config: DocNodeConfig{Interfaces: []*model.Interface{{ID: "eth0", MAC: "02:AA:00:00:00:02"}}},
			},
		},
		Edges: []DocEdge{
			{ID: "e1", Source: "a", Target: "b", SourceHandle: "eth0-source", TargetHandle: "eth0-target"},
		},
	}
}

func TestConvert_BasicLink(t *testing.T) {
	topo, err := Convert(twoHostDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topo.Nodes) != 2 || len(topo.Links) != 1 {
		t.Fatalf("unexpected shape: %d nodes, %d links", len(topo.Nodes), len(topo.Links))
	}
	link := topo.Links[0]
	if link.A.IfaceID != "eth0" || link.B.IfaceID != "eth0" {
		t.Errorf("expected both endpoints resolved to eth0, got %+v", link)
	}
}

func TestConvert_HandleFallsBackToFirstInterface(t *testing.T) {
	doc := twoHostDoc()
	doc.Edges[0].SourceHandle = "nonexistent-source"
	topo, err := Convert(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topo.Links[0].A.IfaceID != "eth0" {
		t.Errorf("expected fallback to first interface eth0, got %q", topo.Links[0].A.IfaceID)
	}
}

func TestConvert_HandleFallsBackToEth0WhenNoInterfaces(t *testing.T) {
	doc := &Document{
		Nodes: []DocNode{
			{ID: "a", Label: "A", Type: model.NodeHost},
			{ID: "b", Label: "B", Type: model.NodeHost},
		},
		Edges: []DocEdge{
			{ID: "e1", Source: "a", Target: "b", SourceHandle: "-source", TargetHandle: "-target"},
		},
	}
	topo, err := Convert(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topo.Links[0].A.IfaceID != "eth0" || topo.Links[0].B.IfaceID != "eth0" {
		t.Errorf("expected eth0 fallback, got %+v", topo.Links[0])
	}
}

func TestConvert_DanglingEdgeFailsValidation(t *testing.T) {
	doc := twoHostDoc()
	doc.Edges = append(doc.Edges, DocEdge{ID: "e2", Source: "a", Target: "ghost", SourceHandle: "eth0-source", TargetHandle: "eth0-target"})

	_, err := Convert(doc)
	if err == nil {
		t.Fatal("expected validation error for dangling edge")
	}
}

func TestConvert_DuplicateNodeIDFailsValidation(t *testing.T) {
	doc := twoHostDoc()
	doc.Nodes[1].ID = "a"

	_, err := Convert(doc)
	if err == nil {
		t.Fatal("expected validation error for duplicate node id")
	}
}

func TestConvert_NodeDefaultsAppliedByType(t *testing.T) {
	doc := &Document{
		Nodes: []DocNode{{ID: "s", Label: "Switch", Type: model.NodeSwitch}},
	}
	topo, err := Convert(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sw := topo.Node("s")
	if sw.Switch == nil || !sw.Switch.MACLearning {
		t.Errorf("expected default switch config with MAC learning on, got %+v", sw.Switch)
	}
}

func TestConvert_InvalidMACFailsValidation(t *testing.T) {
	doc := twoHostDoc()
	doc.Nodes[0].Config.Interfaces[0].MAC = "not-a-mac"

	_, err := Convert(doc)
	if err == nil {
		t.Fatal("expected validation error for invalid MAC")
	}
}

func TestConvert_InvalidInterfaceIPFailsValidation(t *testing.T) {
	doc := twoHostDoc()
	doc.Nodes[0].Config.Interfaces[0].IP = "not-an-ip"

	_, err := Convert(doc)
	if err == nil {
		t.Fatal("expected validation error for invalid interface IP")
	}
}

func TestConvert_InvalidRoutePrefixFailsValidation(t *testing.T) {
	doc := twoHostDoc()
	doc.Nodes[0].Type = model.NodeRouter
	doc.Nodes[0].Config.Router = &model.RouterConfig{
		Routes: []*model.StaticRoute{{Prefix: "not-a-cidr", NextHopIP: "10.0.0.1", EgressID: "eth0"}},
	}

	_, err := Convert(doc)
	if err == nil {
		t.Fatal("expected validation error for invalid route prefix")
	}
}

func TestConvert_InvalidRouteNextHopFailsValidation(t *testing.T) {
	doc := twoHostDoc()
	doc.Nodes[0].Type = model.NodeRouter
	doc.Nodes[0].Config.Router = &model.RouterConfig{
		Routes: []*model.StaticRoute{{Prefix: "10.0.0.0/24", NextHopIP: "not-an-ip", EgressID: "eth0"}},
	}

	_, err := Convert(doc)
	if err == nil {
		t.Fatal("expected validation error for invalid route next-hop IP")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`{"nodes":[{"id":"a","label":"A","type":"host"}],"edges":[]}`)
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].ID != "a" {
		t.Errorf("unexpected parse result: %+v", doc)
	}
}
