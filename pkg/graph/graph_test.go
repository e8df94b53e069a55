package graph

import (
	"strings"
	"testing"

	"github.com/netlab-project/netlab/pkg/model"
)

func line(ids ...string) *model.Topology {
	topo := &model.Topology{}
	for _, id := range ids {
		topo.Nodes = append(topo.Nodes, model.NewNode(id, id, model.NodeHost))
	}
	for i := 0; i < len(ids)-1; i++ {
		topo.Links = append(topo.Links, &model.Link{
			A: model.Endpoint{NodeID: ids[i], IfaceID: "eth0"},
			B: model.Endpoint{NodeID: ids[i+1], IfaceID: "eth0"},
		})
	}
	return topo
}

func TestAnalyzer_IsReachable(t *testing.T) {
	a := New(line("a", "b", "c"))

	tests := []struct {
		from, to string
		want     bool
	}{
		{"a", "c", true},
		{"a", "b", true},
		{"a", "a", true},
		{"a", "missing", false},
	}

	for _, tt := range tests {
		if got := a.IsReachable(tt.from, tt.to); got != tt.want {
			t.Errorf("IsReachable(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAnalyzer_IsReachable_Disconnected(t *testing.T) {
	topo := &model.Topology{
		Nodes: []*model.Node{
			model.NewNode("a", "A", model.NodeHost),
			model.NewNode("b", "B", model.NodeHost),
		},
	}
	a := New(topo)
	if a.IsReachable("a", "b") {
		t.Error("expected a and b to be unreachable with no link between them")
	}
}

func TestAnalyzer_ShortestPath(t *testing.T) {
	a := New(line("a", "b", "c", "d"))

	path := a.ShortestPath("a", "d")
	want := []string{"a", "b", "c", "d"}
	if len(path) != len(want) {
		t.Fatalf("ShortestPath() = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("ShortestPath() = %v, want %v", path, want)
		}
	}
}

func TestAnalyzer_ConnectedComponent(t *testing.T) {
	topo := line("a", "b")
	topo.Nodes = append(topo.Nodes, model.NewNode("c", "C", model.NodeHost))
	a := New(topo)

	comp := a.ConnectedComponent("a")
	if !comp["a"] || !comp["b"] || comp["c"] {
		t.Errorf("ConnectedComponent(a) = %v, want {a,b}", comp)
	}
}

func TestAnalyzer_Validate(t *testing.T) {
	topo := line("a", "b")
	topo.Nodes = append(topo.Nodes, model.NewNode("c", "C", model.NodeHost))
	a := New(topo)

	diags := a.Validate()
	if len(diags) != 2 {
		t.Fatalf("Validate() = %v, want 2 diagnostics (isolated node + disconnected components)", diags)
	}
}

func TestAnalyzer_Validate_NoIssues(t *testing.T) {
	a := New(line("a", "b"))
	if diags := a.Validate(); len(diags) != 0 {
		t.Errorf("Validate() = %v, want no diagnostics", diags)
	}
}

func TestAnalyzer_Validate_DuplicateMAC(t *testing.T) {
	topo := &model.Topology{
		Nodes: []*model.Node{
			{ID: "a", Label: "A", Type: model.NodeHost, Interfaces: []*model.Interface{{ID: "eth0", MAC: "02:00:00:00:00:01"}}},
			{ID: "b", Label: "B", Type: model.NodeHost, Interfaces: []*model.Interface{{ID: "eth0", MAC: "02:00:00:00:00:01"}}},
		},
		Links: []*model.Link{
			{A: model.Endpoint{NodeID: "a", IfaceID: "eth0"}, B: model.Endpoint{NodeID: "b", IfaceID: "eth0"}},
		},
	}
	a := New(topo)

	diags := a.Validate()
	found := false
	for _, d := range diags {
		if strings.Contains(d, "duplicate MAC") {
			found = true
		}
	}
	if !found {
		t.Errorf("Validate() = %v, want a duplicate MAC diagnostic", diags)
	}
}

func TestAnalyzer_Validate_SubnetMismatch(t *testing.T) {
	topo := &model.Topology{
		Nodes: []*model.Node{
			{ID: "a", Label: "A", Type: model.NodeHost, Interfaces: []*model.Interface{{ID: "eth0", MAC: "02:00:00:00:00:01", IP: "10.0.0.1/24"}}},
			{ID: "b", Label: "B", Type: model.NodeHost, Interfaces: []*model.Interface{{ID: "eth0", MAC: "02:00:00:00:00:02", IP: "10.0.1.1/24"}}},
		},
		Links: []*model.Link{
			{A: model.Endpoint{NodeID: "a", IfaceID: "eth0"}, B: model.Endpoint{NodeID: "b", IfaceID: "eth0"}},
		},
	}
	a := New(topo)

	diags := a.Validate()
	found := false
	for _, d := range diags {
		if strings.Contains(d, "different subnets") {
			found = true
		}
	}
	if !found {
		t.Errorf("Validate() = %v, want a subnet-mismatch diagnostic", diags)
	}
}
