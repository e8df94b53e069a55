// Package graph implements the undirected node/link analyzer used to
// pre-validate reachability before a simulation runs, and to surface
// diagnostics (isolated nodes, disconnected components) for UI pre-flight.
package graph

import (
	"fmt"
	"strings"

	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/util"
)

// Analyzer is an adjacency-list view of a Topology's nodes and links. It is
// built once per simulation call and never mutated.
type Analyzer struct {
	topo    *model.Topology
	nodeIDs []string
	adj     map[string][]string
}

// New builds an Analyzer from a topology.
func New(topo *model.Topology) *Analyzer {
	a := &Analyzer{topo: topo, adj: make(map[string][]string)}
	for _, n := range topo.Nodes {
		a.nodeIDs = append(a.nodeIDs, n.ID)
		if _, ok := a.adj[n.ID]; !ok {
			a.adj[n.ID] = nil
		}
	}
	for _, l := range topo.Links {
		a.adj[l.A.NodeID] = append(a.adj[l.A.NodeID], l.B.NodeID)
		a.adj[l.B.NodeID] = append(a.adj[l.B.NodeID], l.A.NodeID)
	}
	return a
}

// IsReachable reports whether b is reachable from a via some path of links.
func (a *Analyzer) IsReachable(from, to string) bool {
	if from == to {
		_, ok := a.adj[from]
		return ok
	}
	return a.bfs(from, to) != nil
}

// ShortestPath returns the node-id sequence of a shortest path from a to b,
// or nil if none exists.
func (a *Analyzer) ShortestPath(from, to string) []string {
	if from == to {
		if _, ok := a.adj[from]; ok {
			return []string{from}
		}
		return nil
	}
	return a.bfs(from, to)
}

// bfs returns the path from->to inclusive, or nil if unreachable.
func (a *Analyzer) bfs(from, to string) []string {
	if _, ok := a.adj[from]; !ok {
		return nil
	}
	visited := map[string]bool{from: true}
	prev := map[string]string{}
	queue := []string{from}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == to {
			return reconstruct(prev, from, to)
		}
		for _, next := range a.adj[n] {
			if !visited[next] {
				visited[next] = true
				prev[next] = n
				queue = append(queue, next)
			}
		}
	}
	return nil
}

func reconstruct(prev map[string]string, from, to string) []string {
	path := []string{to}
	cur := to
	for cur != from {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ConnectedComponent returns the set of node ids reachable from n, including
// n itself.
func (a *Analyzer) ConnectedComponent(n string) map[string]bool {
	component := map[string]bool{}
	if _, ok := a.adj[n]; !ok {
		return component
	}
	queue := []string{n}
	component[n] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range a.adj[cur] {
			if !component[next] {
				component[next] = true
				queue = append(queue, next)
			}
		}
	}
	return component
}

// Validate returns human-readable diagnostics: isolated nodes (no incident
// links), disconnected components, duplicate MAC addresses, and links whose
// two endpoints carry IPs on different subnets. It is used for UI
// pre-flight, not by the simulator driver itself — none of these findings
// block a simulation from running.
func (a *Analyzer) Validate() []string {
	var diagnostics []string

	for _, id := range a.nodeIDs {
		if len(a.adj[id]) == 0 {
			diagnostics = append(diagnostics, "node \""+id+"\" has no links (isolated)")
		}
	}

	seen := map[string]bool{}
	components := 0
	for _, id := range a.nodeIDs {
		if seen[id] {
			continue
		}
		components++
		for member := range a.ConnectedComponent(id) {
			seen[member] = true
		}
	}
	if components > 1 {
		diagnostics = append(diagnostics, "topology has multiple disconnected components")
	}

	diagnostics = append(diagnostics, a.duplicateMACs()...)
	diagnostics = append(diagnostics, a.subnetMismatches()...)

	return diagnostics
}

// duplicateMACs reports every MAC address claimed by more than one
// interface. A MAC is unique per topology at creation; duplicates are
// tolerated by the simulator but are surfaced here as a warning.
func (a *Analyzer) duplicateMACs() []string {
	var order []string
	owners := map[string][]string{}

	for _, n := range a.topo.Nodes {
		for _, iface := range n.Interfaces {
			if iface.MAC == "" {
				continue
			}
			mac, err := util.NormalizeMACAddress(iface.MAC)
			if err != nil {
				continue
			}
			if _, ok := owners[mac]; !ok {
				order = append(order, mac)
			}
			owners[mac] = append(owners[mac], n.ID+"."+iface.ID)
		}
	}

	var diagnostics []string
	for _, mac := range order {
		if locations := owners[mac]; len(locations) > 1 {
			diagnostics = append(diagnostics, fmt.Sprintf(
				"duplicate MAC %s used by %s", mac, strings.Join(locations, ", ")))
		}
	}
	return diagnostics
}

// subnetMismatches reports links whose two endpoints both carry an IP but
// disagree on network address — a common misconfiguration that still
// simulates (routing and delivery key off exact/CIDR match per hop, not
// link-level subnet agreement) but is worth flagging.
func (a *Analyzer) subnetMismatches() []string {
	var diagnostics []string
	for _, l := range a.topo.Links {
		aNet, aOK := networkOf(a.topo, l.A)
		bNet, bOK := networkOf(a.topo, l.B)
		if aOK && bOK && aNet != bNet {
			diagnostics = append(diagnostics, fmt.Sprintf(
				"link %s.%s <-> %s.%s connects different subnets (%s vs %s)",
				l.A.NodeID, l.A.IfaceID, l.B.NodeID, l.B.IfaceID, aNet, bNet))
		}
	}
	return diagnostics
}

// networkOf returns the network address of the interface at ep, and
// whether it has a valid CIDR IP to compute one from.
func networkOf(topo *model.Topology, ep model.Endpoint) (string, bool) {
	node := topo.Node(ep.NodeID)
	if node == nil {
		return "", false
	}
	iface := node.Interface(ep.IfaceID)
	if iface == nil || !iface.HasIP() {
		return "", false
	}
	ip, maskLen, err := util.ParseIPWithMask(iface.IP)
	if err != nil {
		return "", false
	}
	return util.ComputeNetworkAddr(ip.String(), maskLen), true
}
