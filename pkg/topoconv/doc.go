// Package topoconv converts an editor's visual topology document — nodes
// with screen positions and per-node config blobs, edges with handle ids —
// into the engine's model.Topology. It is the one place the engine's
// internal shape is allowed to diverge from the document a browser-based
// editor would persist.
package topoconv

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/util"
)

// Document is the editor's on-disk/in-browser shape: {nodes, edges} with
// visual positions and handle ids. No bit-exact compatibility is promised
// across versions — Convert tolerates missing optional fields.
type Document struct {
	Nodes []DocNode `json:"nodes"`
	Edges []DocEdge `json:"edges"`
}

// DocNode is one visual node. Position is carried through for round-tripping
// but unused by the engine.
type DocNode struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Type     model.NodeType  `json:"type"`
	Position DocPosition     `json:"position"`
	Config   DocNodeConfig   `json:"config"`
}

// DocPosition is the node's canvas coordinates.
type DocPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DocNodeConfig mirrors the per-node configuration blob the editor stores
// inline on each node: interfaces plus whatever type-specific state applies.
type DocNodeConfig struct {
	Interfaces []*model.Interface    `json:"interfaces"`
	Switch     *model.SwitchConfig   `json:"switch,omitempty"`
	Router     *model.RouterConfig   `json:"router,omitempty"`
	Firewall   *model.FirewallConfig `json:"firewall,omitempty"`
}

// DocEdge is one visual edge between two node handles. SourceHandle and
// TargetHandle are the editor's connection-point ids, e.g. "eth0-source".
type DocEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
}

// Parse decodes raw JSON into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology document: %w", err)
	}
	return &doc, nil
}

// Convert projects doc into the engine's Topology, after validating it.
// Validation failures are reported together as a *util.ValidationError;
// conversion does not run on an invalid document.
func Convert(doc *Document) (*model.Topology, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	topo := &model.Topology{}
	byID := make(map[string]*DocNode, len(doc.Nodes))

	for i := range doc.Nodes {
		dn := &doc.Nodes[i]
		byID[dn.ID] = dn
		topo.Nodes = append(topo.Nodes, toNode(dn))
	}

	for _, e := range doc.Edges {
		srcIface := resolveHandle(byID[e.Source], e.SourceHandle, "-source")
		dstIface := resolveHandle(byID[e.Target], e.TargetHandle, "-target")
		topo.Links = append(topo.Links, &model.Link{
			A: model.Endpoint{NodeID: e.Source, IfaceID: srcIface},
			B: model.Endpoint{NodeID: e.Target, IfaceID: dstIface},
		})
	}

	return topo, nil
}

func toNode(dn *DocNode) *model.Node {
	n := &model.Node{
		ID:         dn.ID,
		Label:      dn.Label,
		Type:       dn.Type,
		Interfaces: dn.Config.Interfaces,
		Switch:     dn.Config.Switch,
		Router:     dn.Config.Router,
		Firewall:   dn.Config.Firewall,
	}
	switch dn.Type {
	case model.NodeSwitch:
		if n.Switch == nil {
			n.Switch = &model.SwitchConfig{MACLearning: true}
		}
	case model.NodeRouter:
		if n.Router == nil {
			n.Router = &model.RouterConfig{}
		}
	case model.NodeFirewall:
		if n.Firewall == nil {
			n.Firewall = &model.FirewallConfig{DefaultPolicy: model.ACLActionAllow}
		}
	}
	return n
}

// resolveHandle derives the interface id at one edge endpoint by stripping
// the handle's trailing "-source"/"-target" suffix. If the stripped id does
// not name an interface on node, it falls back to the node's first
// interface id, or the conventional "eth0" if the node has none.
func resolveHandle(node *DocNode, handle, suffix string) string {
	id := strings.TrimSuffix(handle, suffix)
	if node != nil {
		for _, iface := range node.Config.Interfaces {
			if iface.ID == id {
				return id
			}
		}
		if len(node.Config.Interfaces) > 0 {
			return node.Config.Interfaces[0].ID
		}
	}
	return "eth0"
}

// validate runs the conversion pre-pass: every edge must reference nodes
// that exist in the document, and every interface/route address an operator
// or editor supplied must actually parse. Interface/handle mismatches are
// not fatal — resolveHandle's fallback absorbs them — but a dangling node
// reference or a malformed address is, since there is nothing sensible to
// convert it to.
func validate(doc *Document) error {
	v := &util.ValidationBuilder{}
	ids := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		v.Add(n.ID != "", "node has empty id")
		if n.ID != "" {
			v.Add(!ids[n.ID], fmt.Sprintf("duplicate node id %q", n.ID))
			ids[n.ID] = true
		}
		validateNodeConfig(v, n)
	}
	for _, e := range doc.Edges {
		v.Add(ids[e.Source], fmt.Sprintf("edge %q references unknown source node %q", e.ID, e.Source))
		v.Add(ids[e.Target], fmt.Sprintf("edge %q references unknown target node %q", e.ID, e.Target))
	}
	if err := v.Build(); err != nil {
		return err
	}
	return nil
}

// validateNodeConfig checks every interface's MAC and IP, and every static
// route's prefix/next-hop, on one document node.
func validateNodeConfig(v *util.ValidationBuilder, n DocNode) {
	for _, iface := range n.Config.Interfaces {
		if iface.MAC != "" {
			v.Add(util.IsValidMACAddress(iface.MAC),
				fmt.Sprintf("node %q interface %q has invalid MAC %q", n.ID, iface.ID, iface.MAC))
		}
		if iface.IP != "" {
			v.Add(util.IsValidIPv4CIDR(iface.IP),
				fmt.Sprintf("node %q interface %q has invalid CIDR address %q", n.ID, iface.ID, iface.IP))
		}
	}
	if n.Config.Router == nil {
		return
	}
	for _, route := range n.Config.Router.Routes {
		if route.Prefix != "" {
			v.Add(util.IsValidIPv4CIDR(route.Prefix),
				fmt.Sprintf("node %q route %q has invalid prefix %q", n.ID, route.EgressID, route.Prefix))
		}
		if route.NextHopIP != "" {
			v.Add(util.IsValidIPv4(route.NextHopIP),
				fmt.Sprintf("node %q route %q has invalid next-hop IP %q", n.ID, route.EgressID, route.NextHopIP))
		}
	}
}
