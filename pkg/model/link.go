package model

// Endpoint names one side of a Link: a node and one of its interfaces.
type Endpoint struct {
	NodeID string `json:"node_id"`
	IfaceID string `json:"iface_id"`
}

// Link is an undirected edge between two (node, interface) endpoints. A
// given endpoint appears in at most one link in a valid topology.
type Link struct {
	A Endpoint `json:"a"`
	B Endpoint `json:"b"`
}

// PeerOf returns the endpoint on the other side of the link from
// (nodeID, ifaceID), and whether l actually has that endpoint.
func (l *Link) PeerOf(nodeID, ifaceID string) (Endpoint, bool) {
	switch {
	case l.A.NodeID == nodeID && l.A.IfaceID == ifaceID:
		return l.B, true
	case l.B.NodeID == nodeID && l.B.IfaceID == ifaceID:
		return l.A, true
	default:
		return Endpoint{}, false
	}
}
