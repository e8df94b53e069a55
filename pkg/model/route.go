package model

// StaticRoute is a router's configured route: a destination prefix, the
// next-hop IP (informational — the egress interface is what actually
// decides forwarding), and the egress interface to forward through.
// Ordering is not significant; longest-prefix-match wins at lookup time.
type StaticRoute struct {
	Prefix    string `json:"prefix"`     // CIDR, e.g. "10.1.0.0/24"
	NextHopIP string `json:"next_hop_ip"`
	EgressID  string `json:"egress_iface_id"`
}
