package model

// Protocol is the packet's upper-layer protocol tag.
type Protocol string

const (
	ProtoTCP   Protocol = "tcp"
	ProtoUDP   Protocol = "udp"
	ProtoICMP  Protocol = "icmp"
	ProtoARP   Protocol = "arp"
	ProtoOther Protocol = "other"
	ProtoAny   Protocol = "any" // only valid as an ACL match clause, never on a Packet
)

// DefaultTTL is the TTL a host assigns when it originates a packet.
const DefaultTTL = 64

// Packet is an immutable-by-convention value threaded through the
// simulation. Its ID never changes across the packet's lifetime — copies
// made while forwarding (Clone) keep the same ID, which is what loop
// detection keys on.
type Packet struct {
	ID string `json:"id"`

	SrcMAC string `json:"src_mac"`
	DstMAC string `json:"dst_mac"`

	SrcIP string `json:"src_ip,omitempty"`
	DstIP string `json:"dst_ip,omitempty"`

	VLAN int `json:"vlan,omitempty"`

	Protocol Protocol `json:"protocol"`
	SrcPort  int      `json:"src_port,omitempty"`
	DstPort  int      `json:"dst_port,omitempty"`

	TTL int `json:"ttl"`

	Payload string `json:"payload,omitempty"`
}

// Clone returns a shallow copy of p. Because Packet holds no nested
// reference types, a shallow copy is a full value copy — callers get an
// independent packet to mutate (rewrite TTL, MAC, VLAN) without disturbing
// the original, while the ID is preserved.
func (p *Packet) Clone() *Packet {
	cp := *p
	return &cp
}
