package model

// PacketSpec is the caller's request: "send this kind of packet from src to
// dst". The driver fills in MAC/IP/TTL details by asking the source device
// to originate the packet (see spec §4.5 Seed).
type PacketSpec struct {
	SrcNodeID string   `json:"src_node_id"`
	DstNodeID string   `json:"dst_node_id"`
	Protocol  Protocol `json:"protocol"`
	SrcPort   int      `json:"src_port,omitempty"`
	DstPort   int      `json:"dst_port,omitempty"`
	TTL       int      `json:"ttl,omitempty"` // 0 means "use the default"
	DstIP     string   `json:"dst_ip,omitempty"` // fallback when the dst node has no interface IP
}

// TraceLevel controls how much detail the engine records.
type TraceLevel string

const (
	TraceLevelMinimal  TraceLevel = "minimal"
	TraceLevelDetailed TraceLevel = "detailed"
)

// Options configures one Simulate call.
type Options struct {
	MaxHops    int        `json:"max_hops"`
	StepMode   bool       `json:"step_mode"`   // reserved for UI pacing; no semantic effect
	TraceLevel TraceLevel `json:"trace_level"`
}

// DefaultOptions returns the engine's documented defaults.
func DefaultOptions() Options {
	return Options{MaxHops: 100, TraceLevel: TraceLevelDetailed}
}

// Result is the outcome of one Simulate call.
type Result struct {
	Success   bool       `json:"success"`
	Delivered bool       `json:"delivered"`
	Blocked   bool       `json:"blocked"`
	Loop      bool       `json:"loop"`
	Trace     []TraceHop `json:"trace"`
	Reason    string     `json:"reason"`
}
