package model

import (
	"net"
	"strings"
)

// ACLAction is the action an ACL rule or a firewall's default policy takes.
type ACLAction string

const (
	ACLActionAllow ACLAction = "allow"
	ACLActionDeny  ACLAction = "deny"
)

// ACLRule is one ordered entry in a firewall's rule list. A clause left at
// its zero value (empty string, zero port, ProtoAny) matches anything; a
// rule matches a packet only when every configured clause matches.
type ACLRule struct {
	ID    string    `json:"id"`
	Order int       `json:"order"`
	Action ACLAction `json:"action"`

	SrcIP    string   `json:"src_ip,omitempty"` // exact IP or CIDR; "" or "any" matches all
	DstIP    string   `json:"dst_ip,omitempty"`
	Protocol Protocol `json:"protocol,omitempty"` // "" or "any" matches all

	SrcPort int `json:"src_port,omitempty"` // 0 matches all
	DstPort int `json:"dst_port,omitempty"`
}

// Matches reports whether every configured clause of r matches p.
func (r *ACLRule) Matches(p *Packet) bool {
	return matchesProto(r.Protocol, p.Protocol) &&
		matchesIPClause(r.SrcIP, p.SrcIP) &&
		matchesIPClause(r.DstIP, p.DstIP) &&
		matchesPortClause(r.SrcPort, p.SrcPort) &&
		matchesPortClause(r.DstPort, p.DstPort)
}

func matchesProto(clause, actual Protocol) bool {
	if clause == "" || clause == ProtoAny {
		return true
	}
	return clause == actual
}

func matchesPortClause(clause, actual int) bool {
	if clause == 0 {
		return true
	}
	return clause == actual
}

// matchesIPClause matches an ACL IP clause against a packet's IP field. An
// empty clause or the literal "any" matches everything. A clause containing
// "/" is treated as CIDR containment; otherwise it's exact string equality.
func matchesIPClause(clause, actual string) bool {
	if clause == "" || clause == "any" {
		return true
	}
	if actual == "" {
		return false
	}
	if strings.Contains(clause, "/") {
		_, cidr, err := net.ParseCIDR(clause)
		if err != nil {
			return false
		}
		ip := net.ParseIP(actual)
		return ip != nil && cidr.Contains(ip)
	}
	return clause == actual
}
