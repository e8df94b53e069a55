package device

import (
	"fmt"

	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/util"
)

// Send originates a packet from a host-like node. The caller supplies the
// destination MAC/IP the driver resolved from the destination node, the
// protocol, optional ports and TTL; Send fills in the source fields from the
// node's first interface (and TTL=64 when ttl <= 0), then forwards it to
// whatever peer is attached to that interface.
func Send(node *model.Node, dstMAC, dstIP string, proto model.Protocol, srcPort, dstPort, ttl int, topo *model.Topology, clock int64) Result {
	var r Result

	if ttl <= 0 {
		ttl = model.DefaultTTL
	}

	iface := node.FirstInterface()
	if iface == nil {
		// No interface at all: nothing to originate from. This mirrors the
		// "no link connected" drop below, recorded with an empty interface id.
		pkt := &model.Packet{ID: util.NextPacketID(), DstMAC: dstMAC, DstIP: dstIP, Protocol: proto, TTL: ttl}
		addTrace(&r, clock, node, "", model.TraceDrop, "No link connected", pkt)
		return r
	}

	pkt := &model.Packet{
		ID:       util.NextPacketID(),
		SrcMAC:   iface.MAC,
		DstMAC:   dstMAC,
		SrcIP:    iface.Address(),
		DstIP:    dstIP,
		Protocol: proto,
		SrcPort:  srcPort,
		DstPort:  dstPort,
		TTL:      ttl,
	}

	if ok := emitTo(&r, topo, node.ID, iface.ID, pkt); !ok {
		addTrace(&r, clock, node, iface.ID, model.TraceDrop, "No link connected", pkt)
		return r
	}
	addTrace(&r, clock, node, iface.ID, model.TraceForward, "Originated from "+iface.ID, pkt)
	return r
}

// ProcessPacket implements reception for host-like devices (host, phone,
// server, laptop): a packet is "for us" if it matches this interface's MAC,
// the broadcast MAC, or this interface's IP. Hosts never forward.
func ProcessPacket(node *model.Node, ifaceID string, pkt *model.Packet, clock int64) Result {
	var r Result

	iface := node.Interface(ifaceID)
	forUs := iface != nil && (iface.MatchesMAC(pkt.DstMAC) ||
		util.IsBroadcastMAC(pkt.DstMAC) ||
		(iface.HasIP() && iface.Address() == pkt.DstIP))

	if forUs {
		addTrace(&r, clock, node, ifaceID, model.TraceDeliver, "Delivered to "+node.Label, pkt)
		r.Delivered = true
		return r
	}

	addTrace(&r, clock, node, ifaceID, model.TraceDrop, "Packet not addressed to this host", pkt)
	return r
}

// ProcessCloud implements the cloud device: it accepts any packet arriving
// on its single interface and never originates.
func ProcessCloud(node *model.Node, ifaceID string, pkt *model.Packet, clock int64) Result {
	var r Result
	addTrace(&r, clock, node, ifaceID, model.TraceDeliver, fmt.Sprintf("Delivered to %s", node.Label), pkt)
	r.Delivered = true
	return r
}
