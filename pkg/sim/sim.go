// Package sim implements the simulator driver: it wires the topology
// model, the graph analyzer, the device behaviors, the event queue, and
// the per-switch MAC tables into the single Simulate entry point spec'd
// at the engine boundary.
package sim

import (
	"fmt"

	"github.com/netlab-project/netlab/pkg/device"
	"github.com/netlab-project/netlab/pkg/graph"
	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/queue"
	"github.com/netlab-project/netlab/pkg/util"
)

// Simulate runs one packet from spec.SrcNodeID to spec.DstNodeID through
// topo and returns the outcome. It is a pure function of its arguments
// given the process-unique packet-id minter (util.NextPacketID): the same
// inputs always produce a trace with the same shape, differing only in
// the minted packet ids.
func Simulate(topo *model.Topology, spec model.PacketSpec, opts model.Options) model.Result {
	if opts.MaxHops <= 0 {
		opts = model.DefaultOptions()
	}

	result := simulate(topo, spec, opts)
	util.WithFields(map[string]interface{}{
		"nodes": len(topo.Nodes), "links": len(topo.Links),
		"src": spec.SrcNodeID, "dst": spec.DstNodeID,
		"hops": len(result.Trace), "success": result.Success,
	}).Debug("simulate")
	return result
}

func simulate(topo *model.Topology, spec model.PacketSpec, opts model.Options) model.Result {
	src := topo.Node(spec.SrcNodeID)
	dst := topo.Node(spec.DstNodeID)
	if src == nil || dst == nil {
		return model.Result{Reason: fmt.Sprintf("source or destination node not found in topology (%s -> %s)", spec.SrcNodeID, spec.DstNodeID)}
	}
	if !src.Type.IsHostLike() {
		return model.Result{Reason: fmt.Sprintf("source device %q is not host-like", src.ID)}
	}

	analyzer := graph.New(topo)
	if !analyzer.IsReachable(src.ID, dst.ID) {
		return model.Result{Reason: fmt.Sprintf("No path exists between %s and %s", src.ID, dst.ID)}
	}

	q := queue.New()
	tables := device.NewMACTables(topo)

	dstMAC := model.BroadcastMAC
	if iface := dst.FirstInterface(); iface != nil && iface.MAC != "" {
		dstMAC = iface.MAC
	}
	dstIP := spec.DstIP
	if iface := dst.FirstInterface(); iface != nil && iface.HasIP() {
		dstIP = iface.Address()
	}

	seed := device.Send(src, dstMAC, dstIP, spec.Protocol, spec.SrcPort, spec.DstPort, spec.TTL, topo, q.Clock())
	result := model.Result{}
	result.Trace = append(result.Trace, filterTrace(seed.Trace, opts.TraceLevel)...)
	for _, em := range seed.Emissions {
		q.Enqueue(em.Packet, em.NodeID, em.IfaceID)
	}

	visited := map[string]bool{}
	hops := 0

	for !q.Empty() && hops < opts.MaxHops {
		ev, ok := q.Dequeue()
		if !ok {
			break
		}
		clock := q.Tick()

		key := ev.NodeID + "|" + ev.IfaceID + "|" + ev.Packet.ID
		if visited[key] {
			result.Loop = true
			result.Reason = "Repeated (node, interface, packet) visit"
			return result
		}
		visited[key] = true

		node := topo.Node(ev.NodeID)
		if node == nil {
			result.Reason = fmt.Sprintf("event referenced unknown node %q", ev.NodeID)
			return result
		}

		out := device.Process(node, ev.IfaceID, ev.Packet, topo, tables, clock)
		result.Trace = append(result.Trace, filterTrace(out.Trace, opts.TraceLevel)...)

		if out.Delivered {
			result.Success = true
			result.Delivered = true
			return result
		}

		for _, em := range out.Emissions {
			q.Enqueue(em.Packet, em.NodeID, em.IfaceID)
		}
		hops++
	}

	if hops >= opts.MaxHops {
		result.Loop = true
		result.Reason = "Max hops exceeded"
		return result
	}

	if len(result.Trace) > 0 {
		last := result.Trace[len(result.Trace)-1]
		// blocked is keyed to the final trace action alone: only an ACL
		// deny counts. TTL expiry, VLAN rejection, and other drops leave
		// blocked false even though delivery also fails.
		result.Blocked = last.Action == model.TraceACLDeny
		if last.Reason != "" {
			result.Reason = last.Reason
		} else {
			result.Reason = "Packet did not reach destination"
		}
		return result
	}

	result.Reason = "Packet did not reach destination"
	return result
}

// filterTrace applies the minimal trace level by suppressing receive and
// learn hops; detailed keeps everything.
func filterTrace(hops []model.TraceHop, level model.TraceLevel) []model.TraceHop {
	if level != model.TraceLevelMinimal {
		return hops
	}
	var kept []model.TraceHop
	for _, h := range hops {
		if h.Action == model.TraceReceive || h.Action == model.TraceLearn {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}
