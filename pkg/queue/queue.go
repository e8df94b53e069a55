// Package queue implements the simulator driver's event queue: a strict
// FIFO of pending packet deliveries paired with the monotone logical clock
// that timestamps them.
package queue

import "github.com/netlab-project/netlab/pkg/model"

// Event is a scheduled delivery: a packet destined for one interface of one
// node, stamped with the logical clock value at enqueue.
type Event struct {
	Packet  *model.Packet
	NodeID  string
	IfaceID string
	Time    int64
}

// Queue is a FIFO of pending Events with an owned logical clock. It is not
// safe for concurrent use — one simulation call owns exactly one Queue.
type Queue struct {
	events []Event
	clock  int64
}

// New returns an empty queue with its clock at zero.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends an event to the back of the queue, stamping it with the
// queue's current clock value.
func (q *Queue) Enqueue(pkt *model.Packet, nodeID, ifaceID string) {
	q.events = append(q.events, Event{
		Packet:  pkt,
		NodeID:  nodeID,
		IfaceID: ifaceID,
		Time:    q.clock,
	})
}

// Dequeue removes and returns the front event. The second return value is
// false if the queue is empty.
func (q *Queue) Dequeue() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// Empty reports whether the queue has no pending events.
func (q *Queue) Empty() bool {
	return len(q.events) == 0
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Tick advances the logical clock by one and returns the new value. The
// driver calls this once per dequeued event, before dispatching it.
func (q *Queue) Tick() int64 {
	q.clock++
	return q.clock
}

// Clock returns the current logical clock value without advancing it.
func (q *Queue) Clock() int64 {
	return q.clock
}
