// Package audit provides audit logging for simulation runs.
package audit

import (
	"fmt"
	"time"
)

// Event represents one audited simulation run.
type Event struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	TopologyName string        `json:"topology_name"`
	SourceNode   string        `json:"source_node"`
	DestNode     string        `json:"dest_node"`
	Protocol     string        `json:"protocol"`
	Success      bool          `json:"success"`
	Delivered    bool          `json:"delivered"`
	Blocked      bool          `json:"blocked"`
	Loop         bool          `json:"loop"`
	Reason       string        `json:"reason,omitempty"`
	HopCount     int           `json:"hop_count"`
	Duration     time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events.
type Filter struct {
	TopologyName string
	SourceNode   string
	DestNode     string
	StartTime    time.Time
	EndTime      time.Time
	SuccessOnly  bool
	FailureOnly  bool
	Limit        int
	Offset       int
}

// NewEvent creates a new audit event for one simulation run.
func NewEvent(topologyName, sourceNode, destNode string) *Event {
	return &Event{
		ID:           generateID(),
		Timestamp:    time.Now(),
		TopologyName: topologyName,
		SourceNode:   sourceNode,
		DestNode:     destNode,
	}
}

// WithProtocol sets the simulated protocol name.
func (e *Event) WithProtocol(proto string) *Event {
	e.Protocol = proto
	return e
}

// WithResult copies the outcome of a simulation run onto the event.
func (e *Event) WithResult(success, delivered, blocked, loop bool, reason string, hopCount int) *Event {
	e.Success = success
	e.Delivered = delivered
	e.Blocked = blocked
	e.Loop = loop
	e.Reason = reason
	e.HopCount = hopCount
	return e
}

// WithDuration sets the wall-clock duration of the run.
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
