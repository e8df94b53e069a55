// Package mactable implements the per-switch MAC-table store: the mapping
// from a (MAC, VLAN) pair learned at ingress to the interface it was last
// seen on.
package mactable

import (
	"strconv"
	"strings"
)

// Entry is one learned binding.
type Entry struct {
	MAC          string
	VLAN         int
	IfaceID      string
	LastSeenTime int64
}

// Table is one switch's MAC table. Switches never share state; the driver
// owns one Table per switch node for the lifetime of a single simulation.
type Table struct {
	entries map[string]Entry
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

func key(mac string, vlan int) string {
	return strings.ToUpper(mac) + "|" + strconv.Itoa(vlan)
}

// Learn inserts or updates the binding for (mac, vlan), overwriting any
// existing entry at a different interface (host-moved semantics). It
// reports whether the table changed: false means an identical binding (same
// interface) was already present, so the caller should not emit a
// duplicate "learn" trace.
func (t *Table) Learn(mac string, vlan int, ifaceID string, now int64) bool {
	k := key(mac, vlan)
	existing, ok := t.entries[k]
	changed := !ok || existing.IfaceID != ifaceID
	t.entries[k] = Entry{MAC: mac, VLAN: vlan, IfaceID: ifaceID, LastSeenTime: now}
	return changed
}

// Lookup returns the learned interface for (mac, vlan), if any.
func (t *Table) Lookup(mac string, vlan int) (string, bool) {
	e, ok := t.entries[key(mac, vlan)]
	if !ok {
		return "", false
	}
	return e.IfaceID, true
}

// Len returns the number of distinct (MAC, VLAN) bindings in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
