package mactable

import "testing"

func TestTable_LearnAndLookup(t *testing.T) {
	tbl := New()

	changed := tbl.Learn("02:AA:00:00:00:01", 1, "eth0", 1)
	if !changed {
		t.Error("first learn of a binding should report changed=true")
	}

	iface, ok := tbl.Lookup("02:AA:00:00:00:01", 1)
	if !ok || iface != "eth0" {
		t.Errorf("Lookup() = (%q, %v), want (eth0, true)", iface, ok)
	}

	if _, ok := tbl.Lookup("02:AA:00:00:00:01", 2); ok {
		t.Error("lookup on a different VLAN should miss")
	}
}

func TestTable_Learn_CaseInsensitiveMAC(t *testing.T) {
	tbl := New()
	tbl.Learn("02:aa:00:00:00:01", 1, "eth0", 1)

	iface, ok := tbl.Lookup("02:AA:00:00:00:01", 1)
	if !ok || iface != "eth0" {
		t.Errorf("Lookup() should be case-insensitive on MAC, got (%q, %v)", iface, ok)
	}
}

func TestTable_Learn_NoChangeOnSameInterface(t *testing.T) {
	tbl := New()
	tbl.Learn("02:AA:00:00:00:01", 1, "eth0", 1)

	changed := tbl.Learn("02:AA:00:00:00:01", 1, "eth0", 5)
	if changed {
		t.Error("re-learning at the same interface should report changed=false")
	}
}

func TestTable_Learn_HostMoved(t *testing.T) {
	tbl := New()
	tbl.Learn("02:AA:00:00:00:01", 1, "eth0", 1)

	changed := tbl.Learn("02:AA:00:00:00:01", 1, "eth1", 2)
	if !changed {
		t.Error("learning at a new interface should report changed=true")
	}

	iface, ok := tbl.Lookup("02:AA:00:00:00:01", 1)
	if !ok || iface != "eth1" {
		t.Errorf("expected host-moved entry to overwrite, got (%q, %v)", iface, ok)
	}
}

func TestTable_Len(t *testing.T) {
	tbl := New()
	if tbl.Len() != 0 {
		t.Fatalf("new table should be empty, got len %d", tbl.Len())
	}
	tbl.Learn("02:AA:00:00:00:01", 1, "eth0", 1)
	tbl.Learn("02:AA:00:00:00:02", 1, "eth1", 1)
	tbl.Learn("02:AA:00:00:00:01", 2, "eth0", 1) // same MAC, different VLAN
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
}
