package model

import "testing"

func TestPriorityRank(t *testing.T) {
	cases := []struct {
		p    Priority
		rank int
	}{
		{PriorityCritical, 1},
		{PriorityHigh, 2},
		{PriorityNormal, 3},
		{PriorityLow, 4},
		{Priority("Escalated"), 5},
		{Priority(""), 5},
	}
	for _, c := range cases {
		if got := c.p.Rank(); got != c.rank {
			t.Errorf("Rank(%q) = %d, want %d", c.p, got, c.rank)
		}
	}
}

func TestPriorityMultiplier(t *testing.T) {
	cases := []struct {
		p    Priority
		mult float64
	}{
		{PriorityCritical, 1.2},
		{PriorityHigh, 1.1},
		{PriorityNormal, 1.0},
		{PriorityLow, 0.9},
		{Priority("whatever"), 1.0},
	}
	for _, c := range cases {
		if got := c.p.Multiplier(); got != c.mult {
			t.Errorf("Multiplier(%q) = %v, want %v", c.p, got, c.mult)
		}
	}
}

func TestTechnicianHasCapacity(t *testing.T) {
	tech := Technician{WorkloadCapacity: 5, CurrentAssignments: 4}
	if !tech.HasCapacity() {
		t.Fatalf("expected capacity left at 4/5")
	}
	tech.CurrentAssignments = 5
	if tech.HasCapacity() {
		t.Fatalf("expected no capacity at 5/5")
	}
}

func TestTechnicianUtilization(t *testing.T) {
	if u := (Technician{WorkloadCapacity: 0}).Utilization(); u != 1 {
		t.Errorf("zero capacity utilization = %v, want 1", u)
	}
	if u := (Technician{WorkloadCapacity: 4, CurrentAssignments: 1}).Utilization(); u != 0.25 {
		t.Errorf("utilization = %v, want 0.25", u)
	}
}

func TestCalendarEntryAllows(t *testing.T) {
	if (CalendarEntry{Available: true, MaxAssignments: 0}).Allows() {
		t.Errorf("zero max assignments should block the day")
	}
	if (CalendarEntry{Available: false, MaxAssignments: 3}).Allows() {
		t.Errorf("unavailable entry should block the day")
	}
	if !(CalendarEntry{Available: true, MaxAssignments: 1}).Allows() {
		t.Errorf("available entry with headroom should allow")
	}
}
