package domain

import "testing"

func TestUrgencyPriorities(t *testing.T) {
	tests := []struct {
		urgency  Urgency
		name     string
		priority int
	}{
		{UrgencyCritical{}, "critical", 10},
		{UrgencyImportant{}, "important", 7},
		{UrgencyMinor{}, "minor", 3},
	}

	for _, tc := range tests {
		if got := tc.urgency.Priority(); got != tc.priority {
			t.Errorf("%s priority = %d, want %d", tc.name, got, tc.priority)
		}
		if got := tc.urgency.Name(); got != tc.name {
			t.Errorf("urgency name = %q, want %q", got, tc.name)
		}
	}
}

func TestParseUrgency(t *testing.T) {
	for _, name := range []string{"critical", "important", "minor"} {
		urgency, err := ParseUrgency(name)
		if err != nil {
			t.Fatalf("ParseUrgency(%q) error: %v", name, err)
		}
		if urgency.Name() != name {
			t.Errorf("ParseUrgency(%q).Name() = %q", name, urgency.Name())
		}
	}

	if _, err := ParseUrgency("urgent"); err == nil {
		t.Error("expected error for unknown urgency")
	}
}
