package models

import "testing"

func TestStatusPredicates(t *testing.T) {
	cases := []struct {
		status     AppraisalStatus
		canSend    bool
		canApprove bool
		canAppeal  bool
		terminal   bool
	}{
		{StatusNew, true, false, false, false},
		{StatusSent, true, true, true, false},
		{StatusReturned, true, false, false, false},
		{StatusComplete, false, false, false, true},
	}

	for _, tc := range cases {
		if got := tc.status.CanSend(); got != tc.canSend {
			t.Errorf("%s: CanSend() = %v, want %v", tc.status, got, tc.canSend)
		}
		if got := tc.status.CanApprove(); got != tc.canApprove {
			t.Errorf("%s: CanApprove() = %v, want %v", tc.status, got, tc.canApprove)
		}
		if got := tc.status.CanAppeal(); got != tc.canAppeal {
			t.Errorf("%s: CanAppeal() = %v, want %v", tc.status, got, tc.canAppeal)
		}
		if got := tc.status.Terminal(); got != tc.terminal {
			t.Errorf("%s: Terminal() = %v, want %v", tc.status, got, tc.terminal)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []AppraisalStatus{StatusNew, StatusSent, StatusReturned, StatusComplete} {
		if !s.Valid() {
			t.Errorf("%s: Valid() = false, want true", s)
		}
	}
	if AppraisalStatus("draft").Valid() {
		t.Error(`Valid("draft") = true, want false`)
	}
}

func TestRubricCapabilitiesTotal(t *testing.T) {
	var empty RubricPayload
	if got := empty.CapabilitiesTotal(); got != 0 {
		t.Errorf("empty rubric CapabilitiesTotal() = %v, want 0", got)
	}

	withSection := RubricPayload{Capabilities: &CapabilitiesRubric{Total: 12.5}}
	if got := withSection.CapabilitiesTotal(); got != 12.5 {
		t.Errorf("CapabilitiesTotal() = %v, want 12.5", got)
	}
}
