package domain

import "testing"

func TestClaimStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to ClaimStatus
		want     bool
	}{
		{ClaimPending, ClaimApproved, true},
		{ClaimPending, ClaimRejected, true},
		{ClaimApproved, ClaimRejected, false},
		{ClaimApproved, ClaimPending, false},
		{ClaimRejected, ClaimApproved, false},
		{ClaimRejected, ClaimPending, false},
		{ClaimPending, ClaimPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestClaimStatus_Terminal(t *testing.T) {
	if ClaimPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	if !ClaimApproved.Terminal() {
		t.Fatalf("approved must be terminal")
	}
	if !ClaimRejected.Terminal() {
		t.Fatalf("rejected must be terminal")
	}
}
