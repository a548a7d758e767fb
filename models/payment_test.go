package models

import "testing"

func TestPaymentCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending to approved", from: PaymentPending, to: PaymentApproved, want: true},
		{name: "pending to rejected", from: PaymentPending, to: PaymentRejected, want: true},
		{name: "pending back to pending", from: PaymentPending, to: PaymentPending, want: false},
		{name: "approved is terminal", from: PaymentApproved, to: PaymentRejected, want: false},
		{name: "approved cannot re-approve", from: PaymentApproved, to: PaymentApproved, want: false},
		{name: "rejected is terminal", from: PaymentRejected, to: PaymentApproved, want: false},
		{name: "no reopening", from: PaymentRejected, to: PaymentPending, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payment{Status: tt.from}
			if got := p.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%q→%q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"CBE", "Telebirr", "Awash", "Other"} {
		if !ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = false", m)
		}
	}
	for _, m := range []string{"", "cbe", "PayPal"} {
		if ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = true", m)
		}
	}
}

func TestValidGrade(t *testing.T) {
	for _, g := range []string{"KG1", "KG2", "KG3", "1", "6"} {
		if !ValidGrade(g) {
			t.Errorf("ValidGrade(%q) = false", g)
		}
	}
	for _, g := range []string{"", "KG4", "7", "kg1"} {
		if ValidGrade(g) {
			t.Errorf("ValidGrade(%q) = true", g)
		}
	}
}

func TestGradesListMatchesValidGrade(t *testing.T) {
	gs := Grades()
	if len(gs) != 9 {
		t.Fatalf("Grades() returned %d levels, want 9", len(gs))
	}
	for _, g := range gs {
		if !ValidGrade(g) {
			t.Errorf("Grades() contains %q but ValidGrade rejects it", g)
		}
	}
}
