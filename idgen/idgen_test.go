package idgen

import (
	"testing"
	"time"
)

func TestNextCode(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		last    string
		width   int
		want    string
		wantErr bool
	}{
		{name: "empty table starts at minimum", prefix: "PAR", last: "", width: 3, want: "PAR001"},
		{name: "simple increment", prefix: "PAR", last: "PAR004", width: 3, want: "PAR005"},
		{name: "carries across padding", prefix: "PAR", last: "PAR009", width: 3, want: "PAR010"},
		{name: "student code keeps year prefix", prefix: "WCU25", last: "WCU250042", width: 4, want: "WCU250043"},
		{name: "grows past width rather than wrapping", prefix: "LIB", last: "LIB999", width: 3, want: "LIB1000"},
		{name: "too short", prefix: "LIB", last: "LI", width: 3, wantErr: true},
		{name: "non-digit suffix", prefix: "LIB", last: "LIBXYZ", width: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextCode(tt.prefix, tt.last, tt.width)
			if (err != nil) != tt.wantErr {
				t.Fatalf("nextCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("nextCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStudentPrefix(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "2025", date: "2025-06-01", want: "WCU25"},
		{name: "single-digit year zero-padded", date: "2009-01-15", want: "WCU09"},
		{name: "century rollover", date: "2100-01-01", want: "WCU00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatal(err)
			}
			if got := StudentPrefix(now); got != tt.want {
				t.Errorf("StudentPrefix() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The year boundary must reset the sequence: the last student of the old
// year does not feed the new year's counter because only rows matching
// the new prefix are consulted.
func TestYearScopedSequence(t *testing.T) {
	jan1, _ := time.Parse("2006-01-02", "2026-01-01")
	prefix := StudentPrefix(jan1)
	if prefix != "WCU26" {
		t.Fatalf("prefix = %q, want WCU26", prefix)
	}
	// no WCU26 rows yet → minimum, regardless of any WCU25 code
	got, err := nextCode(prefix, "", 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != "WCU260001" {
		t.Errorf("first code of new year = %q, want WCU260001", got)
	}
}
