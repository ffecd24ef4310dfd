package cmd

import (
	"testing"
	"time"
)

func TestParseCountdown(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "45", want: 45 * time.Minute},
		{in: "1", want: time.Minute},
		{in: "90s", want: 90 * time.Second},
		{in: "1h30m", want: 90 * time.Minute},
		{in: " 10 ", want: 10 * time.Minute},
	}

	for _, tt := range tests {
		got, err := parseCountdown(tt.in)
		if err != nil {
			t.Fatalf("parseCountdown(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseCountdown(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCountdownInvalid(t *testing.T) {
	tests := []string{"", "0", "-5", "-30s", "soon", "1.5", "10x"}

	for _, in := range tests {
		if _, err := parseCountdown(in); err == nil {
			t.Fatalf("parseCountdown(%q): expected error", in)
		}
	}
}

func TestValidateClock(t *testing.T) {
	valid := []string{"00:00", "7:05", "09:30", "23:59"}
	for _, in := range valid {
		if err := validateClock(in); err != nil {
			t.Fatalf("validateClock(%q): %v", in, err)
		}
	}

	invalid := []string{"", "24:00", "12:60", "7", "7:5:0", "aa:bb", "007:05"}
	for _, in := range invalid {
		if err := validateClock(in); err == nil {
			t.Fatalf("validateClock(%q): expected error", in)
		}
	}
}

func TestValidateStartExclusion(t *testing.T) {
	if err := validateStartExclusion("10", "23:00"); err == nil {
		t.Fatal("expected error when both flags are set")
	}
	if err := validateStartExclusion("10", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateStartExclusion("", "23:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateStartExclusion("", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
