package services

import "testing"

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"85", 85, true},
		{" 42", 42, true},
		{"85.7", 85, true},
		{"79%", 79, true},
		{"-5", -5, true},
		{"+60", 60, true},
		{"150", 150, true},
		{"", 0, false},
		{"abc", 0, false},
		{"%80", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePercentage(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePercentage(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		match string
		want  Band
	}{
		{"100", BandStrong},
		{"80", BandStrong},
		{"79", BandModerate},
		{"60", BandModerate},
		{"59", BandWeak},
		{"0", BandWeak},
		{"n/a", BandWeak},
		{"250", BandStrong},
	}

	for _, tt := range tests {
		if got := BandFor(tt.match); got != tt.want {
			t.Errorf("BandFor(%q) = %s, want %s", tt.match, got, tt.want)
		}
	}
}

func TestShortlistedUsesSixtyPercent(t *testing.T) {
	if !Shortlisted("79") {
		t.Errorf("79 should clear the shortlist threshold")
	}
	if !Shortlisted("60") {
		t.Errorf("60 should clear the shortlist threshold")
	}
	if Shortlisted("59") {
		t.Errorf("59 should not clear the shortlist threshold")
	}
	if Shortlisted("unknown") {
		t.Errorf("non-numeric match should not clear the shortlist threshold")
	}
}

func TestBandStyles(t *testing.T) {
	if got := BandStrong.Style().Foreground; got != "#10b981" {
		t.Errorf("strong foreground = %s", got)
	}
	if got := BandModerate.Style().Token; got != "yellow" {
		t.Errorf("moderate token = %s", got)
	}
	if got := BandWeak.Style().Background; got != "#fee2e2" {
		t.Errorf("weak background = %s", got)
	}
}
