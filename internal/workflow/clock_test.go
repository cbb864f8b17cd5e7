package workflow

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9am", 0, true},
		{"25:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if err := ParseDate("2025-03-12"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, in := range []string{"12/03/2025", "2025-13-40", ""} {
		if err := ParseDate(in); !IsValidation(err) {
			t.Errorf("ParseDate(%q): expected validation error, got %v", in, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"contained", 540, 600, 550, 560, true},
		{"partial front", 540, 600, 570, 630, true},
		{"partial back", 570, 630, 540, 600, true},
		{"back to back after", 540, 600, 600, 630, false},
		{"back to back before", 600, 630, 540, 600, false},
		{"disjoint", 540, 600, 700, 760, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}
