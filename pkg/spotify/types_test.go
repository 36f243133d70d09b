package spotify

import (
	"testing"
)

func TestTrack_FormattedDuration(t *testing.T) {
	tests := []struct {
		durationMS int
		want       string
	}{
		{0, "0:00"},
		{999, "0:00"},
		{59999, "0:59"},
		{60000, "1:00"},
		{125000, "2:05"},
		{222000, "3:42"},
		{3600000, "60:00"},
	}

	for _, tt := range tests {
		track := Track{DurationMS: tt.durationMS}
		if got := track.FormattedDuration(); got != tt.want {
			t.Errorf("FormattedDuration(%d) = %q, want %q", tt.durationMS, got, tt.want)
		}
	}
}
