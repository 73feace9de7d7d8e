package service

import "testing"

func TestBandForPercentage(t *testing.T) {
	svc := NewGradeBandService()
	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "C2"},
		{90, "C2"},
		{89.9, "C1"},
		{80, "C1"},
		{79.9, "B2"},
		{65, "B2"},
		{64.9, "B1"},
		{50, "B1"},
		{49.9, "A2"},
		{30, "A2"},
		{29.9, "A1"},
		{0, "A1"},
	}
	for _, tt := range tests {
		if got := svc.BandForPercentage(tt.percentage); got != tt.want {
			t.Errorf("BandForPercentage(%v) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}
