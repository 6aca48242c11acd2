package lighting

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestSunToSun(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want [3]float32
	}{
		{"overhead", Sun{Elevation: 90}, [3]float32{0, 1, 0}},
		{"front horizon", Sun{}, [3]float32{0, 0, 1}},
		{"east horizon", Sun{Azimuth: 90}, [3]float32{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sun.ToSun()
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("ToSun() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSunDirectionIsOpposite(t *testing.T) {
	s := DefaultSun()
	to, dir := s.ToSun(), s.Direction()
	var length float32
	for i := range to {
		if !approx(to[i], -dir[i]) {
			t.Errorf("Direction()[%d] = %v, want %v", i, dir[i], -to[i])
		}
		length += to[i] * to[i]
	}
	if !approx(length, 1) {
		t.Errorf("|ToSun()|^2 = %v, want 1", length)
	}
}
