package physics

import (
	"errors"
	"testing"
)

func TestCoordinateRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		sx, sy    float64
		px, py, a float64
	}{
		{"origin", 100, 100, 0, 0, 0},
		{"positive", 100, 100, 320, 240, 45},
		{"negative", 50, 25, -12.5, -800, -170},
		{"anisotropic", 32, 64, 1024, 7, 359},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := NewScale(c.sx, c.sy)
			if err != nil {
				t.Fatalf("NewScale: %v", err)
			}
			mx, my, rad := ToSim(c.px, c.py, c.a, s)
			px, py, deg := FromSim(mx, my, rad, s)
			if !near(px, c.px, 1e-9) || !near(py, c.py, 1e-9) || !near(deg, c.a, 1e-9) {
				t.Fatalf("round trip got (%v,%v,%v), want (%v,%v,%v)", px, py, deg, c.px, c.py, c.a)
			}
		})
	}
}

func TestToSimFlipsVertical(t *testing.T) {
	s := DefaultScale()
	mx, my, rad := ToSim(100, 200, 90, s)
	if mx != 1 || my != -2 {
		t.Fatalf("expected (1,-2), got (%v,%v)", mx, my)
	}
	if !near(rad, -1.5707963267948966, 1e-12) {
		t.Fatalf("expected -pi/2, got %v", rad)
	}
	v := s.VecToSim(50, 50)
	if v.X != 0.5 || v.Y != -0.5 {
		t.Fatalf("VecToSim got %v", v)
	}
	x, y := s.VecFromSim(v)
	if !near(x, 50, 1e-12) || !near(y, 50, 1e-12) {
		t.Fatalf("VecFromSim got (%v,%v)", x, y)
	}
}

func TestNewScaleRejectsDegenerate(t *testing.T) {
	for _, c := range [][2]float64{{0, 1}, {1, -1}, {0, 0}} {
		if _, err := NewScale(c[0], c[1]); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("NewScale(%v,%v) err = %v, want ErrInvalidScale", c[0], c[1], err)
		}
	}
}
