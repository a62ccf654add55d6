package physics

import (
	"math"
	"testing"
)

type testObject struct {
	x, y   float64
	w, h   float64
	angle  float64
	ox, oy float64
}

func (o *testObject) X() float64           { return o.x }
func (o *testObject) Y() float64           { return o.y }
func (o *testObject) SetX(x float64)       { o.x = x }
func (o *testObject) SetY(y float64)       { o.y = y }
func (o *testObject) Width() float64       { return o.w }
func (o *testObject) Height() float64      { return o.h }
func (o *testObject) Angle() float64       { return o.angle }
func (o *testObject) SetAngle(deg float64) { o.angle = deg }
func (o *testObject) DrawableX() float64   { return o.x - o.ox }
func (o *testObject) DrawableY() float64   { return o.y - o.oy }

func newTestWorld(t *testing.T, gx, gy float64) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.GravityX = gx
	cfg.GravityY = gy
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func undampedBox() ShapeDescriptor {
	d := DefaultDescriptor()
	d.LinearDamping = 0
	d.AngularDamping = 0
	return d
}

func frame(dt float64, syncs ...*BodySync) {
	for _, s := range syncs {
		s.Pre(dt)
	}
	for _, s := range syncs {
		s.Post()
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
