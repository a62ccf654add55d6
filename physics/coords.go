package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidsync/common"
)

const DefaultPixelsPerMeter = 100.0

// Scale maps pixels to meters per axis.
type Scale struct {
	X, Y float64

	invX, invY float64
}

func NewScale(x, y float64) (Scale, error) {
	if !(x > 0) || !(y > 0) || !common.Finite(x) || !common.Finite(y) {
		return Scale{}, fmt.Errorf("%w: %v x %v", ErrInvalidScale, x, y)
	}
	return Scale{X: x, Y: y, invX: 1 / x, invY: 1 / y}, nil
}

func DefaultScale() Scale {
	s, _ := NewScale(DefaultPixelsPerMeter, DefaultPixelsPerMeter)
	return s
}

func (s Scale) InvX() float64 { return s.invX }
func (s Scale) InvY() float64 { return s.invY }

// ToSim converts a render-space point and angle into simulation space.
func ToSim(px, py, deg float64, s Scale) (mx, my, rad float64) {
	return px * s.invX, -py * s.invY, -common.DegToRad(deg)
}

// FromSim is the inverse of ToSim.
func FromSim(mx, my, rad float64, s Scale) (px, py, deg float64) {
	return mx * s.X, -my * s.Y, -common.RadToDeg(rad)
}

// VecToSim converts a render-space offset without touching angles.
func (s Scale) VecToSim(x, y float64) cp.Vector {
	return cp.Vector{X: x * s.invX, Y: -y * s.invY}
}

func (s Scale) VecFromSim(v cp.Vector) (float64, float64) {
	return v.X * s.X, -v.Y * s.Y
}
