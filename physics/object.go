package physics

// Handle identifies the owner of a body. Bodies carry it in their user data
// so contact events can be attributed without holding the owner itself.
type Handle uint64

// Object is the pose surface of a host object. Positions and sizes are in
// pixels with Y growing downward; angles are in degrees, clockwise.
type Object interface {
	X() float64
	Y() float64
	SetX(x float64)
	SetY(y float64)
	Width() float64
	Height() float64
	Angle() float64
	SetAngle(deg float64)
	// DrawableX and DrawableY locate the top-left corner of the drawn box.
	DrawableX() float64
	DrawableY() float64
}

func handleOf(data interface{}) (Handle, bool) {
	h, ok := data.(Handle)
	return h, ok
}
