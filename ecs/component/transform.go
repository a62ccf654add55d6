package component

// Transform is the render-space pose of an entity. X and Y locate the origin
// point; OriginX and OriginY give that point's offset from the top-left corner
// of the drawable area. Angle is in degrees, clockwise.
type Transform struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Angle   float64 `yaml:"angle"`
	OriginX float64 `yaml:"originX"`
	OriginY float64 `yaml:"originY"`
}

func (t Transform) DrawableX() float64 { return t.X - t.OriginX }
func (t Transform) DrawableY() float64 { return t.Y - t.OriginY }

var TransformComponent = NewComponent[Transform]()
