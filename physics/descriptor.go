package physics

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShapeKind selects the collision geometry built for a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
	ShapeCustomPolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "Box"
	case ShapeCircle:
		return "Circle"
	case ShapeCustomPolygon:
		return "CustomPolygon"
	default:
		return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseShapeKind maps a persisted name to a kind. Unknown names fall back to
// a box, the same as a missing key.
func ParseShapeKind(s string) ShapeKind {
	switch strings.TrimSpace(s) {
	case "Circle":
		return ShapeCircle
	case "CustomPolygon":
		return ShapeCustomPolygon
	default:
		return ShapeBox
	}
}

func (k ShapeKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *ShapeKind) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("shapeType must be a string")
	}
	*k = ParseShapeKind(value.Value)
	return nil
}

// Positioning tells where custom polygon coordinates are anchored.
type Positioning int

const (
	// OnCenter coordinates are offsets from the object's center.
	OnCenter Positioning = iota
	// OnOrigin coordinates are relative to the object's origin point.
	OnOrigin
)

func (p Positioning) String() string {
	if p == OnOrigin {
		return "OnOrigin"
	}
	return "OnCenter"
}

func (p Positioning) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *Positioning) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("positioning must be a string")
	}
	if strings.TrimSpace(value.Value) == "OnCenter" {
		*p = OnCenter
	} else {
		*p = OnOrigin
	}
	return nil
}

// ShapeDescriptor is the persisted physics configuration of one object.
type ShapeDescriptor struct {
	Dynamic        bool        `yaml:"dynamic"`
	FixedRotation  bool        `yaml:"fixedRotation"`
	Bullet         bool        `yaml:"isBullet"`
	Density        float64     `yaml:"massDensity"`
	Friction       float64     `yaml:"averageFriction"`
	Restitution    float64     `yaml:"averageRestitution"`
	LinearDamping  float64     `yaml:"linearDamping"`
	AngularDamping float64     `yaml:"angularDamping"`
	Shape          ShapeKind   `yaml:"shapeType"`
	Positioning    Positioning `yaml:"positioning"`
	PolygonWidth   float64     `yaml:"polygonWidth"`
	PolygonHeight  float64     `yaml:"polygonHeight"`
	AutoResizing   bool        `yaml:"autoResizing"`
	PolygonScaleX  float64     `yaml:"polygonScaleX"`
	PolygonScaleY  float64     `yaml:"polygonScaleY"`

	Polygon []Vertex `yaml:"-"`
}

func DefaultDescriptor() ShapeDescriptor {
	return ShapeDescriptor{
		Dynamic:        true,
		Density:        1,
		Friction:       0.8,
		Restitution:    0,
		LinearDamping:  0.1,
		AngularDamping: 0.1,
		Shape:          ShapeBox,
		Positioning:    OnCenter,
		PolygonWidth:   200,
		PolygonHeight:  200,
		PolygonScaleX:  1,
		PolygonScaleY:  1,
	}
}

// PolygonScale returns the factor applied to polygon coordinates for an
// object of the given size.
func (d *ShapeDescriptor) PolygonScale(width, height float64) (float64, float64) {
	if !d.AutoResizing {
		return d.PolygonScaleX, d.PolygonScaleY
	}
	sx, sy := 1.0, 1.0
	if d.PolygonWidth > 0 {
		sx = width / d.PolygonWidth
	}
	if d.PolygonHeight > 0 {
		sy = height / d.PolygonHeight
	}
	return sx, sy
}

// descriptorDoc is the persisted layout, with the polygon kept as a string.
type descriptorDoc struct {
	Dynamic        bool        `yaml:"dynamic"`
	FixedRotation  bool        `yaml:"fixedRotation"`
	Bullet         bool        `yaml:"isBullet"`
	Density        float64     `yaml:"massDensity"`
	Friction       float64     `yaml:"averageFriction"`
	Restitution    float64     `yaml:"averageRestitution"`
	LinearDamping  float64     `yaml:"linearDamping"`
	AngularDamping float64     `yaml:"angularDamping"`
	Shape          ShapeKind   `yaml:"shapeType"`
	CoordsList     string      `yaml:"coordsList,omitempty"`
	Positioning    Positioning `yaml:"positioning"`
	PolygonWidth   float64     `yaml:"polygonWidth"`
	PolygonHeight  float64     `yaml:"polygonHeight"`
	AutoResizing   bool        `yaml:"autoResizing"`
	PolygonScaleX  float64     `yaml:"polygonScaleX"`
	PolygonScaleY  float64     `yaml:"polygonScaleY"`
}

func (d *ShapeDescriptor) doc() descriptorDoc {
	return descriptorDoc{
		Dynamic:        d.Dynamic,
		FixedRotation:  d.FixedRotation,
		Bullet:         d.Bullet,
		Density:        d.Density,
		Friction:       d.Friction,
		Restitution:    d.Restitution,
		LinearDamping:  d.LinearDamping,
		AngularDamping: d.AngularDamping,
		Shape:          d.Shape,
		CoordsList:     FormatPolygon(d.Polygon),
		Positioning:    d.Positioning,
		PolygonWidth:   d.PolygonWidth,
		PolygonHeight:  d.PolygonHeight,
		AutoResizing:   d.AutoResizing,
		PolygonScaleX:  d.PolygonScaleX,
		PolygonScaleY:  d.PolygonScaleY,
	}
}

func (doc descriptorDoc) descriptor() ShapeDescriptor {
	return ShapeDescriptor{
		Dynamic:        doc.Dynamic,
		FixedRotation:  doc.FixedRotation,
		Bullet:         doc.Bullet,
		Density:        doc.Density,
		Friction:       doc.Friction,
		Restitution:    doc.Restitution,
		LinearDamping:  doc.LinearDamping,
		AngularDamping: doc.AngularDamping,
		Shape:          doc.Shape,
		Positioning:    doc.Positioning,
		PolygonWidth:   doc.PolygonWidth,
		PolygonHeight:  doc.PolygonHeight,
		AutoResizing:   doc.AutoResizing,
		PolygonScaleX:  doc.PolygonScaleX,
		PolygonScaleY:  doc.PolygonScaleY,
		Polygon:        ParsePolygon(doc.CoordsList),
	}
}

// UnmarshalYAML fills missing keys with defaults. Documents written before
// the positioning key existed anchor polygons on the origin.
func (d *ShapeDescriptor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("physics descriptor must be a mapping")
	}
	def := DefaultDescriptor()
	doc := def.doc()
	doc.Positioning = OnOrigin
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*d = doc.descriptor()
	return nil
}

func (d ShapeDescriptor) MarshalYAML() (interface{}, error) {
	return d.doc(), nil
}

const (
	coordSeparator = ";"
	pairSeparator  = "/"
)

// ParsePolygon reads "x;y" pairs separated by "/". Newline separated pairs
// are accepted as well. Tokens that do not hold exactly two numbers are
// skipped.
func ParsePolygon(s string) []Vertex {
	s = strings.NewReplacer("\r\n", pairSeparator, "\n", pairSeparator).Replace(s)
	return ParsePolygonWith(s, coordSeparator, pairSeparator)
}

func ParsePolygonWith(s, coordSep, pairSep string) []Vertex {
	var out []Vertex
	for _, pair := range strings.Split(s, pairSep) {
		parts := strings.Split(strings.TrimSpace(pair), coordSep)
		if len(parts) != 2 {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		out = append(out, Vertex{X: x, Y: y})
	}
	return out
}

func FormatPolygon(vs []Vertex) string {
	return FormatPolygonWith(vs, coordSeparator, pairSeparator)
}

func FormatPolygonWith(vs []Vertex, coordSep, pairSep string) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(pairSep)
		}
		b.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
		b.WriteString(coordSep)
		b.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
	}
	return b.String()
}
