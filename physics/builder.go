package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidsync/common"
)

// build creates the body and its fixtures from the object's current pose and
// size. Fixtures are never added or removed afterwards; a change of geometry
// goes through rebuild.
func (s *BodySync) build() {
	w := s.world
	if w == nil || w.space == nil || s.obj == nil {
		return
	}
	obj := s.obj
	scale := w.scale
	d := &s.desc
	width, height := obj.Width(), obj.Height()

	var body *cp.Body
	if d.Dynamic {
		body = cp.NewBody(1, 1)
	} else {
		body = cp.NewStaticBody()
	}
	mx, my, rad := ToSim(obj.DrawableX()+width/2, obj.DrawableY()+height/2, obj.Angle(), scale)
	body.SetAngle(rad)
	body.SetPosition(cp.Vector{X: mx, Y: my})
	body.UserData = s.handle
	body.SetVelocityUpdateFunc(s.integrateVelocity)
	w.space.AddBody(body)

	var shapes []*cp.Shape
	switch d.Shape {
	case ShapeBox:
		shapes = append(shapes, boxShape(body, width, height, scale))
	case ShapeCircle:
		r := (width*scale.invX + height*scale.invY) / 4
		if r <= 0 {
			r = 1
		}
		shapes = append(shapes, cp.NewCircle(body, r, cp.Vector{}))
	case ShapeCustomPolygon:
		shapes = s.polygonShapes(body, width, height)
	default:
		log.Printf("PhysicsWorld: owner %d has unknown shape %v, using a box", s.handle, d.Shape)
		shapes = append(shapes, boxShape(body, width, height, scale))
	}

	density := math.Max(0, d.Density)
	for _, shape := range shapes {
		shape.SetDensity(density)
		shape.SetFriction(math.Max(0, d.Friction))
		shape.SetElasticity(math.Max(0, d.Restitution))
		shape.SetCollisionType(collisionTypeBody)
		w.space.AddShape(shape)
	}

	s.body = body
	s.shapes = shapes
	s.builtW = int(width)
	s.builtH = int(height)
	s.applyMassRules()
}

func boxShape(body *cp.Body, width, height float64, scale Scale) *cp.Shape {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return cp.NewBox(body, width*scale.invX, height*scale.invY, 0)
}

// polygonShapes turns the descriptor's contour into one triangle fixture per
// ear. A contour that cannot be triangulated yields no fixtures.
func (s *BodySync) polygonShapes(body *cp.Body, width, height float64) []*cp.Shape {
	d := &s.desc
	tris, ok := Triangulate(d.Polygon)
	if !ok {
		log.Printf("PhysicsWorld: owner %d polygon with %d points could not be triangulated", s.handle, len(d.Polygon))
		return nil
	}

	sx, sy := d.PolygonScale(width, height)
	var offX, offY float64
	if d.Positioning == OnOrigin {
		offX = s.obj.X() - s.obj.DrawableX() - width/2
		offY = s.obj.Y() - s.obj.DrawableY() - height/2
	}

	scale := s.world.scale
	out := make([]*cp.Shape, 0, len(tris)/3)
	for i := 0; i+2 < len(tris); i += 3 {
		verts := make([]cp.Vector, 3)
		for j := range verts {
			v := tris[i+j]
			verts[j] = scale.VecToSim(v.X*sx+offX, v.Y*sy+offY)
		}
		if math.Abs(verts[1].Sub(verts[0]).Cross(verts[2].Sub(verts[0]))) <= Epsilon {
			continue
		}
		out = append(out, cp.NewPolyShape(body, 3, verts, cp.NewTransformIdentity(), 0))
	}
	return out
}

// applyMassRules keeps dynamic bodies integrable. A body without fixtures, or
// whose fixtures carry no mass, gets unit mass and cannot rotate.
func (s *BodySync) applyMassRules() {
	body := s.body
	if body == nil || body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	if m := body.Mass(); len(s.shapes) == 0 || !(m > 0) || !common.Finite(m) {
		body.SetMass(1)
		body.SetMoment(math.Inf(1))
	}
	if i := body.Moment(); !(i > 0) || math.IsNaN(i) {
		body.SetMoment(math.Inf(1))
	}
	if s.desc.FixedRotation {
		body.SetMoment(math.Inf(1))
		body.SetAngularVelocity(0)
	}
}

// integrateVelocity applies gravity and forces, then this body's own linear
// and angular damping.
func (s *BodySync) integrateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	lin := 1 / (1 + dt*math.Max(0, s.desc.LinearDamping))
	ang := 1 / (1 + dt*math.Max(0, s.desc.AngularDamping))
	if lin == 1 && ang == 1 {
		return
	}
	// v*ang + v*(lin-ang) = v*lin, w*ang; forces were cleared above.
	cp.BodyUpdateVelocity(body, body.Velocity().Mult(lin-ang), ang, 1)
}
