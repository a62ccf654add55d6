package physics

import (
	"github.com/jakecoffman/cp"
)

// BodySync binds one host object to its rigid body. Pre runs before the
// frame's game logic, Post after it.
type BodySync struct {
	world  *World
	handle Handle
	obj    Object
	desc   ShapeDescriptor

	body           *cp.Body
	shapes         []*cp.Shape
	builtW, builtH int

	oldX, oldY, oldAngle float64
}

func (s *BodySync) Handle() Handle {
	if s == nil {
		return 0
	}
	return s.handle
}

func (s *BodySync) World() *World {
	if s == nil {
		return nil
	}
	return s.world
}

// Body returns the current body, building it if needed.
func (s *BodySync) Body() *cp.Body {
	if !s.ensureBody() {
		return nil
	}
	return s.body
}

// Fixtures returns the number of collision shapes on the body.
func (s *BodySync) Fixtures() int {
	if !s.ensureBody() {
		return 0
	}
	return len(s.shapes)
}

func (s *BodySync) Descriptor() ShapeDescriptor {
	if s == nil {
		return ShapeDescriptor{}
	}
	return s.desc
}

// Built reports whether the body currently exists.
func (s *BodySync) Built() bool {
	return s != nil && s.body != nil
}

func (s *BodySync) ensureBody() bool {
	if s == nil || s.obj == nil || s.world == nil || s.world.space == nil {
		return false
	}
	if s.body == nil {
		s.build()
	}
	return s.body != nil
}

// Pre advances the world once per frame and copies the body pose into the
// object.
func (s *BodySync) Pre(elapsed float64) {
	if !s.ensureBody() {
		return
	}
	s.world.Advance(elapsed)
	s.pull()
	s.oldX, s.oldY, s.oldAngle = s.obj.X(), s.obj.Y(), s.obj.Angle()
}

// Post pushes pose changes made by game logic back into the body, and
// rebuilds it when the object's size changed.
func (s *BodySync) Post() {
	if !s.ensureBody() {
		return
	}
	s.world.EndFrame()

	if int(s.obj.Width()) != s.builtW || int(s.obj.Height()) != s.builtH {
		s.rebuild()
	}

	if s.obj.X() == s.oldX && s.obj.Y() == s.oldY && s.obj.Angle() == s.oldAngle {
		return
	}
	s.push()
}

func (s *BodySync) pull() {
	obj := s.obj
	pos := s.body.Position()
	px, py, deg := FromSim(pos.X, pos.Y, s.body.Angle(), s.world.scale)
	originX := obj.X() - obj.DrawableX()
	originY := obj.Y() - obj.DrawableY()
	obj.SetX(px - obj.Width()/2 + originX)
	obj.SetY(py - obj.Height()/2 + originY)
	obj.SetAngle(deg)
}

func (s *BodySync) push() {
	obj := s.obj
	w, h := obj.Width(), obj.Height()
	mx, my, rad := ToSim(obj.DrawableX()+w/2, obj.DrawableY()+h/2, obj.Angle(), s.world.scale)
	s.body.SetAngle(rad)
	s.body.SetPosition(cp.Vector{X: mx, Y: my})

	// Static shapes are only re-indexed when they enter the space.
	if s.body.GetType() == cp.BODY_STATIC {
		space := s.world.space
		s.world.contacts.hold(s.handle, func() {
			for _, shape := range s.shapes {
				space.RemoveShape(shape)
				space.AddShape(shape)
			}
		})
	}
	s.body.Activate()
}

// rebuild recreates the body from the object's current geometry, carrying
// velocity across. Joints attached to the old body are dropped.
func (s *BodySync) rebuild() {
	if s == nil || s.body == nil {
		return
	}
	v := s.body.Velocity()
	av := s.body.AngularVelocity()
	s.destroyBody()
	s.build()
	if s.body == nil || s.body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	s.body.SetVelocityVector(v)
	if !s.desc.FixedRotation {
		s.body.SetAngularVelocity(av)
	}
}

func (s *BodySync) destroyBody() {
	if s.body == nil {
		return
	}
	if space := s.world.space; space != nil {
		var joints []*cp.Constraint
		s.body.EachConstraint(func(c *cp.Constraint) {
			joints = append(joints, c)
		})
		for _, c := range joints {
			if space.ContainsConstraint(c) {
				space.RemoveConstraint(c)
			}
		}
		for _, shape := range s.shapes {
			if space.ContainsShape(shape) {
				space.RemoveShape(shape)
			}
		}
		if space.ContainsBody(s.body) {
			space.RemoveBody(s.body)
		}
	}
	s.world.contacts.Purge(s.handle)
	s.body.UserData = nil
	s.body = nil
	s.shapes = nil
}

// Destroy removes the body from the world and forgets the object. The sync
// is unusable afterwards.
func (s *BodySync) Destroy() {
	if s == nil || s.world == nil {
		return
	}
	s.destroyBody()
	s.world.detach(s.handle)
	s.obj = nil
}
