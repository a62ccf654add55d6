package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidsync/common"
)

// Forces, impulses and velocities below are in simulation units but use the
// render orientation: positive Y points down. Torque and angular velocity
// are passed through unchanged.

func (s *BodySync) SetStatic() {
	if !s.ensureBody() {
		return
	}
	s.desc.Dynamic = false
	s.body.SetType(cp.BODY_STATIC)
}

func (s *BodySync) SetDynamic() {
	if !s.ensureBody() {
		return
	}
	s.desc.Dynamic = true
	s.body.SetType(cp.BODY_DYNAMIC)
	s.applyMassRules()
	s.body.Activate()
}

func (s *BodySync) IsStatic() bool {
	if !s.ensureBody() {
		return false
	}
	return s.body.GetType() == cp.BODY_STATIC
}

func (s *BodySync) IsDynamic() bool {
	if !s.ensureBody() {
		return false
	}
	return s.body.GetType() == cp.BODY_DYNAMIC
}

func (s *BodySync) SetFixedRotation() {
	if !s.ensureBody() {
		return
	}
	s.desc.FixedRotation = true
	s.applyMassRules()
}

func (s *BodySync) SetFreeRotation() {
	if !s.ensureBody() {
		return
	}
	s.desc.FixedRotation = false
	s.body.AccumulateMassFromShapes()
	s.applyMassRules()
}

func (s *BodySync) IsFixedRotation() bool {
	if !s.ensureBody() {
		return false
	}
	return s.desc.FixedRotation
}

// SetBullet records the continuous-collision hint. The engine has no
// dedicated solver path for it.
func (s *BodySync) SetBullet(bullet bool) {
	if !s.ensureBody() {
		return
	}
	s.desc.Bullet = bullet
}

func (s *BodySync) IsBullet() bool {
	if !s.ensureBody() {
		return false
	}
	return s.desc.Bullet
}

func (s *BodySync) worldCenter() cp.Vector {
	return s.body.LocalToWorld(s.body.CenterOfGravity())
}

func polar(deg, length float64) cp.Vector {
	rad := common.DegToRad(deg)
	return cp.Vector{X: math.Cos(rad) * length, Y: -math.Sin(rad) * length}
}

// toward returns a vector of the given length pointing from the body to the
// render-space point (px, py).
func (s *BodySync) toward(px, py, length float64) cp.Vector {
	scale := s.world.scale
	pos := s.body.Position()
	angle := math.Atan2(py*scale.invY+pos.Y, px*scale.invX-pos.X)
	return cp.Vector{X: math.Cos(angle) * length, Y: -math.Sin(angle) * length}
}

func (s *BodySync) ApplyForce(x, y float64) {
	if !s.ensureBody() {
		return
	}
	s.body.ApplyForceAtWorldPoint(cp.Vector{X: x, Y: -y}, s.worldCenter())
}

func (s *BodySync) ApplyForcePolar(deg, length float64) {
	if !s.ensureBody() {
		return
	}
	s.body.ApplyForceAtWorldPoint(polar(deg, length), s.worldCenter())
}

func (s *BodySync) ApplyForceToward(px, py, length float64) {
	if !s.ensureBody() {
		return
	}
	s.body.ApplyForceAtWorldPoint(s.toward(px, py, length), s.worldCenter())
}

func (s *BodySync) ApplyImpulse(x, y float64) {
	if !s.ensureBody() {
		return
	}
	s.body.ApplyImpulseAtWorldPoint(cp.Vector{X: x, Y: -y}, s.worldCenter())
}

func (s *BodySync) ApplyImpulsePolar(deg, length float64) {
	if !s.ensureBody() {
		return
	}
	s.body.ApplyImpulseAtWorldPoint(polar(deg, length), s.worldCenter())
}

func (s *BodySync) ApplyImpulseToward(px, py, length float64) {
	if !s.ensureBody() {
		return
	}
	s.body.ApplyImpulseAtWorldPoint(s.toward(px, py, length), s.worldCenter())
}

func (s *BodySync) ApplyTorque(torque float64) {
	if !s.ensureBody() {
		return
	}
	s.body.SetTorque(s.body.Torque() + torque)
}

func (s *BodySync) SetLinearVelocity(x, y float64) {
	if !s.ensureBody() {
		return
	}
	s.body.SetVelocityVector(cp.Vector{X: x, Y: -y})
}

func (s *BodySync) SetLinearVelocityX(x float64) {
	if !s.ensureBody() {
		return
	}
	v := s.body.Velocity()
	s.body.SetVelocityVector(cp.Vector{X: x, Y: v.Y})
}

func (s *BodySync) SetLinearVelocityY(y float64) {
	if !s.ensureBody() {
		return
	}
	v := s.body.Velocity()
	s.body.SetVelocityVector(cp.Vector{X: v.X, Y: -y})
}

func (s *BodySync) LinearVelocityX() float64 {
	if !s.ensureBody() {
		return 0
	}
	return s.body.Velocity().X
}

func (s *BodySync) LinearVelocityY() float64 {
	if !s.ensureBody() {
		return 0
	}
	return -s.body.Velocity().Y
}

// LinearVelocity returns the speed of the body.
func (s *BodySync) LinearVelocity() float64 {
	if !s.ensureBody() {
		return 0
	}
	return s.body.Velocity().Length()
}

func (s *BodySync) SetAngularVelocity(w float64) {
	if !s.ensureBody() {
		return
	}
	s.body.SetAngularVelocity(w)
}

func (s *BodySync) AngularVelocity() float64 {
	if !s.ensureBody() {
		return 0
	}
	return s.body.AngularVelocity()
}

// SetLinearDamping takes effect on the next step. Negative values are
// treated as zero.
func (s *BodySync) SetLinearDamping(damping float64) {
	if !s.ensureBody() {
		return
	}
	s.desc.LinearDamping = math.Max(0, damping)
}

func (s *BodySync) LinearDamping() float64 {
	if !s.ensureBody() {
		return 0
	}
	return s.desc.LinearDamping
}

func (s *BodySync) SetAngularDamping(damping float64) {
	if !s.ensureBody() {
		return
	}
	s.desc.AngularDamping = math.Max(0, damping)
}

func (s *BodySync) AngularDamping() float64 {
	if !s.ensureBody() {
		return 0
	}
	return s.desc.AngularDamping
}

// SetGravity changes the gravity of the whole world.
func (s *BodySync) SetGravity(x, y float64) {
	if !s.ensureBody() {
		return
	}
	s.world.SetGravity(x, y)
}

func (s *BodySync) SetPolygonScaleX(scale float64) {
	if !s.ensureBody() {
		return
	}
	s.desc.PolygonScaleX = scale
	s.rebuild()
}

func (s *BodySync) SetPolygonScaleY(scale float64) {
	if !s.ensureBody() {
		return
	}
	s.desc.PolygonScaleY = scale
	s.rebuild()
}

func (s *BodySync) PolygonScaleX() float64 {
	if s == nil {
		return 0
	}
	return s.desc.PolygonScaleX
}

func (s *BodySync) PolygonScaleY() float64 {
	if s == nil {
		return 0
	}
	return s.desc.PolygonScaleY
}

// CollisionWith reports whether the body currently touches any body owned
// by one of the given handles.
func (s *BodySync) CollisionWith(others []Handle) bool {
	if !s.ensureBody() {
		return false
	}
	return s.world.contacts.Touching(s.handle, others)
}

func (s *BodySync) Mass() float64 {
	if !s.ensureBody() {
		return 0
	}
	return s.body.Mass()
}

// Position returns the render-space point of the body origin, which is the
// center of the object's drawable area.
func (s *BodySync) Position() (float64, float64) {
	if !s.ensureBody() {
		return 0, 0
	}
	pos := s.body.Position()
	x, y, _ := FromSim(pos.X, pos.Y, 0, s.world.scale)
	return x, y
}
