package physics

import (
	"github.com/jakecoffman/cp"
)

// AddRevoluteJoint pins the body to the ground at the render-space point
// (x, y).
func (s *BodySync) AddRevoluteJoint(x, y float64) {
	if !s.ensureBody() {
		return
	}
	pivot := s.world.scale.VecToSim(x, y)
	s.world.space.AddConstraint(cp.NewPivotJoint(s.world.Ground(), s.body, pivot))
}

// AddRevoluteJointBetween hinges this body to other. The hinge sits at this
// body's center of mass plus the render-space offset (dx, dy).
func (s *BodySync) AddRevoluteJointBetween(other *BodySync, dx, dy float64) bool {
	if !s.jointable(other) {
		return false
	}
	anchor := s.worldCenter().Add(s.world.scale.VecToSim(dx, dy))
	s.world.space.AddConstraint(cp.NewPivotJoint(s.body, other.body, anchor))
	return true
}

// AddGearJointBetween pins both bodies to the ground at their centers of
// mass and couples their rotation by ratio.
func (s *BodySync) AddGearJointBetween(other *BodySync, ratio float64) bool {
	if ratio == 0 || !s.jointable(other) {
		return false
	}
	space := s.world.space
	ground := s.world.Ground()
	space.AddConstraint(cp.NewPivotJoint(ground, s.body, s.worldCenter()))
	space.AddConstraint(cp.NewPivotJoint(ground, other.body, other.worldCenter()))
	space.AddConstraint(cp.NewGearJoint(s.body, other.body, 0, ratio))
	return true
}

func (s *BodySync) jointable(other *BodySync) bool {
	if other == nil || other == s || other.world != s.world {
		return false
	}
	if !s.ensureBody() || !other.ensureBody() {
		return false
	}
	return s.body != other.body
}

// Joints returns the number of constraints attached to the body.
func (s *BodySync) Joints() int {
	if !s.ensureBody() {
		return 0
	}
	n := 0
	s.body.EachConstraint(func(*cp.Constraint) { n++ })
	return n
}
