package system

import (
	"log"

	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
)

// JointSystem turns joint requests into engine constraints. Run it after
// PhysicsSystem.PreStep so every body of the frame is attached.
type JointSystem struct{}

func NewJointSystem() *JointSystem {
	return &JointSystem{}
}

func (s *JointSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.JointsComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, j *component.Joints, pb *component.PhysicsBody) {
		if pb.Sync == nil || len(j.Pending) == 0 {
			return
		}
		var keep []component.JointRequest
		for _, req := range j.Pending {
			done, retry := s.apply(w, pb.Sync, req)
			switch {
			case done:
				j.Made++
			case retry:
				keep = append(keep, req)
			default:
				log.Printf("JointSystem: entity=%v dropped %s joint to %q", e, req.Kind, req.Target)
			}
		}
		j.Pending = keep
	})
}

// apply reports whether the joint was made, and if not whether it may succeed
// on a later frame.
func (s *JointSystem) apply(w *ecs.World, self *physics.BodySync, req component.JointRequest) (bool, bool) {
	if req.Kind == component.JointRevolute {
		self.AddRevoluteJoint(req.X, req.Y)
		return true, false
	}

	other, known := resolveName(w, req.Target)
	if !known {
		return false, false
	}
	if other == nil {
		return false, true
	}
	switch req.Kind {
	case component.JointRevoluteBetween:
		return self.AddRevoluteJointBetween(other, req.X, req.Y), false
	case component.JointGear:
		return self.AddGearJointBetween(other, req.Ratio), false
	default:
		return false, false
	}
}

// resolveName reports whether a live entity has the name, and its body if it
// has been attached yet.
func resolveName(w *ecs.World, name string) (*physics.BodySync, bool) {
	var (
		sync  *physics.BodySync
		known bool
	)
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if known || n.Value != name {
			return
		}
		known = true
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			sync = pb.Sync
		}
	})
	return sync, known
}
