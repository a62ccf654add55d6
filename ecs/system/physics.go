package system

import (
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
)

// DefaultFrameTime is used when no clock is supplied; it matches the
// default 60 TPS of the game loop.
const DefaultFrameTime = 1.0 / 60.0

// PhysicsSystem keeps entities that carry a Transform and a PhysicsBody in
// step with the physics world. Its two halves run around the game logic:
// PreStep first, PostStep last.
type PhysicsSystem struct {
	world   *physics.World
	clock   func() float64
	objects map[ecs.Entity]*transformObject
}

func NewPhysicsSystem(world *physics.World, clock func() float64) *PhysicsSystem {
	if clock == nil {
		clock = func() float64 { return DefaultFrameTime }
	}
	return &PhysicsSystem{
		world:   world,
		clock:   clock,
		objects: make(map[ecs.Entity]*transformObject),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

// Bind hooks entity destruction and contact reporting into w.
func (ps *PhysicsSystem) Bind(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}
	w.OnDestroy(ps.release)
	ps.world.Contacts().SetListener(func(a, b physics.Handle, began bool) {
		kind := ecs.EventContactEnd
		if began {
			kind = ecs.EventContactBegin
		}
		w.Events().Push(ecs.Event{Type: kind, Data: ecs.ContactEvent{A: ecs.Entity(a), B: ecs.Entity(b)}})
	})
}

func (ps *PhysicsSystem) PreStep() ecs.System {
	return ecs.SystemFunc(ps.pre)
}

func (ps *PhysicsSystem) PostStep() ecs.System {
	return ecs.SystemFunc(ps.post)
}

func (ps *PhysicsSystem) pre(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}
	ps.sweep(w)

	elapsed := ps.clock()
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
		obj := ps.objects[e]
		if obj == nil {
			obj = &transformObject{}
			ps.objects[e] = obj
		}
		obj.t = t
		if pb.Sync == nil {
			pb.Sync = ps.world.Attach(physics.Handle(e), obj, pb.Descriptor)
		}
		pb.Sync.Pre(elapsed)
	})
}

func (ps *PhysicsSystem) post(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
		if pb.Sync == nil {
			return
		}
		if obj := ps.objects[e]; obj != nil {
			obj.t = t
		}
		pb.Sync.Post()
		pb.Descriptor = pb.Sync.Descriptor()
	})
}

// sweep drops bodies whose entity lost its PhysicsBody component.
func (ps *PhysicsSystem) sweep(w *ecs.World) {
	for _, h := range ps.world.Handles() {
		e := ecs.Entity(h)
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if sync, ok := ps.world.Sync(h); ok {
			sync.Destroy()
		}
		delete(ps.objects, e)
	}
}

func (ps *PhysicsSystem) release(e ecs.Entity) {
	if sync, ok := ps.world.Sync(physics.Handle(e)); ok {
		sync.Destroy()
	}
	delete(ps.objects, e)
}

// Touching returns the entities currently in contact with e.
func (ps *PhysicsSystem) Touching(e ecs.Entity) []ecs.Entity {
	if ps == nil || ps.world == nil {
		return nil
	}
	handles := ps.world.Contacts().Neighbors(physics.Handle(e))
	if len(handles) == 0 {
		return nil
	}
	out := make([]ecs.Entity, len(handles))
	for i, h := range handles {
		out[i] = ecs.Entity(h)
	}
	return out
}

// transformObject presents a Transform component as a physics.Object. The
// pointer is refreshed every frame since components may be replaced.
type transformObject struct {
	t *component.Transform
}

func (o *transformObject) X() float64 { return o.t.X }
func (o *transformObject) Y() float64 { return o.t.Y }
func (o *transformObject) SetX(x float64) {
	o.t.X = x
}
func (o *transformObject) SetY(y float64) {
	o.t.Y = y
}
func (o *transformObject) Width() float64  { return o.t.Width }
func (o *transformObject) Height() float64 { return o.t.Height }
func (o *transformObject) Angle() float64  { return o.t.Angle }
func (o *transformObject) SetAngle(deg float64) {
	o.t.Angle = deg
}
func (o *transformObject) DrawableX() float64 { return o.t.DrawableX() }
func (o *transformObject) DrawableY() float64 { return o.t.DrawableY() }
