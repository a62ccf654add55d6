package scene

import (
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/system"
	"github.com/milk9111/rigidsync/physics"
)

// Runtime is a built scene ready to update: its physics world, its entities
// and the systems that tie them together.
type Runtime struct {
	Spec     Spec
	Physics  *physics.World
	World    *ecs.World
	Bodies   *system.PhysicsSystem
	Scripts  *system.ScriptSystem
	Entities []ecs.Entity
}

// Start builds spec. clock reports the elapsed time of the current frame;
// nil means a steady 60 frames per second.
func Start(spec Spec, clock func() float64) (*Runtime, error) {
	pw, err := NewPhysicsWorld(spec)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	bodies := system.NewPhysicsSystem(pw, clock)
	bodies.Bind(w)
	scripts := system.NewScriptSystem(LoadScript, clock)

	w.AddSystem(bodies.PreStep())
	w.AddSystem(system.NewJointSystem())
	w.AddSystem(scripts)
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(bodies.PostStep())

	ents, err := Build(w, spec)
	if err != nil {
		pw.Destroy()
		return nil, err
	}
	return &Runtime{
		Spec:     spec,
		Physics:  pw,
		World:    w,
		Bodies:   bodies,
		Scripts:  scripts,
		Entities: ents,
	}, nil
}

func (r *Runtime) Update() {
	if r == nil {
		return
	}
	r.World.Update()
}

func (r *Runtime) Close() {
	if r == nil {
		return
	}
	r.Physics.Destroy()
}
