package system

import (
	"log"

	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"github.com/milk9111/rigidsync/script"
)

// ScriptSystem runs each entity's tengo program against its body. It must be
// scheduled between PhysicsSystem.PreStep and PostStep.
type ScriptSystem struct {
	load     func(path string) ([]byte, error)
	clock    func() float64
	programs map[ecs.Entity]*script.Program
	stale    map[string]bool
}

func NewScriptSystem(load func(path string) ([]byte, error), clock func() float64) *ScriptSystem {
	if clock == nil {
		clock = func() float64 { return DefaultFrameTime }
	}
	return &ScriptSystem{
		load:     load,
		clock:    clock,
		programs: make(map[ecs.Entity]*script.Program),
		stale:    make(map[string]bool),
	}
}

// Reload marks every program loaded from path for recompilation on the next
// update. Script state is kept.
func (s *ScriptSystem) Reload(path string) {
	if s == nil {
		return
	}
	s.stale[path] = true
}

func (s *ScriptSystem) Program(e ecs.Entity) (*script.Program, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.programs[e]
	return p, ok
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.programs {
		if !ecs.Has(w, e, component.ScriptComponent.Kind()) {
			delete(s.programs, e)
		}
	}

	env := script.Env{
		Elapsed: s.clock(),
		Lookup:  func(name string) *physics.BodySync { return lookupByName(w, name) },
		Group:   func(name string) []physics.Handle { return groupHandles(w, name) },
	}

	ecs.ForEach2(w, component.ScriptComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, sc *component.Script, pb *component.PhysicsBody) {
		if pb.Sync == nil {
			return
		}
		if s.stale[sc.Path] {
			sc.Disabled = false
		}
		if sc.Disabled {
			return
		}
		p, err := s.program(e, sc)
		if err != nil {
			log.Printf("ScriptSystem: entity=%v %v", e, err)
			sc.Disabled = true
			return
		}
		env.Self = pb.Sync
		if err := p.Run(env); err != nil {
			log.Printf("ScriptSystem: entity=%v %v", e, err)
			return
		}
		sc.Vars = p.State()
	})

	for path := range s.stale {
		delete(s.stale, path)
	}
}

func (s *ScriptSystem) program(e ecs.Entity, sc *component.Script) (*script.Program, error) {
	prev := s.programs[e]
	if prev != nil && prev.Path() == sc.Path && !s.stale[sc.Path] {
		return prev, nil
	}

	src := sc.Source
	if sc.Path != "" && s.load != nil && (len(src) == 0 || s.stale[sc.Path]) {
		loaded, err := s.load(sc.Path)
		if err != nil {
			return nil, err
		}
		src = loaded
		sc.Source = loaded
	}
	p, err := script.Compile(sc.Path, src)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.Path() == sc.Path {
		p.Adopt(prev)
	}
	s.programs[e] = p
	return p, nil
}

func lookupByName(w *ecs.World, name string) *physics.BodySync {
	var found *physics.BodySync
	ecs.ForEach2(w, component.NameComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, n *component.Name, pb *component.PhysicsBody) {
		if found == nil && n.Value == name {
			found = pb.Sync
		}
	})
	return found
}

func groupHandles(w *ecs.World, name string) []physics.Handle {
	var out []physics.Handle
	ecs.ForEach2(w, component.GroupsComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, g *component.Groups, _ *component.PhysicsBody) {
		if g.In(name) {
			out = append(out, physics.Handle(e))
		}
	})
	return out
}
