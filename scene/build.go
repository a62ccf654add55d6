package scene

import (
	"fmt"

	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
)

// NewPhysicsWorld creates the simulation world the scene asks for.
func NewPhysicsWorld(spec Spec) (*physics.World, error) {
	pw, err := physics.NewWorld(spec.Config)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", spec.Name, err)
	}
	return pw, nil
}

// Build creates one entity per object. Bodies are attached by the physics
// system on its next pre step.
func Build(w *ecs.World, spec Spec) ([]ecs.Entity, error) {
	seen := make(map[string]bool, len(spec.Objects))
	for i, obj := range spec.Objects {
		if obj.Name == "" {
			continue
		}
		if seen[obj.Name] {
			return nil, fmt.Errorf("scene: %s: object %d: duplicate name %q", spec.Name, i, obj.Name)
		}
		seen[obj.Name] = true
	}

	out := make([]ecs.Entity, 0, len(spec.Objects))
	for i, obj := range spec.Objects {
		e, err := buildObject(w, obj)
		if err != nil {
			for _, made := range out {
				ecs.DestroyEntity(w, made)
			}
			return nil, fmt.Errorf("scene: %s: object %d: %w", spec.Name, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func buildObject(w *ecs.World, obj ObjectSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	transform := obj.Transform
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		return e, err
	}
	if obj.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: obj.Name}); err != nil {
			return e, err
		}
	}
	if obj.Body != nil {
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Descriptor: *obj.Body}); err != nil {
			return e, err
		}
	}
	if obj.Script != "" {
		if err := ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: ScriptPath(obj.Script)}); err != nil {
			return e, err
		}
	}
	if len(obj.Groups) > 0 {
		groups := append([]string(nil), obj.Groups...)
		if err := ecs.Add(w, e, component.GroupsComponent.Kind(), &component.Groups{Names: groups}); err != nil {
			return e, err
		}
	}
	if len(obj.Joints) > 0 {
		pending := append([]component.JointRequest(nil), obj.Joints...)
		if err := ecs.Add(w, e, component.JointsComponent.Kind(), &component.Joints{Pending: pending}); err != nil {
			return e, err
		}
	}
	if obj.TTL > 0 {
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: obj.TTL}); err != nil {
			return e, err
		}
	}
	return e, nil
}
