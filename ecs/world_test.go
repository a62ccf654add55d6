package ecs

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
)

var (
	transformKind = component.TransformComponent.Kind()
	bodyKind      = component.PhysicsBodyComponent.Kind()
	nameKind      = component.NameComponent.Kind()
	groupsKind    = component.GroupsComponent.Kind()
	jointsKind    = component.JointsComponent.Kind()
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func staticBody() *component.PhysicsBody {
	d := physics.DefaultDescriptor()
	d.Dynamic = false
	return &component.PhysicsBody{Descriptor: d}
}

func dynamicBody() *component.PhysicsBody {
	return &component.PhysicsBody{Descriptor: physics.DefaultDescriptor()}
}

// spawn creates a named object with a 20x20 transform at (x, y).
func spawn(t *testing.T, w *World, name string, x, y float64, body *component.PhysicsBody, groups ...string) Entity {
	t.Helper()
	e := CreateEntity(w)
	if err := Add(w, e, transformKind, &component.Transform{X: x, Y: y, Width: 20, Height: 20}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := Add(w, e, nameKind, &component.Name{Value: name}); err != nil {
		t.Fatalf("add name: %v", err)
	}
	if body != nil {
		if err := Add(w, e, bodyKind, body); err != nil {
			t.Fatalf("add body: %v", err)
		}
	}
	if len(groups) > 0 {
		if err := Add(w, e, groupsKind, &component.Groups{Names: groups}); err != nil {
			t.Fatalf("add groups: %v", err)
		}
	}
	return e
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		objects []string
		destroy string
	}{
		{"single", []string{"ground"}, "ground"},
		{"destroy_middle", []string{"ground", "crate", "ball"}, "crate"},
		{"no_destroy", []string{"ground", "ball"}, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			byName := make(map[string]Entity)
			for i, n := range c.objects {
				byName[n] = spawn(t, w, n, float64(i*30), 0, dynamicBody())
			}

			want := len(c.objects)
			if c.destroy != "" {
				dead := byName[c.destroy]
				if !DestroyEntity(w, dead) {
					t.Fatalf("DestroyEntity(%s) should succeed", c.destroy)
				}
				if IsAlive(w, dead) || Has(w, dead, bodyKind) {
					t.Fatalf("%s still alive or holding its body", c.destroy)
				}
				want--
			}
			if got := len(Entities(w)); got != want {
				t.Fatalf("expected %d entities, got %d", want, got)
			}
			if got := len(w.Query(transformKind.ID(), bodyKind.ID())); got != want {
				t.Fatalf("expected %d bodies, got %d", want, got)
			}
			for n, e := range byName {
				if !strings.Contains(e.String(), "v") {
					t.Fatalf("%s: entity string %q lacks a generation", n, e.String())
				}
			}
		})
	}
}

func TestSceneObjectComponents(t *testing.T) {
	w := NewWorld()
	crate := spawn(t, w, "crate", 40, 10, dynamicBody(), "crates")

	steps := []struct {
		name  string
		apply func() error
		check func(t *testing.T)
	}{
		{
			name:  "transform_and_body",
			apply: func() error { return nil },
			check: func(t *testing.T) {
				tr, ok := Get(w, crate, transformKind)
				if !ok || tr.X != 40 || tr.DrawableX() != 40 {
					t.Fatalf("transform = %+v ok=%v", tr, ok)
				}
				pb, ok := Get(w, crate, bodyKind)
				if !ok || !pb.Descriptor.Dynamic || pb.Sync != nil {
					t.Fatalf("body = %+v ok=%v", pb, ok)
				}
			},
		},
		{
			name: "replace_body_with_static",
			apply: func() error {
				return Add(w, crate, bodyKind, staticBody())
			},
			check: func(t *testing.T) {
				if pb, _ := Get(w, crate, bodyKind); pb.Descriptor.Dynamic {
					t.Fatalf("body should have been replaced")
				}
			},
		},
		{
			name: "queue_joint",
			apply: func() error {
				return Add(w, crate, jointsKind, &component.Joints{Pending: []component.JointRequest{
					{Kind: component.JointRevolute, X: 5, Y: 5},
				}})
			},
			check: func(t *testing.T) {
				j, ok := Get(w, crate, jointsKind)
				if !ok || len(j.Pending) != 1 || j.Made != 0 {
					t.Fatalf("joints = %+v ok=%v", j, ok)
				}
			},
		},
		{
			name: "drop_body",
			apply: func() error {
				if !Remove(w, crate, bodyKind) {
					return errors.New("remove reported nothing removed")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, crate, bodyKind) || !Has(w, crate, transformKind) {
					t.Fatalf("removing the body touched other components")
				}
				if g, _ := Get(w, crate, groupsKind); !g.In("crates") {
					t.Fatalf("groups lost: %+v", g)
				}
			},
		},
	}

	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			if err := st.apply(); err != nil {
				t.Fatalf("apply: %v", err)
			}
			st.check(t)
		})
	}
}

func TestForEach2VisitsBodiesOnly(t *testing.T) {
	w := NewWorld()
	spawn(t, w, "ground", 0, 200, staticBody())
	spawn(t, w, "crate", 50, 0, dynamicBody())
	marker := spawn(t, w, "marker", 90, 0, nil)

	visited := 0
	ForEach2(w, transformKind, bodyKind, func(e Entity, tr *component.Transform, pb *component.PhysicsBody) {
		visited++
		if pb.Descriptor.Dynamic {
			tr.Y += 10
		}
	})
	if visited != 2 {
		t.Fatalf("visited %d, want 2", visited)
	}
	ForEach2(w, nameKind, transformKind, func(e Entity, n *component.Name, tr *component.Transform) {
		switch n.Value {
		case "crate":
			if tr.Y != 10 {
				t.Fatalf("crate not moved: %+v", tr)
			}
		case "ground":
			if tr.Y != 200 {
				t.Fatalf("static ground moved: %+v", tr)
			}
		}
	})
	if tr, _ := Get(w, marker, transformKind); tr.Y != 0 {
		t.Fatalf("body-less marker visited")
	}
}

func TestForEach3SelectsGroupMembers(t *testing.T) {
	w := NewWorld()
	spawn(t, w, "crate_a", 0, 0, dynamicBody(), "crates")
	spawn(t, w, "crate_b", 30, 0, dynamicBody(), "crates", "pushable")
	spawn(t, w, "player", 60, 0, dynamicBody(), "player")
	spawn(t, w, "sign", 90, 0, nil, "crates")

	var names []string
	ForEach3(w, transformKind, bodyKind, groupsKind, func(e Entity, tr *component.Transform, pb *component.PhysicsBody, g *component.Groups) {
		if g.In("crates") {
			n, _ := Get(w, e, nameKind)
			names = append(names, n.Value)
		}
	})
	if len(names) != 2 {
		t.Fatalf("crate bodies = %v, want crate_a and crate_b", names)
	}
	for _, n := range names {
		if n != "crate_a" && n != "crate_b" {
			t.Fatalf("unexpected member %q", n)
		}
	}
}

func TestForEach4DrainsJointRequests(t *testing.T) {
	w := NewWorld()
	wheelA := spawn(t, w, "wheel_a", 0, 0, dynamicBody())
	wheelB := spawn(t, w, "wheel_b", 40, 0, dynamicBody())
	spawn(t, w, "loose", 80, 0, dynamicBody())
	_ = Add(w, wheelA, jointsKind, &component.Joints{Pending: []component.JointRequest{
		{Kind: component.JointRevolute},
	}})
	_ = Add(w, wheelB, jointsKind, &component.Joints{Pending: []component.JointRequest{
		{Kind: component.JointRevolute},
		{Kind: component.JointGear, Target: "wheel_a", Ratio: -1},
	}})

	total := 0
	ForEach4(w, nameKind, transformKind, bodyKind, jointsKind,
		func(e Entity, n *component.Name, tr *component.Transform, pb *component.PhysicsBody, j *component.Joints) {
			total += len(j.Pending)
			j.Made += len(j.Pending)
			j.Pending = nil
		})
	if total != 3 {
		t.Fatalf("saw %d requests, want 3", total)
	}
	if j, _ := Get(w, wheelB, jointsKind); j.Made != 2 || len(j.Pending) != 0 {
		t.Fatalf("wheel_b joints = %+v", j)
	}
}

// transformBody lets a Transform drive a physics body in these tests.
type transformBody struct{ t *component.Transform }

func (o transformBody) X() float64           { return o.t.X }
func (o transformBody) Y() float64           { return o.t.Y }
func (o transformBody) SetX(x float64)       { o.t.X = x }
func (o transformBody) SetY(y float64)       { o.t.Y = y }
func (o transformBody) Width() float64       { return o.t.Width }
func (o transformBody) Height() float64      { return o.t.Height }
func (o transformBody) Angle() float64       { return o.t.Angle }
func (o transformBody) SetAngle(deg float64) { o.t.Angle = deg }
func (o transformBody) DrawableX() float64   { return o.t.DrawableX() }
func (o transformBody) DrawableY() float64   { return o.t.DrawableY() }

func TestDestroyHookReleasesBody(t *testing.T) {
	pw, err := physics.NewWorld(physics.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	w := NewWorld()
	w.OnDestroy(func(e Entity) {
		if pb, ok := Get(w, e, bodyKind); ok && pb.Sync != nil {
			pb.Sync.Destroy()
		}
	})

	ground := spawn(t, w, "ground", 0, 100, staticBody())
	crate := spawn(t, w, "crate", 0, 79, dynamicBody())
	for _, e := range []Entity{ground, crate} {
		tr, _ := Get(w, e, transformKind)
		pb, _ := Get(w, e, bodyKind)
		pb.Sync = pw.Attach(physics.Handle(e), transformBody{tr}, pb.Descriptor)
	}
	if pw.Len() != 2 {
		t.Fatalf("physics world has %d bodies, want 2", pw.Len())
	}

	DestroyEntity(w, crate)
	if pw.Len() != 1 {
		t.Fatalf("destroy hook left %d bodies, want 1", pw.Len())
	}
	if _, ok := pw.Sync(physics.Handle(crate)); ok {
		t.Fatalf("crate body still registered")
	}
	if _, ok := pw.Sync(physics.Handle(ground)); !ok {
		t.Fatalf("ground body released with the crate")
	}
}

func TestStaleHandlesAfterReuse(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if !DestroyEntity(w, old) {
		t.Fatal("destroy failed")
	}
	if DestroyEntity(w, old) {
		t.Fatal("second destroy of the same handle should fail")
	}

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected slot %d to be recycled, got %d", old.id(), reused.id())
	}
	if reused == old || IsAlive(w, old) {
		t.Fatalf("stale handle %v still resolves", old)
	}
	if Has(w, reused, k) {
		t.Fatal("recycled entity inherited a component")
	}
	if err := Add(w, old, k, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("add to stale handle: err = %v", err)
	}
}

func TestAddValidation(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	k := component.NewComponentKind[int]()

	if err := Add(w, e, k, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("nil value: err = %v", err)
	}
	var zero component.ComponentKind[int]
	if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("zero kind: err = %v", err)
	}
	if err := Add(w, e, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e, k, intPtr(9)); err != nil {
		t.Fatal(err)
	}
	if v, _ := Get(w, e, k); *v != 9 {
		t.Fatalf("replace failed, got %d", *v)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("x"))
	_ = Add(w, e3, kb, stringPtr("y"))

	if got := w.Query(ka.ID(), kb.ID()); len(got) != 1 || got[0] != e2 {
		t.Fatalf("Query = %v, want [%v]", got, e2)
	}
	if first, ok := w.First(kb.ID()); !ok || first != e2 {
		t.Fatalf("First = %v %v, want %v", first, ok, e2)
	}
	DestroyEntity(w, e2)
	if first, ok := w.First(kb.ID()); !ok || first != e3 {
		t.Fatalf("First after destroy = %v %v, want %v", first, ok, e3)
	}
	if got := w.Query(component.NewComponentKind[bool]().ID()); got != nil {
		t.Fatalf("unknown kind should match nothing, got %v", got)
	}
}

func TestForEachMayDestroy(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		_ = Add(w, e, k, intPtr(i))
	}
	seen := 0
	ForEach(w, k, func(e Entity, v *int) {
		seen++
		DestroyEntity(w, e)
	})
	if seen != 4 || len(Entities(w)) != 0 {
		t.Fatalf("seen %d, alive %d", seen, len(Entities(w)))
	}
}

func TestOnDestroySeesComponents(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	_ = Add(w, e, k, intPtr(42))

	var got int
	w.OnDestroy(func(dead Entity) {
		if v, ok := Get(w, dead, k); ok {
			got = *v
		}
	})
	DestroyEntity(w, e)
	if got != 42 {
		t.Fatalf("hook saw %d, want 42", got)
	}
}

func TestUpdateRunsSystemsAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(SystemFunc(func(w *World) {
		order = append(order, "push")
		w.Events().Push(Event{Type: EventContactBegin, Data: ContactEvent{}})
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		order = append(order, "peek")
		if w.Events().Len() != 1 {
			t.Fatalf("expected one pending event, got %d", w.Events().Len())
		}
	}))
	w.AddSystem(nil)

	w.Update()
	if len(order) != 2 || order[0] != "push" || order[1] != "peek" {
		t.Fatalf("system order = %v", order)
	}
	if w.Events().Len() != 0 {
		t.Fatal("events should be flushed after Update")
	}
}
