package scene

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
)

func TestScriptPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"pusher.tengo", "scripts/pusher.tengo"},
		{"scripts/pusher.tengo", "scripts/pusher.tengo"},
		{"scene/scripts/pusher.tengo", "scripts/pusher.tengo"},
		{filepath.Join("/tmp", "x", "scripts", "pusher.tengo"), "scripts/pusher.tengo"},
		{"", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := ScriptPath(c.in); got != c.want {
				t.Fatalf("ScriptPath(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	spec, err := Parse([]byte(`
gravityY: 4
objects:
  - name: box
    transform: {x: 1, y: 2, width: 20, height: 10}
    body: {shapeType: Circle}
  - name: marker
    transform: {x: 5, y: 5}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := physics.DefaultConfig()
	if spec.GravityY != 4 || spec.ScaleX != def.ScaleX || spec.Iterations != def.Iterations || !spec.FixedStep {
		t.Fatalf("config = %+v", spec.Config)
	}
	if len(spec.Objects) != 2 {
		t.Fatalf("objects = %d", len(spec.Objects))
	}
	body := spec.Objects[0].Body
	if body == nil || body.Shape != physics.ShapeCircle || !body.Dynamic || body.Density != 1 {
		t.Fatalf("body = %+v", body)
	}
	if body.Positioning != physics.OnOrigin {
		t.Fatalf("missing positioning should load as OnOrigin, got %v", body.Positioning)
	}
	if spec.Objects[1].Body != nil {
		t.Fatal("object without body key should have no body")
	}

	out, err := spec.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(Marshal): %v", err)
	}
	if again.GravityY != 4 || again.Objects[0].Body.Shape != physics.ShapeCircle {
		t.Fatalf("re-parsed = %+v", again)
	}
}

func TestEmbeddedScenesBuild(t *testing.T) {
	entries, err := ScenesFS.ReadDir("scenes")
	if err != nil || len(entries) == 0 {
		t.Fatalf("no embedded scenes: %v", err)
	}
	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			spec, err := LoadSpec(entry.Name())
			if err != nil {
				t.Fatal(err)
			}
			if _, err := NewPhysicsWorld(spec); err != nil {
				t.Fatal(err)
			}
			w := ecs.NewWorld()
			ents, err := Build(w, spec)
			if err != nil {
				t.Fatal(err)
			}
			if len(ents) != len(spec.Objects) {
				t.Fatalf("built %d entities for %d objects", len(ents), len(spec.Objects))
			}
			for _, obj := range spec.Objects {
				if obj.Script == "" {
					continue
				}
				if _, err := LoadScript(obj.Script); err != nil {
					t.Fatalf("script %s: %v", obj.Script, err)
				}
			}
		})
	}
}

func TestBuildComponents(t *testing.T) {
	spec, err := LoadSpec("sandbox.yaml")
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	if _, err := Build(w, spec); err != nil {
		t.Fatal(err)
	}

	byName := map[string]ecs.Entity{}
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		byName[n.Value] = e
	})

	pusher := byName["pusher"]
	sc, ok := ecs.Get(w, pusher, component.ScriptComponent.Kind())
	if !ok || sc.Path != "scripts/pusher.tengo" {
		t.Fatalf("pusher script = %+v", sc)
	}
	pend, ok := ecs.Get(w, byName["pendulum"], component.JointsComponent.Kind())
	if !ok || len(pend.Pending) != 1 || pend.Pending[0].Kind != component.JointRevolute {
		t.Fatalf("pendulum joints = %+v", pend)
	}
	crate, ok := ecs.Get(w, byName["crate_a"], component.GroupsComponent.Kind())
	if !ok || !crate.In("crates") {
		t.Fatalf("crate groups = %+v", crate)
	}
	ramp, _ := ecs.Get(w, byName["ramp"], component.PhysicsBodyComponent.Kind())
	if ramp.Descriptor.Dynamic || len(ramp.Descriptor.Polygon) != 3 {
		t.Fatalf("ramp descriptor = %+v", ramp.Descriptor)
	}
	if !ecs.Has(w, byName["debris"], component.TTLComponent.Kind()) {
		t.Fatal("debris should expire")
	}
}

func TestBuildRejectsDuplicateNames(t *testing.T) {
	spec, err := Parse([]byte(`
objects:
  - {name: a}
  - {name: a}
`))
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	if _, err := Build(w, spec); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v", err)
	}
	if len(ecs.Entities(w)) != 0 {
		t.Fatal("failed build left entities behind")
	}
}

func TestBadConfigIsWrapped(t *testing.T) {
	spec, err := Parse([]byte("name: broken\nscaleX: -1\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewPhysicsWorld(spec)
	if err == nil || !strings.Contains(err.Error(), "scene: broken") {
		t.Fatalf("err = %v", err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })

	if err := os.MkdirAll(filepath.Join(dir, "scenes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scenes", "drop.yaml"), []byte("name: edited\ngravityY: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadSpec("drop.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Name != "edited" || spec.GravityY != 1 {
		t.Fatalf("disk copy not used: %+v", spec)
	}
	if _, ok := ModTime("drop.yaml"); !ok {
		t.Fatal("ModTime should see the disk copy")
	}
	if _, err := LoadSpec("missing.yaml"); err == nil {
		t.Fatal("missing scene should fail")
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(target, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "level.yaml" {
			t.Fatalf("unexpected event %q", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for the scene file")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	for range w.Events {
	}
}

func TestSandboxRunsStable(t *testing.T) {
	spec, err := LoadSpec("sandbox.yaml")
	if err != nil {
		t.Fatal(err)
	}
	rt, err := Start(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()
	w, pw := rt.World, rt.Physics
	for i := 0; i < 300; i++ {
		w.Update()
	}

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, tr *component.Transform) {
		for _, v := range []float64{tr.X, tr.Y, tr.Angle} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("entity %v has non-finite pose %+v", e, tr)
			}
		}
	})
	if len(ecs.Entities(w)) != len(spec.Objects)-1 {
		t.Fatalf("debris should have expired, %d entities left", len(ecs.Entities(w)))
	}
	if pw.Len() != len(spec.Objects)-1 {
		t.Fatalf("physics world tracks %d bodies", pw.Len())
	}
}
