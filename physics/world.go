package physics

import (
	"log"
	"sort"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
)

// Config holds the scene-wide simulation settings. Gravity is in meters per
// second squared with Y pointing down, like render space.
type Config struct {
	GravityX           float64 `yaml:"gravityX"`
	GravityY           float64 `yaml:"gravityY"`
	ScaleX             float64 `yaml:"scaleX"`
	ScaleY             float64 `yaml:"scaleY"`
	FixedTimeStep      float64 `yaml:"fixedTimeStep"`
	MaxStepsPerFrame   int     `yaml:"maxStepsPerFrame"`
	FixedStep          bool    `yaml:"fixedStep"`
	Iterations         int     `yaml:"iterations"`
	SleepTimeThreshold float64 `yaml:"sleepTimeThreshold"`
}

func DefaultConfig() Config {
	return Config{
		GravityX:         0,
		GravityY:         9,
		ScaleX:           DefaultPixelsPerMeter,
		ScaleY:           DefaultPixelsPerMeter,
		FixedTimeStep:    DefaultFixedStep,
		MaxStepsPerFrame: DefaultMaxSteps,
		FixedStep:        true,
		Iterations:       10,
	}
}

// World is the simulation universe of one scene. It owns the engine space,
// the fixture-less ground anchor, the time driver and the contact tracker.
type World struct {
	space    *cp.Space
	scale    Scale
	driver   *Driver
	contacts *ContactTracker

	bodies  map[Handle]*BodySync
	stepped bool
	last    FrameStats
	onFrame func(FrameStats)
}

func NewWorld(cfg Config) (*World, error) {
	scale, err := NewScale(cfg.ScaleX, cfg.ScaleY)
	if err != nil {
		return nil, err
	}
	driver, err := NewDriver(cfg.FixedTimeStep, cfg.MaxStepsPerFrame, cfg.FixedStep)
	if err != nil {
		return nil, err
	}

	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	if cfg.SleepTimeThreshold > 0 {
		space.SleepTimeThreshold = cfg.SleepTimeThreshold
	}

	w := &World{
		space:    space,
		scale:    scale,
		driver:   driver,
		contacts: NewContactTracker(),
		bodies:   make(map[Handle]*BodySync),
	}
	w.SetGravity(cfg.GravityX, cfg.GravityY)
	w.contacts.install(space, collisionTypeBody)
	return w, nil
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Ground returns the static anchor used by joints to the world.
func (w *World) Ground() *cp.Body {
	if w == nil || w.space == nil {
		return nil
	}
	return w.space.StaticBody
}

func (w *World) Scale() Scale {
	if w == nil {
		return Scale{}
	}
	return w.scale
}

func (w *World) Contacts() *ContactTracker {
	if w == nil {
		return nil
	}
	return w.contacts
}

func (w *World) Driver() *Driver {
	if w == nil {
		return nil
	}
	return w.driver
}

// LastFrame returns the stats of the most recent frame that stepped.
func (w *World) LastFrame() FrameStats {
	if w == nil {
		return FrameStats{}
	}
	return w.last
}

// OnFrame registers fn to be called after every frame that stepped.
func (w *World) OnFrame(fn func(FrameStats)) {
	if w == nil {
		return
	}
	w.onFrame = fn
}

// SetGravity sets the world gravity in render orientation.
func (w *World) SetGravity(x, y float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.SetGravity(cp.Vector{X: x, Y: -y})
	for _, s := range w.bodies {
		if s.body != nil {
			s.body.Activate()
		}
	}
}

func (w *World) Gravity() (float64, float64) {
	if w == nil || w.space == nil {
		return 0, 0
	}
	g := w.space.Gravity()
	return g.X, -g.Y
}

// SetScale changes the pixels-per-meter ratio and rebuilds every body so its
// geometry matches the new scale. Velocities in meters are kept.
func (w *World) SetScale(x, y float64) error {
	if w == nil {
		return nil
	}
	scale, err := NewScale(x, y)
	if err != nil {
		return err
	}
	w.scale = scale
	for _, h := range w.Handles() {
		w.bodies[h].rebuild()
	}
	return nil
}

// Attach registers the object owned by h. The body itself is built the
// first time it is needed. Attaching a handle twice returns the existing
// sync.
func (w *World) Attach(h Handle, obj Object, desc ShapeDescriptor) *BodySync {
	if w == nil || obj == nil {
		return nil
	}
	if s, ok := w.bodies[h]; ok {
		return s
	}
	s := &BodySync{world: w, handle: h, obj: obj, desc: desc}
	w.bodies[h] = s
	return s
}

func (w *World) Sync(h Handle) (*BodySync, bool) {
	if w == nil {
		return nil, false
	}
	s, ok := w.bodies[h]
	return s, ok
}

// Handles returns the registered owners in ascending order.
func (w *World) Handles() []Handle {
	if w == nil {
		return nil
	}
	out := make([]Handle, 0, len(w.bodies))
	for h := range w.bodies {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// Advance runs the simulation for this frame unless it already ran. It is
// what the first BodySync.Pre of a frame calls.
func (w *World) Advance(elapsed float64) {
	if w == nil || w.space == nil || w.stepped {
		return
	}
	w.stepped = true
	w.last = w.driver.Advance(elapsed, w.step)
	if w.last.Capped {
		log.Printf("PhysicsWorld: step cap reached, carrying %.4fs", w.last.Accumulator)
	}
	if w.onFrame != nil {
		w.onFrame(w.last)
	}
}

func (w *World) step(dt float64) {
	w.space.Step(dt)
	w.contacts.settle()
}

// EndFrame re-arms Advance for the next frame.
func (w *World) EndFrame() {
	if w == nil {
		return
	}
	w.stepped = false
}

func (w *World) Stepped() bool {
	return w != nil && w.stepped
}

// Destroy tears down every body and releases the space.
func (w *World) Destroy() {
	if w == nil || w.space == nil {
		return
	}
	for _, h := range w.Handles() {
		w.bodies[h].Destroy()
	}
	w.bodies = map[Handle]*BodySync{}
	w.space = nil
}

func (w *World) detach(h Handle) {
	if w == nil {
		return
	}
	delete(w.bodies, h)
}
