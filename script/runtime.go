package script

import (
	"errors"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rigidsync/physics"
)

var ErrNoBody = errors.New("script: no body to drive")

// A script defines update := func(body, state) { ... }. It runs once per
// frame; state is a map that survives between frames and reloads of the same
// program.
const dispatch = `
if __phase == "update" {
	update(__body, __state)
}
`

// Env is everything a script can reach during one run.
type Env struct {
	Self    *physics.BodySync
	Elapsed float64
	// Lookup resolves another body by scene name, for joints.
	Lookup func(name string) *physics.BodySync
	// Group returns the handles of every body in a collision group.
	Group func(name string) []physics.Handle
}

// Program is a compiled script bound to one entity.
type Program struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func Compile(path string, src []byte) (*Program, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), dispatch...))
	_ = script.Add("__phase", "")
	_ = script.Add("__body", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("dt", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	return &Program{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (p *Program) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

// Run calls the script's update function against env.Self.
func (p *Program) Run(env Env) error {
	if p == nil || p.compiled == nil {
		return fmt.Errorf("script: nil program")
	}
	if env.Self == nil {
		return ErrNoBody
	}
	if err := p.compiled.Set("__phase", "update"); err != nil {
		return err
	}
	if err := p.compiled.Set("__body", bodyObject(p.path, env)); err != nil {
		return err
	}
	if err := p.compiled.Set("__state", p.state); err != nil {
		return err
	}
	if err := p.compiled.Set("dt", env.Elapsed); err != nil {
		return err
	}
	if err := p.compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", p.path, err)
	}
	return nil
}

// State returns a Go copy of the script's persistent state.
func (p *Program) State() map[string]any {
	if p == nil || p.state == nil {
		return nil
	}
	out, _ := objectToAny(p.state).(map[string]any)
	return out
}

// Adopt carries state over from a previous build of the same script.
func (p *Program) Adopt(prev *Program) {
	if p == nil || prev == nil || prev.state == nil {
		return
	}
	p.state = prev.state
}

func logf(path, format string, args ...any) {
	log.Printf("Script %s: "+format, append([]any{path}, args...)...)
}
