package physics

import (
	"fmt"

	"github.com/milk9111/rigidsync/common"
)

const (
	DefaultFixedStep = 1.0 / 60.0
	DefaultMaxSteps  = 5
)

// FrameStats describes one Advance call.
type FrameStats struct {
	Elapsed     float64 `csv:"elapsed"`
	Steps       int     `csv:"steps"`
	Accumulator float64 `csv:"accumulator"`
	Capped      bool    `csv:"capped"`
}

// Driver converts variable frame time into engine steps. In fixed mode it
// runs whole steps of FixedStep, at most MaxSteps per frame, and carries the
// rest of the time into the next frame. In raw mode it runs one step of the
// frame's elapsed time.
type Driver struct {
	FixedStep float64
	MaxSteps  int
	Fixed     bool

	acc       float64
	simulated float64
}

func NewDriver(fixedStep float64, maxSteps int, fixed bool) (*Driver, error) {
	if fixed && (!(fixedStep > 0) || !common.Finite(fixedStep)) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, fixedStep)
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Driver{FixedStep: fixedStep, MaxSteps: maxSteps, Fixed: fixed}, nil
}

// Advance feeds elapsed seconds to the driver and calls step for each engine
// step to run this frame.
func (d *Driver) Advance(elapsed float64, step func(dt float64)) FrameStats {
	stats := FrameStats{Elapsed: elapsed}
	if d == nil || step == nil {
		return stats
	}
	if !(elapsed > 0) || !common.Finite(elapsed) {
		stats.Accumulator = d.acc
		return stats
	}

	if !d.Fixed {
		step(elapsed)
		d.simulated += elapsed
		stats.Steps = 1
		return stats
	}

	d.acc += elapsed
	for d.acc >= d.FixedStep && stats.Steps < d.MaxSteps {
		step(d.FixedStep)
		d.acc -= d.FixedStep
		d.simulated += d.FixedStep
		stats.Steps++
	}
	stats.Capped = d.acc >= d.FixedStep
	stats.Accumulator = d.acc
	return stats
}

// Accumulator returns the time received but not yet simulated.
func (d *Driver) Accumulator() float64 {
	if d == nil {
		return 0
	}
	return d.acc
}

func (d *Driver) Simulated() float64 {
	if d == nil {
		return 0
	}
	return d.simulated
}

func (d *Driver) Idle() bool {
	return d == nil || d.acc == 0
}

func (d *Driver) Reset() {
	if d == nil {
		return
	}
	d.acc = 0
	d.simulated = 0
}
