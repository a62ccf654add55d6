package telemetry

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/rigidsync/physics"
	"gonum.org/v1/gonum/stat"
)

// FrameRecord is one CSV row: how the driver spent one rendered frame.
type FrameRecord struct {
	Frame        int     `csv:"frame"`
	Elapsed      float64 `csv:"elapsed"`
	Steps        int     `csv:"steps"`
	Accumulator  float64 `csv:"accumulator"`
	Capped       bool    `csv:"capped"`
	Bodies       int     `csv:"bodies"`
	ContactPairs int     `csv:"contact_pairs"`
}

// Recorder streams frame records as CSV and keeps what the summary needs.
// A nil Recorder ignores everything.
type Recorder struct {
	out           io.Writer
	headerWritten bool

	frames int
	steps  []float64
	acc    []float64
	capped int
	sim    float64
}

// NewRecorder writes to out; a nil out only collects the summary.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Observe records the frame stats of w. It fits physics.World.OnFrame.
func (r *Recorder) Observe(w *physics.World) func(physics.FrameStats) {
	return func(fs physics.FrameStats) {
		if err := r.Record(fs, w.Len(), w.Contacts().Pairs()); err != nil {
			log.Printf("telemetry: disabling CSV output: %v", err)
			r.out = nil
		}
	}
}

// Record adds one frame. pairs is the number of owner pairs in contact.
func (r *Recorder) Record(fs physics.FrameStats, bodies, pairs int) error {
	if r == nil {
		return nil
	}
	r.frames++
	r.steps = append(r.steps, float64(fs.Steps))
	r.acc = append(r.acc, fs.Accumulator)
	if fs.Capped {
		r.capped++
	}

	if r.out == nil {
		return nil
	}
	records := []FrameRecord{{
		Frame:        r.frames,
		Elapsed:      fs.Elapsed,
		Steps:        fs.Steps,
		Accumulator:  fs.Accumulator,
		Capped:       fs.Capped,
		Bodies:       bodies,
		ContactPairs: pairs,
	}}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("telemetry: write frame: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("telemetry: write frame: %w", err)
	}
	return nil
}

// SetSimulated records the total simulated time for the summary.
func (r *Recorder) SetSimulated(seconds float64) {
	if r == nil {
		return
	}
	r.sim = seconds
}

type Summary struct {
	Frames          int
	CappedFrames    int
	TotalSteps      int
	MeanSteps       float64
	StdSteps        float64
	MeanAccumulator float64
	MaxAccumulator  float64
	Simulated       float64
}

func (r *Recorder) Summary() Summary {
	if r == nil || r.frames == 0 {
		return Summary{}
	}
	s := Summary{
		Frames:       r.frames,
		CappedFrames: r.capped,
		Simulated:    r.sim,
	}
	for _, n := range r.steps {
		s.TotalSteps += int(n)
	}
	s.MeanSteps, s.StdSteps = stat.MeanStdDev(r.steps, nil)
	if math.IsNaN(s.StdSteps) {
		s.StdSteps = 0
	}
	s.MeanAccumulator = stat.Mean(r.acc, nil)
	for _, a := range r.acc {
		s.MaxAccumulator = math.Max(s.MaxAccumulator, a)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("frames=%d steps=%d (%.3f±%.3f/frame) capped=%d acc mean=%.5fs max=%.5fs simulated=%.3fs",
		s.Frames, s.TotalSteps, s.MeanSteps, s.StdSteps, s.CappedFrames, s.MeanAccumulator, s.MaxAccumulator, s.Simulated)
}
