package replay

import (
	"time"

	"zoomview/internal/viewport"
)

const (
	// FrameInterval is the tick spacing used by settle steps.
	FrameInterval = 16 * time.Millisecond

	maxSettleFrames = 1000
)

// Record is the engine state after one step.
type Record struct {
	Step      int                     `json:"step"`
	Op        string                  `json:"op"`
	Consumed  bool                    `json:"consumed,omitempty"`
	Clock     time.Duration           `json:"clock_ns"`
	Committed viewport.TransformState `json:"committed"`
	Displayed viewport.TransformState `json:"displayed"`
	Animating bool                    `json:"animating"`
	Gesturing bool                    `json:"gesturing"`
}

// Runner feeds script steps to an engine on a synthetic frame clock.
type Runner struct {
	engine *viewport.Engine
	clock  time.Duration
}

// NewRunner creates a runner for e.
func NewRunner(e *viewport.Engine) *Runner {
	return &Runner{engine: e}
}

// Engine returns the driven engine.
func (r *Runner) Engine() *viewport.Engine {
	return r.engine
}

// Run applies the script's initial geometry and every step, returning one
// record per step.
func (r *Runner) Run(s *Script) []Record {
	r.engine.SetContentSize(s.Content.Width, s.Content.Height)
	r.engine.SetViewSize(s.View.Width, s.View.Height)

	records := make([]Record, 0, len(s.Steps))
	for i, step := range s.Steps {
		records = append(records, r.Apply(i+1, step))
	}
	return records
}

// Apply runs one step.
func (r *Runner) Apply(index int, step Step) Record {
	e := r.engine
	consumed := false

	switch {
	case step.Sample != nil:
		consumed = e.ProcessSample(*step.Sample)
	case step.DoubleTap != nil:
		e.DoubleTap(*step.DoubleTap)
	case step.ZoomTo != nil:
		e.ZoomTo(step.ZoomTo.Pivot, step.ZoomTo.Scale)
	case step.Restore != nil:
		e.Restore(*step.Restore)
	case step.View != nil:
		e.SetViewSize(step.View.Width, step.View.Height)
	case step.Content != nil:
		e.SetContentSize(step.Content.Width, step.Content.Height)
	case step.Reset != nil:
		e.Reset(*step.Reset)
	case step.Tick != nil:
		r.clock += *step.Tick
		e.Tick(r.clock)
	case step.Settle:
		r.settle()
	case step.End:
		e.EndGesture()
	}

	return Record{
		Step:      index,
		Op:        step.Op(),
		Consumed:  consumed,
		Clock:     r.clock,
		Committed: e.Committed().TransformState,
		Displayed: e.Displayed().TransformState,
		Animating: e.Animating(),
		Gesturing: e.Gesturing(),
	}
}

func (r *Runner) settle() {
	for i := 0; i < maxSettleFrames; i++ {
		if _, running := r.engine.Tick(r.clock); !running {
			return
		}
		r.clock += FrameInterval
	}
	viewport.Logger().Warn("replay: animation did not settle", "frames", maxSettleFrames)
}
