// Package replay drives a viewport engine from a recorded gesture script.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"zoomview/internal/viewport"
	"zoomview/pkg/geometry"

	"gopkg.in/yaml.v3"
)

// Script is a replayable sequence of engine inputs.
//
//	content: {width: 4000, height: 3000}
//	view: {width: 1000, height: 800}
//	steps:
//	  - double_tap: {x: 700, y: 600}
//	  - settle: true
//	  - sample:
//	      pointers: [{id: 1, pressed: true}, {id: 2, pressed: true}]
//	      zoom: 1.5
//	  - end: true
type Script struct {
	Content Dimensions    `yaml:"content"`
	View    geometry.Size `yaml:"view"`
	Steps   []Step        `yaml:"steps"`
}

// Dimensions is a natural content size in pixels.
type Dimensions struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ZoomTo is a programmatic zoom request.
type ZoomTo struct {
	Pivot geometry.Point `yaml:"pivot"`
	Scale float64        `yaml:"scale"`
}

// Step holds exactly one engine input.
type Step struct {
	Sample    *viewport.GestureSample  `yaml:"sample"`
	DoubleTap *geometry.Point          `yaml:"double_tap"`
	ZoomTo    *ZoomTo                  `yaml:"zoom_to"`
	Restore   *viewport.TransformState `yaml:"restore"`
	View      *geometry.Size           `yaml:"view"`
	Content   *Dimensions              `yaml:"content"`

	// Reset returns to rest; the value selects an animated reset.
	Reset *bool `yaml:"reset"`

	// Tick advances the frame clock by the given duration.
	Tick *time.Duration `yaml:"tick"`

	// Settle ticks at FrameInterval until the animation finishes.
	Settle bool `yaml:"settle"`

	// End lifts all pointers.
	End bool `yaml:"end"`
}

// Op returns the name of the step's input, or "" if none is set.
func (s Step) Op() string {
	ops := s.ops()
	if len(ops) != 1 {
		return ""
	}
	return ops[0]
}

func (s Step) ops() []string {
	var ops []string
	add := func(set bool, name string) {
		if set {
			ops = append(ops, name)
		}
	}
	add(s.Sample != nil, "sample")
	add(s.DoubleTap != nil, "double_tap")
	add(s.ZoomTo != nil, "zoom_to")
	add(s.Restore != nil, "restore")
	add(s.View != nil, "view")
	add(s.Content != nil, "content")
	add(s.Reset != nil, "reset")
	add(s.Tick != nil, "tick")
	add(s.Settle, "settle")
	add(s.End, "end")
	return ops
}

// Parse decodes a YAML script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty script")
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads and decodes the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks that every step names exactly one input.
func (s *Script) Validate() error {
	var errs []error
	if s.Content.Width < 0 || s.Content.Height < 0 {
		errs = append(errs, fmt.Errorf("content size %dx%d is negative", s.Content.Width, s.Content.Height))
	}
	for i, step := range s.Steps {
		switch ops := step.ops(); len(ops) {
		case 0:
			errs = append(errs, fmt.Errorf("step %d: no input", i+1))
		case 1:
			if step.Tick != nil && *step.Tick < 0 {
				errs = append(errs, fmt.Errorf("step %d: negative tick %v", i+1, *step.Tick))
			}
		default:
			errs = append(errs, fmt.Errorf("step %d: multiple inputs %v", i+1, ops))
		}
	}
	return errors.Join(errs...)
}
