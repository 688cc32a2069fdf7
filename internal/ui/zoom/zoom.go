// Package zoom implements hover and double-tap magnification of the modal image.
package zoom

import (
	"math"
	"time"
)

const (
	DefaultBreakpoint      = 768
	DefaultHoverScale      = 2.0
	DefaultTapScale        = 2.5
	DefaultDoubleTapWindow = 300 * time.Millisecond
	DefaultDoubleTapSlop   = 40
)

// Rect is an element's rendered bounding box.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Origin is a transform-origin in percent of the image box.
type Origin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var center = Origin{X: 50, Y: 50}

// Options tunes the interaction.
type Options struct {
	Breakpoint      float64
	HoverScale      float64
	TapScale        float64
	DoubleTapWindow time.Duration
	DoubleTapSlop   float64
}

func DefaultOptions() Options {
	return Options{
		Breakpoint:      DefaultBreakpoint,
		HoverScale:      DefaultHoverScale,
		TapScale:        DefaultTapScale,
		DoubleTapWindow: DefaultDoubleTapWindow,
		DoubleTapSlop:   DefaultDoubleTapSlop,
	}
}

// State is the zoom state of the image currently shown in the modal.
// Whether the image counts as zoomed is derived from its scale.
type State struct {
	opts    Options
	enabled bool

	scale      float64
	origin     Origin
	resetEpoch uint64

	lastTap   time.Time
	lastTapAt [2]float64
	hasTap    bool
}

func New(opts Options) *State {
	if opts.HoverScale <= 1 {
		opts.HoverScale = DefaultHoverScale
	}
	if opts.TapScale <= 1 {
		opts.TapScale = DefaultTapScale
	}
	if opts.DoubleTapWindow <= 0 {
		opts.DoubleTapWindow = DefaultDoubleTapWindow
	}
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	return &State{opts: opts, scale: 1, origin: center}
}

// Enable turns the interaction on for images and off for videos. Disabling resets.
func (s *State) Enable(on bool) {
	s.enabled = on
	if !on {
		s.reset()
	}
}

func (s *State) Enabled() bool { return s.enabled }
func (s *State) Scale() float64 { return s.scale }
func (s *State) Origin() Origin { return s.origin }
func (s *State) Zoomed() bool { return s.scale > 1 }
func (s *State) ResetEpoch() uint64 { return s.resetEpoch }

// Desktop reports whether hover zoom applies at this viewport width.
func (s *State) Desktop(viewportWidth float64) bool {
	return viewportWidth >= s.opts.Breakpoint
}

// HoverEnter magnifies the image at the pointer position.
func (s *State) HoverEnter(viewportWidth float64, box Rect, x, y float64) bool {
	if !s.enabled || !s.Desktop(viewportWidth) {
		return false
	}
	s.scale = s.opts.HoverScale
	s.origin = originAt(box, x, y)
	return true
}

// HoverMove makes the zoom follow the pointer.
func (s *State) HoverMove(viewportWidth float64, box Rect, x, y float64) bool {
	if !s.enabled || !s.Desktop(viewportWidth) || !s.Zoomed() {
		return false
	}
	s.origin = originAt(box, x, y)
	return true
}

// HoverLeave drops the magnification.
func (s *State) HoverLeave(viewportWidth float64) bool {
	if !s.enabled || !s.Desktop(viewportWidth) || !s.Zoomed() {
		return false
	}
	s.reset()
	return true
}

// Tap records a touch tap. A second tap inside the double-tap window and slop
// toggles the tap magnification; it reports whether the zoom changed.
func (s *State) Tap(viewportWidth float64, box Rect, x, y float64, at time.Time) bool {
	if !s.enabled || s.Desktop(viewportWidth) {
		return false
	}
	double := s.hasTap &&
		at.Sub(s.lastTap) <= s.opts.DoubleTapWindow &&
		math.Hypot(x-s.lastTapAt[0], y-s.lastTapAt[1]) <= s.opts.DoubleTapSlop
	if !double {
		s.hasTap = true
		s.lastTap = at
		s.lastTapAt = [2]float64{x, y}
		return false
	}
	s.hasTap = false
	if s.Zoomed() {
		s.reset()
		return true
	}
	s.scale = s.opts.TapScale
	s.origin = originAt(box, x, y)
	return true
}

// ResetInstant returns to scale 1 with the transition suppressed for this one change.
// Renderers watch ResetEpoch to know when to skip the animation.
func (s *State) ResetInstant() {
	s.reset()
	s.resetEpoch++
}

// reset clears scale and origin together.
func (s *State) reset() {
	s.scale = 1
	s.origin = center
	s.hasTap = false
}

func originAt(box Rect, x, y float64) Origin {
	if box.Width <= 0 || box.Height <= 0 {
		return center
	}
	return Origin{
		X: clampPercent((x - box.Left) / box.Width * 100),
		Y: clampPercent((y - box.Top) / box.Height * 100),
	}
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 50
	}
	return math.Max(0, math.Min(100, v))
}
