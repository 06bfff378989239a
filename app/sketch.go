// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/render"
)

// ErrStopped is returned by Step after Quit.
var ErrStopped = errors.New("app: sketch stopped")

// DrawFunc records one frame of drawing commands into g.
type DrawFunc func(s *Sketch, g *sketch.Graphics)

// KeyHandler is called when a key is pressed or released.
type KeyHandler func(s *Sketch, key gpucontext.Key, pressed bool)

// Option configures a Sketch.
type Option func(*Sketch)

// WithRenderer sets the renderer used by Step and Run.
// Without it Step uses a SoftwareRenderer and Run picks one from
// Settings.Renderer.
func WithRenderer(r render.Renderer) Option {
	return func(s *Sketch) {
		s.renderer = r
	}
}

// WithSetup registers a function that runs once before the first frame.
func WithSetup(fn func(s *Sketch)) Option {
	return func(s *Sketch) {
		s.setup = fn
	}
}

// WithUpdate registers a function that runs on every tick, including
// ticks where the framerate cap suppresses drawing.
func WithUpdate(fn func(s *Sketch)) Option {
	return func(s *Sketch) {
		s.update = fn
	}
}

// WithKeyHandler registers a callback for key presses and releases.
func WithKeyHandler(fn KeyHandler) Option {
	return func(s *Sketch) {
		s.onKey = fn
	}
}

// WithExitKey makes the given key stop the sketch.
func WithExitKey(key gpucontext.Key) Option {
	return func(s *Sketch) {
		s.exitKey = key
	}
}

// WithBuilderOptions configures the tessellation of every frame.
func WithBuilderOptions(opts ...sketch.GeometryBuilderOption) Option {
	return func(s *Sketch) {
		s.builder = sketch.NewGeometryBuilder(opts...)
	}
}

// withClock replaces time.Now. Used by tests.
func withClock(now func() time.Time) Option {
	return func(s *Sketch) {
		s.now = now
	}
}

// Sketch is the host loop state around a draw callback: frame counter,
// timing, window size, input state and the framerate cap.
//
// A Sketch is driven either by Run, which opens a window, or by Step,
// which renders a single tick into any render target.
//
// Sketch is NOT safe for concurrent use.
type Sketch struct {
	settings Settings
	draw     DrawFunc
	setup    func(*Sketch)
	update   func(*Sketch)
	onKey    KeyHandler
	exitKey  gpucontext.Key
	renderer render.Renderer
	builder  *sketch.GeometryBuilder
	now      func() time.Time

	width, height int
	framerate     int

	started  bool
	stopped  bool
	drawn    bool
	start    time.Time
	lastDraw time.Time
	elapsed  time.Duration
	delta    time.Duration

	frameCount uint64
	skipped    uint64
	frame      *sketch.Frame

	keys    map[gpucontext.Key]bool
	mods    gpucontext.Modifiers
	buttons map[gpucontext.MouseButton]bool
	mouseX  float64
	mouseY  float64
}

// New creates a sketch that calls draw once per frame.
func New(settings Settings, draw DrawFunc, opts ...Option) (*Sketch, error) {
	if draw == nil {
		return nil, errors.New("app: draw function is nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Sketch{
		settings:  settings,
		draw:      draw,
		builder:   sketch.NewGeometryBuilder(),
		now:       time.Now,
		width:     settings.Width,
		height:    settings.Height,
		framerate: settings.Framerate,
		keys:      make(map[gpucontext.Key]bool),
		buttons:   make(map[gpucontext.MouseButton]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Settings returns the settings the sketch was created with.
func (s *Sketch) Settings() Settings {
	return s.settings
}

// FrameCount returns the number of frames drawn so far.
func (s *Sketch) FrameCount() uint64 {
	return s.frameCount
}

// SkippedFrames returns the number of frames dropped because they could
// not be tessellated.
func (s *Sketch) SkippedFrames() uint64 {
	return s.skipped
}

// Elapsed returns the time since the first tick.
func (s *Sketch) Elapsed() time.Duration {
	return s.elapsed
}

// Delta returns the time between the last two drawn frames.
// It is zero on the first frame.
func (s *Sketch) Delta() time.Duration {
	return s.delta
}

// Size returns the current window size in pixels.
func (s *Sketch) Size() (width, height int) {
	return s.width, s.height
}

// Center returns the middle of the window.
func (s *Sketch) Center() sketch.Point {
	return sketch.Pt(float64(s.width)/2, float64(s.height)/2)
}

// Framerate returns the framerate cap. Zero means uncapped.
func (s *Sketch) Framerate() int {
	return s.framerate
}

// SetFramerate changes the framerate cap. Zero or a negative value
// removes the cap.
func (s *Sketch) SetFramerate(fps int) {
	if fps < 0 {
		fps = 0
	}
	s.framerate = fps
}

// KeyDown reports whether key is currently held.
func (s *Sketch) KeyDown(key gpucontext.Key) bool {
	return s.keys[key]
}

// Modifiers returns the modifier keys of the last key event.
func (s *Sketch) Modifiers() gpucontext.Modifiers {
	return s.mods
}

// MouseDown reports whether button is currently held.
func (s *Sketch) MouseDown(button gpucontext.MouseButton) bool {
	return s.buttons[button]
}

// Mouse returns the last known cursor position in window pixels.
func (s *Sketch) Mouse() sketch.Point {
	return sketch.Pt(s.mouseX, s.mouseY)
}

// Frame returns the most recently tessellated frame, or nil.
func (s *Sketch) Frame() *sketch.Frame {
	return s.frame
}

// Running reports whether the sketch has not been stopped.
func (s *Sketch) Running() bool {
	return !s.stopped
}

// Quit stops the sketch. A running window closes on its next frame.
func (s *Sketch) Quit() {
	s.stopped = true
}

// Step runs one tick and, if a new frame was drawn, renders it to target.
// Frames that fail to tessellate are skipped and logged, not returned.
func (s *Sketch) Step(target render.RenderTarget) error {
	if s.stopped {
		return ErrStopped
	}
	if s.renderer == nil {
		s.renderer = render.NewSoftwareRenderer()
	}
	frame := s.tick()
	if frame == nil {
		return nil
	}
	if err := s.renderer.Render(target, frame); err != nil {
		return fmt.Errorf("app: render frame %d: %w", s.frameCount, err)
	}
	return nil
}

// tick advances the clock, runs update, and draws a new frame when the
// framerate cap allows it. It returns the new frame or nil.
func (s *Sketch) tick() *sketch.Frame {
	now := s.now()
	if !s.started {
		s.started = true
		s.start = now
		if s.setup != nil {
			s.setup(s)
		}
	}
	s.elapsed = now.Sub(s.start)

	if s.update != nil {
		s.update(s)
	}
	if s.stopped || !s.due(now) {
		return nil
	}

	if s.drawn {
		s.delta = now.Sub(s.lastDraw)
	}
	s.drawn = true
	s.lastDraw = now

	g := sketch.NewGraphics()
	if bg, ok := s.settings.BackgroundColor().Get(); ok {
		g.Clear(bg)
	}
	s.draw(s, g)

	frame, err := s.builder.Build(g.Finish())
	if err != nil {
		s.skipped++
		sketch.Logger().Warn("frame skipped",
			slog.Uint64("frame", s.frameCount),
			slog.Any("error", err))
		return nil
	}
	s.frameCount++
	s.frame = frame
	return frame
}

// due reports whether enough time has passed since the last drawn frame.
func (s *Sketch) due(now time.Time) bool {
	if s.framerate <= 0 || !s.drawn {
		return true
	}
	return now.Sub(s.lastDraw) >= time.Second/time.Duration(s.framerate)
}

// handleKey updates key state and forwards the event.
func (s *Sketch) handleKey(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	s.mods = mods
	if pressed {
		s.keys[key] = true
	} else {
		delete(s.keys, key)
	}
	if s.onKey != nil {
		s.onKey(s, key, pressed)
	}
	if pressed && s.exitKey != gpucontext.KeyUnknown && key == s.exitKey {
		s.Quit()
	}
}

func (s *Sketch) handleMouseMove(x, y float64) {
	s.mouseX, s.mouseY = x, y
}

func (s *Sketch) handleMouseButton(button gpucontext.MouseButton, x, y float64, pressed bool) {
	s.mouseX, s.mouseY = x, y
	if pressed {
		s.buttons[button] = true
	} else {
		delete(s.buttons, button)
	}
}

func (s *Sketch) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
}
