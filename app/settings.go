// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/sketch"
)

// Settings errors.
var (
	// ErrInvalidSize is returned when the window width or height is not positive.
	ErrInvalidSize = errors.New("app: window size must be positive")

	// ErrInvalidFramerate is returned for a negative framerate cap.
	ErrInvalidFramerate = errors.New("app: framerate must not be negative")

	// ErrInvalidBackground is returned when the background is not a hex color.
	ErrInvalidBackground = errors.New("app: background must be a hex color")

	// ErrInvalidRenderer is returned for an unknown renderer name.
	ErrInvalidRenderer = errors.New("app: renderer must be auto, gpu or software")
)

// Renderer names accepted in Settings.Renderer.
const (
	RendererAuto     = "auto"
	RendererGPU      = "gpu"
	RendererSoftware = "software"
)

// Settings describes the sketch window and its frame pacing.
//
// Settings can be written by hand or loaded from YAML:
//
//	title: Hello, sketch!
//	width: 800
//	height: 600
//	framerate: 60
//	background: "#202020"
type Settings struct {
	// Title is the window title.
	Title string `yaml:"title"`

	// Width and Height are the window size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Framerate caps how often draw runs, in frames per second.
	// Zero means uncapped.
	Framerate int `yaml:"framerate"`

	// Background is a hex color cleared before every frame.
	// Empty means the previous frame is kept.
	Background string `yaml:"background,omitempty"`

	// ContinuousRender redraws at VSync. When false the window only
	// redraws on events.
	ContinuousRender bool `yaml:"continuous_render"`

	// Renderer selects the rasterizer: "auto" (default), "gpu" or "software".
	Renderer string `yaml:"renderer,omitempty"`
}

// DefaultSettings returns a 640x480 uncapped window with continuous rendering.
func DefaultSettings() Settings {
	return Settings{
		Title:            "sketch",
		Width:            640,
		Height:           480,
		ContinuousRender: true,
		Renderer:         RendererAuto,
	}
}

// ParseSettings decodes YAML settings on top of DefaultSettings.
// Fields missing from data keep their default values.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("app: parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads and parses a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("app: load settings: %w", err)
	}
	return ParseSettings(data)
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	if s.Framerate < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFramerate, s.Framerate)
	}
	if _, _, err := s.background(); err != nil {
		return err
	}
	switch s.Renderer {
	case "", RendererAuto, RendererGPU, RendererSoftware:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRenderer, s.Renderer)
	}
	return nil
}

// BackgroundColor returns the parsed background color, if one is set.
// An invalid background yields no color; Validate reports it.
func (s Settings) BackgroundColor() sketch.OptionalColor {
	c, ok, err := s.background()
	if err != nil || !ok {
		return sketch.OptionalColor{}
	}
	return sketch.Some(c)
}

func (s Settings) background() (sketch.RGBA, bool, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s.Background), "#")
	if hex == "" {
		return sketch.RGBA{}, false, nil
	}
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return sketch.RGBA{}, false, fmt.Errorf("%w: %q", ErrInvalidBackground, s.Background)
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return sketch.RGBA{}, false, fmt.Errorf("%w: %q", ErrInvalidBackground, s.Background)
		}
	}
	return sketch.Hex(hex), true, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
