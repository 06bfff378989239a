// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sketch"
)

// buildFrame records a drawing with draw and tessellates it.
func buildFrame(t *testing.T, draw func(g *sketch.Graphics)) *sketch.Frame {
	t.Helper()
	g := sketch.NewGraphics()
	g.AnchorMode(sketch.AnchorFirstPoint)
	draw(g)
	frame, err := sketch.NewGeometryBuilder().Build(g.Finish())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return frame
}

// near reports whether every channel of got is within tol of want.
func near(got, want color.RGBA, tol int) bool {
	diff := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d <= tol && d >= -tol
	}
	return diff(got.R, want.R) && diff(got.G, want.G) && diff(got.B, want.B) && diff(got.A, want.A)
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	black = color.RGBA{0, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func TestSoftwareRendererCapabilities(t *testing.T) {
	caps := NewSoftwareRenderer().Capabilities()

	if caps.IsGPU {
		t.Error("SoftwareRenderer should not be GPU")
	}
	if !caps.SupportsAntialiasing {
		t.Error("SoftwareRenderer should support antialiasing")
	}
	if caps.SupportsSurfaces {
		t.Error("SoftwareRenderer should not support surfaces")
	}
}

func TestSoftwareRendererFlush(t *testing.T) {
	if err := NewSoftwareRenderer().Flush(); err != nil {
		t.Errorf("Flush() error = %v, want nil", err)
	}
}

func TestSoftwareRendererInvalidArguments(t *testing.T) {
	frame := &sketch.Frame{}
	tests := []struct {
		name   string
		target RenderTarget
		frame  *sketch.Frame
		want   error
	}{
		{"nil target", nil, frame, ErrNilTarget},
		{"nil frame", NewPixmapTarget(4, 4), nil, ErrNilFrame},
		{"zero size", NewPixmapTarget(0, 4), frame, ErrEmptyTarget},
		{"surface", NewSurfaceTarget(4, 4, gputypes.TextureFormatBGRA8Unorm, struct{}{}), frame, ErrNoPixelAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSoftwareRenderer().Render(tt.target, tt.frame)
			if !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSoftwareRendererClear(t *testing.T) {
	target := NewPixmapTarget(8, 8)
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.Clear(sketch.White)
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := target.GetPixel(x, y); got != white {
				t.Fatalf("GetPixel(%d, %d) = %v, want white", x, y, got)
			}
		}
	}
}

func TestSoftwareRendererWithoutClearKeepsContents(t *testing.T) {
	target := NewPixmapTarget(20, 20)
	target.Clear(blue)
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.NoStroke()
		g.Fill(sketch.Red)
		g.Square(sketch.Pt(5, 5), 4)
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := target.GetPixel(1, 1); got != blue {
		t.Errorf("outside pixel = %v, want blue", got)
	}
	if got := target.GetPixel(6, 6); !near(got, red, 1) {
		t.Errorf("inside pixel = %v, want red", got)
	}
}

func TestSoftwareRendererFillRect(t *testing.T) {
	target := NewPixmapTarget(20, 20)
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.Clear(sketch.White)
		g.NoStroke()
		g.Fill(sketch.Red)
		g.Rect(sketch.Pt(5, 5), sketch.Pt(10, 10))
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, red},
		{14, 14, red},
		{10, 9, red}, // on the shared diagonal of the two triangles
		{9, 10, red},
		{4, 10, white},
		{15, 10, white},
		{10, 15, white},
		{0, 0, white},
	}
	for _, tt := range tests {
		if got := target.GetPixel(tt.x, tt.y); !near(got, tt.want, 1) {
			t.Errorf("GetPixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSoftwareRendererStroke(t *testing.T) {
	target := NewPixmapTarget(20, 20)
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.Clear(sketch.White)
		g.NoFill()
		g.Stroke(sketch.Black)
		g.StrokeWeight(2)
		g.Square(sketch.Pt(4, 4), 12)
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{3, 10, black},
		{4, 10, black},
		{15, 10, black},
		{10, 3, black},
		{10, 16, black},
		{10, 10, white},
		{6, 6, white},
		{1, 10, white},
	}
	for _, tt := range tests {
		if got := target.GetPixel(tt.x, tt.y); !near(got, tt.want, 1) {
			t.Errorf("GetPixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSoftwareRendererPainterOrder(t *testing.T) {
	target := NewPixmapTarget(20, 20)
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.Clear(sketch.White)
		g.NoStroke()
		g.Fill(sketch.Red)
		g.Square(sketch.Pt(2, 2), 10)
		g.Fill(sketch.Green)
		g.Square(sketch.Pt(8, 8), 10)
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := target.GetPixel(4, 4); !near(got, red, 1) {
		t.Errorf("first-only pixel = %v, want red", got)
	}
	if got := target.GetPixel(10, 10); !near(got, green, 1) {
		t.Errorf("overlap pixel = %v, want green", got)
	}
}

func TestSoftwareRendererSpansBlendSeparately(t *testing.T) {
	target := NewPixmapTarget(20, 20)
	half := sketch.RGBA{R: 1, A: 0.5}
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.NoStroke()
		g.Fill(half)
		g.Square(sketch.Pt(0, 0), 10)
		g.Square(sketch.Pt(5, 5), 10)
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	single := target.GetPixel(2, 2).A
	overlap := target.GetPixel(7, 7).A
	if overlap <= single {
		t.Errorf("overlap alpha %d should exceed single alpha %d", overlap, single)
	}
}

func TestSoftwareRendererOffTarget(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	target.Clear(white)
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.NoStroke()
		g.Fill(sketch.Red)
		g.Square(sketch.Pt(-50, -50), 20)
		g.Square(sketch.Pt(-5, -5), 10)
	})

	if err := NewSoftwareRenderer().Render(target, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := target.GetPixel(2, 2); !near(got, red, 1) {
		t.Errorf("clipped pixel = %v, want red", got)
	}
	if got := target.GetPixel(7, 7); got != white {
		t.Errorf("uncovered pixel = %v, want white", got)
	}
}

func TestCollectRuns(t *testing.T) {
	frame := buildFrame(t, func(g *sketch.Graphics) {
		g.Fill(sketch.Red)
		g.Stroke(sketch.Red)
		g.Square(sketch.Pt(0, 0), 10)
	})

	runs, err := collectRuns(frame, nil)
	if err != nil {
		t.Fatalf("collectRuns() error = %v", err)
	}
	if len(runs) != len(frame.Spans) {
		t.Fatalf("len(runs) = %d, want one per span (%d)", len(runs), len(frame.Spans))
	}
	total := 0
	for _, r := range runs {
		total += r.count
	}
	if total != len(frame.Indices) {
		t.Errorf("runs cover %d indices, want %d", total, len(frame.Indices))
	}
}

func TestCollectRunsWithoutSpans(t *testing.T) {
	redV := sketch.Vertex{Color: [4]float32{1, 0, 0, 1}}
	blueV := sketch.Vertex{Color: [4]float32{0, 0, 1, 1}}
	frame := &sketch.Frame{
		Vertices: []sketch.Vertex{redV, redV, redV, blueV, blueV, blueV},
		Indices:  []uint32{0, 1, 2, 2, 1, 0, 3, 4, 5},
	}

	runs, err := collectRuns(frame, nil)
	if err != nil {
		t.Fatalf("collectRuns() error = %v", err)
	}
	if len(runs) != 2 || runs[0].count != 6 || runs[1].first != 6 {
		t.Errorf("runs = %+v, want [0,6) and [6,9)", runs)
	}
}

func TestCollectRunsBadIndices(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
	}{
		{"out of range", []uint32{0, 1, 3}},
		{"partial triangle", []uint32{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := &sketch.Frame{
				Vertices: make([]sketch.Vertex, 3),
				Indices:  tt.indices,
			}
			if _, err := collectRuns(frame, nil); !errors.Is(err, ErrBadIndex) {
				t.Errorf("collectRuns() error = %v, want ErrBadIndex", err)
			}
			err := NewSoftwareRenderer().Render(NewPixmapTarget(4, 4), frame)
			if !errors.Is(err, ErrBadIndex) {
				t.Errorf("Render() error = %v, want ErrBadIndex", err)
			}
		})
	}
}

func TestNRGBA(t *testing.T) {
	tests := []struct {
		in   [4]float32
		want color.NRGBA
	}{
		{[4]float32{1, 0, 0, 1}, color.NRGBA{255, 0, 0, 255}},
		{[4]float32{0.5, 0.5, 0.5, 0.5}, color.NRGBA{128, 128, 128, 128}},
		{[4]float32{-1, 2, 0, 1}, color.NRGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		if got := nrgba(tt.in); got != tt.want {
			t.Errorf("nrgba(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
