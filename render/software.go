// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/sketch"
)

// SoftwareRenderer is a CPU renderer for tessellated frames.
//
// Triangles are grouped into runs that share a color and a span, and each
// run is rasterized in one anti-aliased pass with golang.org/x/image/vector.
// Rasterizing a whole run at once keeps shared triangle edges seamless:
// coverage from adjacent triangles adds up instead of blending twice.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	if err := renderer.Render(target, frame); err != nil {
//	    return err
//	}
//	img := target.Image()
type SoftwareRenderer struct {
	raster vector.Rasterizer
	runs   []triangleRun
}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the frame to the target.
//
// Returns ErrNoPixelAccess if the target is GPU-only (no Pixels() support).
func (r *SoftwareRenderer) Render(target RenderTarget, frame *sketch.Frame) error {
	if err := validate(target, frame); err != nil {
		return err
	}
	pixels := target.Pixels()
	if pixels == nil {
		return ErrNoPixelAccess
	}
	dst := &image.RGBA{
		Pix:    pixels,
		Stride: target.Stride(),
		Rect:   image.Rect(0, 0, target.Width(), target.Height()),
	}

	runs, err := collectRuns(frame, r.runs[:0])
	if err != nil {
		return err
	}
	r.runs = runs

	if c, ok := frame.Clear.Get(); ok {
		xdraw.Draw(dst, dst.Rect, image.NewUniform(c.Color()), image.Point{}, xdraw.Src)
	}
	for _, run := range runs {
		r.fillRun(dst, frame, run)
	}

	sketch.Logger().Debug("software frame rendered",
		"triangles", frame.Triangles(),
		"runs", len(runs),
		"width", dst.Rect.Dx(),
		"height", dst.Rect.Dy())
	return nil
}

// Flush is a no-op for the software renderer.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Capabilities returns the software renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                false,
		SupportsAntialiasing: true,
		SupportsSurfaces:     false,
		MaxTextureSize:       0,
	}
}

// fillRun rasterizes every triangle of run as one coverage mask.
func (r *SoftwareRenderer) fillRun(dst *image.RGBA, frame *sketch.Frame, run triangleRun) {
	indices := frame.Indices[run.first : run.first+run.count]
	first := frame.Vertices[indices[0]].Position
	minX, minY, maxX, maxY := first[0], first[1], first[0], first[1]
	for _, idx := range indices[1:] {
		p := frame.Vertices[idx].Position
		minX = math32.Min(minX, p[0])
		minY = math32.Min(minY, p[1])
		maxX = math32.Max(maxX, p[0])
		maxY = math32.Max(maxY, p[1])
	}
	bounds := image.Rect(
		int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)),
	).Intersect(dst.Rect)
	if bounds.Empty() {
		return
	}

	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	r.raster.Reset(bounds.Dx(), bounds.Dy())
	for i := 0; i+2 < len(indices); i += 3 {
		a := frame.Vertices[indices[i]].Position
		b := frame.Vertices[indices[i+1]].Position
		c := frame.Vertices[indices[i+2]].Position
		r.raster.MoveTo(a[0]-ox, a[1]-oy)
		r.raster.LineTo(b[0]-ox, b[1]-oy)
		r.raster.LineTo(c[0]-ox, c[1]-oy)
		r.raster.ClosePath()
	}
	r.raster.Draw(dst, bounds, image.NewUniform(run.color), image.Point{})
}

// triangleRun is a range of indices drawn with one color.
type triangleRun struct {
	first int
	count int
	color color.NRGBA
}

// collectRuns splits the index list into runs. A run ends where a span
// starts or where the triangle color changes, so shapes keep their
// painter's order.
func collectRuns(frame *sketch.Frame, runs []triangleRun) ([]triangleRun, error) {
	if len(frame.Indices)%3 != 0 {
		return nil, ErrBadIndex
	}
	starts := make(map[int]bool, len(frame.Spans))
	for _, s := range frame.Spans {
		starts[int(s.FirstIndex)] = true
	}
	for i := 0; i < len(frame.Indices); i += 3 {
		for _, idx := range frame.Indices[i : i+3] {
			if int(idx) >= len(frame.Vertices) {
				return nil, ErrBadIndex
			}
		}
		c := nrgba(frame.Vertices[frame.Indices[i]].Color)
		if n := len(runs); n > 0 && !starts[i] && runs[n-1].color == c {
			runs[n-1].count += 3
			continue
		}
		runs = append(runs, triangleRun{first: i, count: 3, color: c})
	}
	return runs, nil
}

// nrgba converts a straight-alpha float color to 8-bit channels.
func nrgba(c [4]float32) color.NRGBA {
	return color.NRGBA{
		R: unit8(c[0]),
		G: unit8(c[1]),
		B: unit8(c[2]),
		A: unit8(c[3]),
	}
}

func unit8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Round(v * 255))
}

// Ensure SoftwareRenderer implements CapableRenderer.
var _ CapableRenderer = (*SoftwareRenderer)(nil)
