// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// RenderTarget is the surface a Frame is drawn onto.
//
// A target exposes its pixels (Pixels and Stride), a GPU texture view, or
// both. Renderers pick whichever they can use and fail with
// ErrNoPixelAccess or ErrNoDevice otherwise.
type RenderTarget interface {
	Width() int
	Height() int
	Format() gputypes.TextureFormat

	// TextureView is a hal.TextureView, or nil when the target lives in
	// memory only.
	TextureView() any

	// Pixels holds Height rows of Stride bytes, RGBA order. It is nil
	// when the target has no CPU copy.
	Pixels() []byte
	Stride() int
}

// PixmapTarget keeps the frame in an *image.RGBA. The software renderer
// draws into it directly; the GPU renderer copies its result back into it.
//
//	target := render.NewPixmapTarget(640, 480)
//	if err := r.Render(target, frame); err != nil { ... }
//	err := target.SavePNG("frame.png")
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget returns a transparent width x height target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (t *PixmapTarget) Width() int                     { return t.img.Rect.Dx() }
func (t *PixmapTarget) Height() int                    { return t.img.Rect.Dy() }
func (t *PixmapTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (t *PixmapTarget) TextureView() any               { return nil }
func (t *PixmapTarget) Pixels() []byte                 { return t.img.Pix }
func (t *PixmapTarget) Stride() int                    { return t.img.Stride }

// Image shares the target's memory; later renders show through it.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// Clear overwrites every pixel with c, alpha included.
func (t *PixmapTarget) Clear(c color.Color) {
	xdraw.Draw(t.img, t.img.Rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// GetPixel reads one pixel. Out of range coordinates read as zero.
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// Resize reallocates the pixmap when the window size changes. The old
// contents are dropped; a same-size call keeps the current image.
func (t *PixmapTarget) Resize(width, height int) {
	if width != t.Width() || height != t.Height() {
		t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	}
}

// SavePNG encodes the current pixels to path.
func (t *PixmapTarget) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, t.img); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}

// SurfaceTarget points the GPU renderer at a texture view owned by the
// host, typically the window's current swapchain image. The view is only
// good for one frame, so build a new SurfaceTarget each frame.
type SurfaceTarget struct {
	width, height int
	format        gputypes.TextureFormat
	view          any
}

// NewSurfaceTarget wraps view, normally a hal.TextureView.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view any) *SurfaceTarget {
	return &SurfaceTarget{width: width, height: height, format: format, view: view}
}

func (t *SurfaceTarget) Width() int                     { return t.width }
func (t *SurfaceTarget) Height() int                    { return t.height }
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.format }
func (t *SurfaceTarget) TextureView() any               { return t.view }
func (t *SurfaceTarget) Pixels() []byte                 { return nil }
func (t *SurfaceTarget) Stride() int                    { return 0 }

var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ RenderTarget = (*SurfaceTarget)(nil)
)
