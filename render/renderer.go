// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/sketch"
)

// Rendering errors.
var (
	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNilFrame is returned when Render is called without a frame.
	ErrNilFrame = errors.New("render: nil frame")

	// ErrEmptyTarget is returned for targets with zero width or height.
	ErrEmptyTarget = errors.New("render: target has zero size")

	// ErrNoPixelAccess is returned when a CPU renderer gets a GPU-only target.
	ErrNoPixelAccess = errors.New("render: target has no pixel access")

	// ErrUnsupportedTarget is returned when a target exposes neither pixels
	// nor a usable texture view.
	ErrUnsupportedTarget = errors.New("render: unsupported target")

	// ErrNoDevice is returned when a DeviceHandle does not expose a HAL
	// device and queue.
	ErrNoDevice = errors.New("render: provider does not expose a HAL device")

	// ErrBadIndex is returned for frames whose index list is not a list of
	// triangles over the vertex list.
	ErrBadIndex = errors.New("render: index out of range")

	// ErrRendererClosed is returned by a renderer after Destroy.
	ErrRendererClosed = errors.New("render: renderer destroyed")
)

// Renderer draws a tessellated Frame to a render target.
//
// The frame is the output of sketch.GeometryBuilder.Build: one vertex
// list, one uint32 index list and an optional clear color. A renderer
// clears the target when Frame.Clear is set and otherwise draws over the
// existing contents. Positions are target pixels with (0,0) at the top-left
// corner and Y increasing down.
//
// Renderers are stateless between Render calls apart from cached GPU
// resources, so one renderer can draw to many targets.
//
// Thread Safety: Renderers are NOT thread-safe.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	if err := renderer.Render(target, frame); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type Renderer interface {
	// Render draws the frame to the target.
	//
	// The frame is not modified and can be rendered again.
	Render(target RenderTarget, frame *sketch.Frame) error

	// Flush ensures all pending rendering operations are complete.
	//
	// For CPU renderers this is a no-op. For GPU renderers it waits for the
	// device to go idle.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsAntialiasing indicates if triangle edges are anti-aliased.
	SupportsAntialiasing bool

	// SupportsSurfaces indicates if the renderer can draw to GPU-only
	// targets such as window surfaces.
	SupportsSurfaces bool

	// MaxTextureSize is the maximum target dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}

// validate checks the arguments shared by every Render implementation.
func validate(target RenderTarget, frame *sketch.Frame) error {
	if target == nil {
		return ErrNilTarget
	}
	if frame == nil {
		return ErrNilFrame
	}
	if target.Width() <= 0 || target.Height() <= 0 {
		return ErrEmptyTarget
	}
	return nil
}
