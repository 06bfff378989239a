// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws tessellated sketch frames to CPU or GPU targets.
//
// A sketch.Frame is a single triangle mesh: one vertex list (position and
// straight-alpha color), one uint32 index list, per-shape spans and an
// optional clear color. This package turns it into pixels.
//
// # Key Principle
//
// The renderer RECEIVES a GPU device from the host application, it does NOT
// create its own. gogpu.App exposes its device through DeviceHandle; the GPU
// renderer borrows it and never destroys it.
//
// # Core Interfaces
//
//   - DeviceHandle: GPU device access from the host application
//   - RenderTarget: where output goes (PixmapTarget, SurfaceTarget)
//   - Renderer: draws a Frame to a RenderTarget
//
// # Renderer Implementations
//
//   - SoftwareRenderer: anti-aliased CPU rasterization with x/image/vector
//   - GPURenderer: one indexed draw through the wgpu HAL
//
// # Usage
//
// With a host device:
//
//	renderer, err := render.NewGPURenderer(app.GPUContextProvider())
//	if err != nil {
//	    return err
//	}
//	target := render.NewSurfaceTarget(w, h, format, view) // view is a hal.TextureView
//	err = renderer.Render(target, frame)
//
// Headless:
//
//	target := render.NewPixmapTarget(800, 600)
//	renderer := render.NewSoftwareRenderer()
//	if err := renderer.Render(target, frame); err != nil {
//	    return err
//	}
//	err := target.SavePNG("frame.png")
//
// # Coordinates
//
// Vertex positions are target pixels: (0,0) is the top-left corner, X grows
// right and Y grows down. Both renderers use the same mapping, so a frame
// looks the same on either.
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
package render
