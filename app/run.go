// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/render"
)

// Presentation errors.
var (
	// ErrNoTextureCreator is returned when the window cannot create textures.
	ErrNoTextureCreator = errors.New("app: draw context has no texture creator")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Run opens a window and drives the sketch until the window is closed
// or Quit is called.
//
// Each frame is rendered into an offscreen pixmap, by the GPU renderer
// when the window's device is available and by the software renderer
// otherwise, and then drawn to the window as a texture.
func (s *Sketch) Run() error {
	a := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(s.settings.Title).
		WithSize(s.settings.Width, s.settings.Height).
		WithContinuousRender(s.settings.ContinuousRender))

	p := &presenter{sketch: s}
	s.bindEvents(a.EventSource())

	a.OnDraw(func(dc *gogpu.Context) {
		if s.stopped {
			a.Quit()
			return
		}
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		s.handleResize(w, h)

		if err := p.present(a.GPUContextProvider(), dc.AsTextureDrawer()); err != nil {
			sketch.Logger().Warn("present failed",
				slog.Uint64("frame", s.frameCount),
				slog.Any("error", err))
		}
		if s.stopped {
			a.Quit()
		}
	})
	a.OnClose(p.close)

	sketch.Logger().Info("window opened",
		slog.String("title", s.settings.Title),
		slog.Int("width", s.settings.Width),
		slog.Int("height", s.settings.Height))

	return a.Run()
}

// bindEvents forwards window input to the sketch.
func (s *Sketch) bindEvents(src gpucontext.EventSource) {
	if src == nil {
		return
	}
	src.OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		s.handleKey(key, mods, true)
	})
	src.OnKeyRelease(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		s.handleKey(key, mods, false)
	})
	src.OnMouseMove(s.handleMouseMove)
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		s.handleMouseButton(b, x, y, true)
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		s.handleMouseButton(b, x, y, false)
	})
	src.OnResize(s.handleResize)
}

// presenter renders sketch frames into a pixmap and shows the pixmap
// through a window texture.
type presenter struct {
	sketch *Sketch
	target *render.PixmapTarget
	gpu    *render.GPURenderer

	texture gpucontext.Texture
	dirty   bool
}

// present runs one tick of the sketch and draws the current pixmap.
func (p *presenter) present(provider gpucontext.DeviceProvider, drawer gpucontext.TextureDrawer) error {
	if drawer == nil {
		return ErrNoTextureCreator
	}
	if err := p.ensureRenderer(provider); err != nil {
		return err
	}

	s := p.sketch
	if p.target == nil {
		p.target = render.NewPixmapTarget(s.width, s.height)
		p.dirty = true
	} else if p.target.Width() != s.width || p.target.Height() != s.height {
		p.target.Resize(s.width, s.height)
		p.dirty = true
	}

	if frame := s.tick(); frame != nil {
		if err := s.renderer.Render(p.target, frame); err != nil {
			return fmt.Errorf("app: render frame %d: %w", s.frameCount, err)
		}
		p.dirty = true
	}

	if err := p.upload(drawer); err != nil {
		return err
	}
	return drawer.DrawTexture(p.texture, 0, 0)
}

// ensureRenderer picks a renderer from Settings.Renderer on first use.
func (p *presenter) ensureRenderer(provider gpucontext.DeviceProvider) error {
	s := p.sketch
	if s.renderer != nil {
		return nil
	}
	if s.settings.Renderer != RendererSoftware {
		r, err := render.NewGPURenderer(provider)
		if err == nil {
			p.gpu = r
			s.renderer = r
			sketch.Logger().Info("renderer selected", slog.String("renderer", RendererGPU))
			return nil
		}
		if s.settings.Renderer == RendererGPU {
			return fmt.Errorf("app: gpu renderer: %w", err)
		}
		sketch.Logger().Info("gpu renderer unavailable, using software", slog.Any("error", err))
	}
	s.renderer = render.NewSoftwareRenderer()
	sketch.Logger().Info("renderer selected", slog.String("renderer", RendererSoftware))
	return nil
}

// upload copies the pixmap into the window texture, recreating the
// texture when the size changed.
func (p *presenter) upload(drawer gpucontext.TextureDrawer) error {
	w, h := p.target.Width(), p.target.Height()
	if p.texture != nil && (p.texture.Width() != w || p.texture.Height() != h) {
		p.destroyTexture()
	}

	if p.texture == nil {
		creator := drawer.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(w, h, p.target.Pixels())
		if err != nil {
			return fmt.Errorf("app: create texture: %w", err)
		}
		// image.RGBA pixels are premultiplied.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		p.texture = tex
		p.dirty = false
		return nil
	}

	if !p.dirty {
		return nil
	}
	if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(p.target.Pixels()); err != nil {
			return fmt.Errorf("app: texture update failed: %w", err)
		}
	}
	p.dirty = false
	return nil
}

func (p *presenter) destroyTexture() {
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
}

// close releases the texture and the GPU renderer. The device itself
// belongs to the window.
func (p *presenter) close() {
	if p.texture != nil {
		p.destroyTexture()
	}
	if p.gpu != nil {
		p.gpu.Destroy()
		p.gpu = nil
	}
}
