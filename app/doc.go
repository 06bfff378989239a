// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app hosts a sketch: it owns the per-frame loop around a draw
// callback, tracks timing and input, and hands each tessellated frame to a
// renderer.
//
// # Windowed
//
//	s, err := app.New(app.DefaultSettings(), func(s *app.Sketch, g *sketch.Graphics) {
//	    g.Fill(sketch.Red)
//	    g.Square(s.Center(), 100)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(s.Run())
//
// Run opens a gogpu window. Frames are rendered offscreen with the GPU
// renderer when the window's device exposes its HAL objects, with the
// software renderer otherwise, and shown through a window texture.
//
// # Headless
//
//	target := render.NewPixmapTarget(640, 480)
//	for i := 0; i < 60; i++ {
//	    if err := s.Step(target); err != nil {
//	        return err
//	    }
//	}
//
// # Frame pacing
//
// Settings.Framerate caps how often draw runs. Ticks that arrive early
// still run the update callback but do not draw. A frame whose geometry
// cannot be tessellated is skipped and logged at Warn level.
package app
