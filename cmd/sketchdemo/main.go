// Command sketchdemo draws an animated sketch.
//
// By default it renders headless and writes the last frame to a PNG file.
// With -window it opens a window instead.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/app"
	"github.com/gogpu/sketch/render"
)

func main() {
	var (
		config  = flag.String("config", "", "YAML settings file")
		width   = flag.Int("width", 0, "window width (overrides config)")
		height  = flag.Int("height", 0, "window height (overrides config)")
		frames  = flag.Int("frames", 60, "frames to render headless")
		output  = flag.String("output", "sketch.png", "output file")
		window  = flag.Bool("window", false, "open a window instead of rendering headless")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	settings := app.DefaultSettings()
	settings.Title = "sketchdemo"
	settings.Background = "#1a1a2e"
	if *config != "" {
		var err error
		settings, err = app.LoadSettings(*config)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	if *width > 0 {
		settings.Width = *width
	}
	if *height > 0 {
		settings.Height = *height
	}

	s, err := app.New(settings, drawFrame,
		app.WithSetup(func(s *app.Sketch) {
			w, h := s.Size()
			log.Printf("Sketch started (%dx%d)", w, h)
		}),
		app.WithKeyHandler(func(s *app.Sketch, key gpucontext.Key, pressed bool) {
			if pressed && key == gpucontext.KeySpace {
				if s.Framerate() == 0 {
					s.SetFramerate(10)
				} else {
					s.SetFramerate(0)
				}
			}
		}),
		app.WithExitKey(gpucontext.KeyEscape))
	if err != nil {
		log.Fatalf("Failed to create sketch: %v", err)
	}

	if *window {
		if err := s.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	target := render.NewPixmapTarget(settings.Width, settings.Height)
	for i := 0; i < *frames; i++ {
		if err := s.Step(target); err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
	}
	if err := target.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Frame %d saved to %s (%dx%d, %d skipped)\n",
		s.FrameCount(), *output, settings.Width, settings.Height, s.SkippedFrames())
}

// drawFrame draws a ring of squares turning around the window center.
// Each transform moves what is drawn after it in window space, so the
// ops below read from the square outwards.
func drawFrame(s *app.Sketch, g *sketch.Graphics) {
	const count = 12

	w, h := s.Size()
	radius := float64(min(w, h)) * 0.35
	spin := float64(s.FrameCount())

	g.AngleMode(sketch.AngleDegrees)
	for i := 0; i < count; i++ {
		t := float64(i) / count
		g.Scoped(func(g *sketch.Graphics) {
			g.Rotate(spin * -6)
			g.Translate(sketch.Pt(radius, 0))
			g.Rotate(t*360 + spin*2)
			g.Translate(s.Center())

			g.Fill(sketch.RGBA{R: 0.9, G: 0.3 + 0.6*t, B: 1 - t, A: 0.85})
			g.Stroke(sketch.White)
			g.StrokeWeight(2)
			g.Square(sketch.Pt(0, 0), radius*0.25)
		})
	}

	g.NoFill()
	g.Stroke(sketch.Gray(0.6))
	g.StrokeWeight(1)
	g.Rect(s.Center(), sketch.Pt(radius*0.6, radius*0.6))
}
