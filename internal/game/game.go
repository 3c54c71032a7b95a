// Package game hosts the scenes in an ebiten window: it drives one render per
// tick from the playing track and handles the player controls.
package game

import (
	"errors"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/ionized-visualizer/internal/audio"
	"github.com/iburimskiy/ionized-visualizer/internal/config"
	"github.com/iburimskiy/ionized-visualizer/internal/scene"
	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

// player is the part of audio.Player the game drives.
type player interface {
	Load(path string) error
	TogglePause() error
	SeekBy(d time.Duration) error
	SeekTo(fraction float64) error
	Loaded() bool
	Paused() bool
	Playing() bool
	TrackName() string
	Position() time.Duration
	Duration() time.Duration
	Tap() *audio.Tap
	Close() error
}

type Game struct {
	player   player
	analyzer *spectrum.Analyzer
	scenes   *scene.Registry
	openFile func() (string, error)

	// persistent drawing target, reallocated on resize
	canvas  *ebiten.Image
	target  surface.Surface
	samples []float64

	width, height int

	// ui state
	showHotkeys      bool
	welcomeHovered   bool
	progressHovered  bool
	progressDragging bool
	lastSeekTime     time.Time
	lastErr          error
}

func New(opts config.Options) *Game {
	g := &Game{
		player: audio.NewPlayer(config.VisualRingSize),
		analyzer: spectrum.NewAnalyzer(spectrum.Config{
			FFTSize:   config.FFTSize,
			Smoothing: config.SmoothingFactor,
			MinDB:     config.MinDecibels,
			MaxDB:     config.MaxDecibels,
		}),
		scenes:   scene.Default(scene.NewRand(opts.Seed)),
		openFile: selectAudioFile,
		width:    opts.Width,
		height:   opts.Height,
	}
	if err := g.scenes.Select(opts.Scene); err != nil {
		log.Printf("[game] %v, starting with %s", err, g.scenes.Label())
	}
	return g
}

func selectAudioFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions(),
		}},
	)
}

// Load plays path and records a failure for the status line.
func (g *Game) Load(path string) error {
	if err := g.player.Load(path); err != nil {
		g.lastErr = err
		log.Printf("[game] load failed: %v", err)
		return err
	}
	g.lastErr = nil
	g.analyzer.Reset()
	return nil
}

func (g *Game) openDialog() {
	path, err := g.openFile()
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		g.lastErr = err
		return
	}
	_ = g.Load(path)
}

// Close releases the audio device and track.
func (g *Game) Close() error {
	return g.player.Close()
}

var hotkeys = []ebiten.Key{
	ebiten.KeySpace,
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyN,
	ebiten.KeyB,
	ebiten.KeyU,
	ebiten.KeyF,
	ebiten.KeyH,
	ebiten.KeyEscape,
	ebiten.KeyQ,
}

func (g *Game) Update() error {
	for _, k := range hotkeys {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.handleKey(k); err != nil {
				return err
			}
		}
	}
	g.handleMouse()
	return nil
}

// handleKey applies one hotkey. It returns ebiten.Termination to quit.
func (g *Game) handleKey(k ebiten.Key) error {
	switch k {
	case ebiten.KeySpace:
		g.report(g.player.TogglePause())
	case ebiten.KeyArrowRight:
		g.report(g.player.SeekBy(config.SeekStep * time.Second))
	case ebiten.KeyArrowLeft:
		g.report(g.player.SeekBy(-config.SeekStep * time.Second))
	case ebiten.KeyN:
		g.scenes.Next()
		log.Printf("[game] scene %s", g.scenes.Label())
	case ebiten.KeyB:
		g.scenes.Prev()
		log.Printf("[game] scene %s", g.scenes.Label())
	case ebiten.KeyU:
		g.openDialog()
	case ebiten.KeyF:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case ebiten.KeyH:
		g.showHotkeys = !g.showHotkeys
	case ebiten.KeyEscape:
		if g.showHotkeys {
			g.showHotkeys = false
			return nil
		}
		return ebiten.Termination
	case ebiten.KeyQ:
		return ebiten.Termination
	}
	return nil
}

// report keeps the last real error for the status line. Controls pressed
// before a track is loaded are not errors.
func (g *Game) report(err error) {
	if err == nil || errors.Is(err, audio.ErrNotLoaded) {
		return
	}
	g.lastErr = err
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.showHotkeys {
		if pressed {
			g.showHotkeys = false
		}
		return
	}

	g.welcomeHovered = !g.player.Loaded() && inside(welcomeRect(g.width, g.height), mx, my)
	if g.welcomeHovered && released {
		g.openDialog()
		return
	}

	bar := progressRect(g.width, g.height)
	g.progressHovered = !ebiten.IsFullscreen() && inside(bar, mx, my)
	if !g.player.Loaded() || g.player.Duration() <= 0 {
		g.progressDragging = false
		return
	}
	if g.progressHovered && pressed {
		g.progressDragging = true
		g.seekTo(progressAt(bar, mx), true)
	}
	if released {
		g.progressDragging = false
	}
	if g.progressDragging {
		g.seekTo(progressAt(bar, mx), false)
	}
}

// seekTo seeks to a track fraction. Drags are debounced and ignore moves of
// less than 1% of the track.
func (g *Game) seekTo(fraction float64, force bool) {
	if !force {
		if time.Since(g.lastSeekTime) < 50*time.Millisecond {
			return
		}
		current := float64(g.player.Position()) / float64(g.player.Duration())
		if abs(fraction-current) <= 0.01 {
			return
		}
	}
	g.report(g.player.SeekTo(fraction))
	g.lastSeekTime = time.Now()
}

// tick renders the active scene for the current audio. Nothing is drawn
// while paused so the last frame stays on screen.
func (g *Game) tick() {
	if !g.player.Playing() || g.target == nil {
		return
	}
	tap := g.player.Tap()
	if tap == nil {
		return
	}
	g.samples = tap.Mono(g.samples[:0], config.FFTSize)
	frame := g.analyzer.Analyze(g.samples)
	g.scenes.Render(g.target, frame)
}

func (g *Game) ensureCanvas() {
	w, h := max(g.width, 1), max(g.height, 1)
	if g.canvas != nil {
		if b := g.canvas.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(w, h)
	g.target = surface.NewEbiten(g.canvas)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureCanvas()
	g.tick()
	screen.DrawImage(g.canvas, nil)
	g.drawOverlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
