package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ionized-visualizer/internal/audio"
	"github.com/iburimskiy/ionized-visualizer/internal/config"
)

// Approximate glyph size of the debug font.
const (
	charWidth  = 6
	lineHeight = 16
)

var (
	cyan      = color.RGBA{R: 34, G: 211, B: 238, A: 255}
	cyanDim   = color.RGBA{R: 8, G: 51, B: 68, A: 200}
	panelFill = color.RGBA{R: 17, G: 24, B: 39, A: 200}
	shade     = color.RGBA{A: 180}
)

type hotkey struct {
	key, description string
}

var hotkeyHelp = []hotkey{
	{"Space", "Play / Pause"},
	{"Left", "Seek Backward 5s"},
	{"Right", "Seek Forward 5s"},
	{"B", "Previous Visualizer"},
	{"N", "Next Visualizer"},
	{"U", "Upload Music"},
	{"F", "Toggle Fullscreen"},
	{"H", "Toggle this panel"},
	{"Esc/Q", "Quit"},
}

func welcomeRect(w, h int) image.Rectangle {
	const bw, bh = 320, 120
	x, y := (w-bw)/2, (h-bh)/2
	return image.Rect(x, y, x+bw, y+bh)
}

func footerRect(w, h int) image.Rectangle {
	return image.Rect(config.ProgressMargin/2, h-config.FooterHeight, w-config.ProgressMargin/2, h-4)
}

func progressRect(w, h int) image.Rectangle {
	f := footerRect(w, h)
	x0 := f.Min.X + config.ProgressMargin + 6*charWidth
	x1 := f.Max.X - config.ProgressMargin - 6*charWidth
	y := f.Min.Y + 12
	return image.Rect(x0, y, max(x0+1, x1), y+config.ProgressHeight)
}

func inside(r image.Rectangle, x, y int) bool {
	return image.Pt(x, y).In(r)
}

// progressAt maps a cursor x onto the bar as a fraction in [0,1].
func progressAt(bar image.Rectangle, x int) float64 {
	p := float64(x-bar.Min.X) / float64(bar.Dx())
	return min(max(p, 0), 1)
}

// footerLine is the track/scene line under the progress bar.
func footerLine(track, scene string, paused bool) string {
	if track == "" {
		track = "No track loaded"
	}
	state := "Playing"
	if paused {
		state = "Paused"
	}
	return fmt.Sprintf("%s  |  %s  |  %s  |  H: hotkeys", state, track, scene)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	if !g.player.Loaded() {
		g.drawWelcome(screen)
	}
	if !ebiten.IsFullscreen() {
		g.drawFooter(screen)
	}
	if g.showHotkeys {
		g.drawHotkeys(screen)
	}
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, 12)
	}
}

func (g *Game) drawWelcome(screen *ebiten.Image) {
	r := welcomeRect(g.width, g.height)
	border := cyanDim
	if g.welcomeHovered {
		border = cyan
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), cyanDim, false)
	}
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, border, false)

	text := "Click to Upload Audio"
	ebitenutil.DebugPrintAt(screen, text, r.Min.X+(r.Dx()-len(text)*charWidth)/2, r.Min.Y+(r.Dy()-lineHeight)/2)
}

func (g *Game) drawFooter(screen *ebiten.Image) {
	f := footerRect(g.width, g.height)
	vector.DrawFilledRect(screen, float32(f.Min.X), float32(f.Min.Y), float32(f.Dx()), float32(f.Dy()), panelFill, false)
	vector.StrokeRect(screen, float32(f.Min.X), float32(f.Min.Y), float32(f.Dx()), float32(f.Dy()), 1, cyanDim, false)

	bar := progressRect(g.width, g.height)
	duration := g.player.Duration()
	position := g.player.Position()
	progress := 0.0
	if duration > 0 {
		progress = min(max(float64(position)/float64(duration), 0), 1)
	}

	// track
	vector.DrawFilledRect(screen, float32(bar.Min.X), float32(bar.Min.Y), float32(bar.Dx()), float32(bar.Dy()), cyanDim, false)
	if progress > 0 {
		vector.DrawFilledRect(screen, float32(bar.Min.X), float32(bar.Min.Y), float32(progress*float64(bar.Dx())), float32(bar.Dy()), cyan, false)
	}
	if g.progressHovered && duration > 0 {
		ix := float64(bar.Min.X) + progress*float64(bar.Dx())
		vector.DrawFilledCircle(screen, float32(ix), float32(bar.Min.Y+bar.Dy()/2), 7, color.White, true)
	}

	ty := bar.Min.Y - 3
	ebitenutil.DebugPrintAt(screen, audio.FormatDuration(position), f.Min.X+config.ProgressMargin/2, ty)
	ebitenutil.DebugPrintAt(screen, audio.FormatDuration(duration), bar.Max.X+config.ProgressMargin/2, ty)

	line := footerLine(g.player.TrackName(), g.scenes.Label(), g.player.Loaded() && !g.player.Playing())
	ebitenutil.DebugPrintAt(screen, line, f.Min.X+config.ProgressMargin/2, bar.Max.Y+14)
}

func (g *Game) drawHotkeys(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), shade, false)

	const pw = 300
	ph := 40 + len(hotkeyHelp)*lineHeight*3/2
	x, y := (g.width-pw)/2, (g.height-ph)/2
	vector.DrawFilledRect(screen, float32(x), float32(y), pw, float32(ph), panelFill, false)
	vector.StrokeRect(screen, float32(x), float32(y), pw, float32(ph), 1, cyan, false)

	ebitenutil.DebugPrintAt(screen, "HOTKEYS", x+16, y+10)
	for i, hk := range hotkeyHelp {
		ly := y + 34 + i*lineHeight*3/2
		ebitenutil.DebugPrintAt(screen, hk.description, x+16, ly)
		ebitenutil.DebugPrintAt(screen, hk.key, x+pw-16-len(hk.key)*charWidth, ly)
	}
}
