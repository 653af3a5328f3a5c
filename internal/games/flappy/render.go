package flappy

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GroundChar    = '▒'
)

// viewport maps world units onto screen cells. The logical window is
// stretched over the whole screen.
type viewport struct {
	left, top    float64
	cellW, cellH float64
	cols, rows   int
}

func newViewport(camera core.Vec2, width, height float64, cols, rows int) viewport {
	return viewport{
		left:  camera.X - width/2,
		top:   camera.Y + height/2,
		cellW: width / float64(cols),
		cellH: height / float64(rows),
		cols:  cols,
		rows:  rows,
	}
}

// cell returns the screen cell containing a world point.
func (v viewport) cell(p core.Vec2) (x, y int) {
	return int(math.Floor((p.X - v.left) / v.cellW)), int(math.Floor((v.top - p.Y) / v.cellH))
}

// rect returns the cells covered by a world box, clipped to the screen.
func (v viewport) rect(b core.AABB) (core.Rect, bool) {
	x0 := int(math.Floor((b.Min.X - v.left) / v.cellW))
	x1 := int(math.Ceil((b.Max.X - v.left) / v.cellW))
	y0 := int(math.Floor((v.top - b.Max.Y) / v.cellH))
	y1 := int(math.Ceil((v.top - b.Min.Y) / v.cellH))

	x0, x1 = core.Clamp(x0, 0, v.cols), core.Clamp(x1, 0, v.cols)
	y0, y1 = core.Clamp(y0, 0, v.rows), core.Clamp(y1, 0, v.rows)
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

// Render draws a snapshot onto dst.
func Render(dst *core.Screen, s Snapshot, width, height float64) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(s.Camera, width, height, dst.Width(), dst.Height())

	for _, p := range s.Pipes {
		drawPipe(dst, v, p)
	}
	for _, f := range s.Floor {
		if r, ok := v.rect(f); ok {
			dst.DrawRect(r, GroundChar, core.ColorOrange)
		}
	}
	drawPlayer(dst, v, s.Player)

	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d  Best: %d ", s.Score.Current, s.Score.Best), core.ColorWhite)

	switch s.State {
	case StateIntro:
		hint := "Press SPACE to start"
		if !s.Debounced {
			hint = "Get ready..."
		}
		drawCenteredMessage(dst, "FLAPPY", hint)
	case StateGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  SPACE to retry", s.Score.Current, s.Score.Best))
	}
}

// drawPipe fills the pipe body and caps the end that faces the gap.
func drawPipe(dst *core.Screen, v viewport, p PipeView) {
	r, ok := v.rect(p.Box)
	if !ok {
		return
	}
	dst.DrawRect(r, PipeChar, core.ColorGreen)

	if p.Kind == PipeTop {
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, PipeCapTop, core.ColorBrightGreen)
	} else {
		dst.DrawHLine(r.X, r.Y, r.W, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawPlayer draws the hitbox cells and a nose that follows the pitch.
func drawPlayer(dst *core.Screen, v viewport, p PlayerView) {
	color := core.ColorBrightYellow
	if !p.Collides {
		color = core.ColorRed
	}

	if r, ok := v.rect(p.Hitbox.Bounds()); ok {
		dst.DrawRect(r, PlayerChar, color)
	}

	nose := core.V(p.Hitbox.Bounds().Width()/2, 0).Rotate(p.Transform.Rotation)
	x, y := v.cell(p.Transform.Position.Add(nose))
	dst.SetColored(x, y, noseRune(p.Transform.Rotation), color)
}

func noseRune(rotation float64) rune {
	switch {
	case rotation > 0.25:
		return '↗'
	case rotation < -0.25:
		return '↘'
	default:
		return '→'
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(runewidth.StringWidth(title), runewidth.StringWidth(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawText(box.X+(boxW-runewidth.StringWidth(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-runewidth.StringWidth(subtitle))/2, box.Y+3, subtitle)
}
