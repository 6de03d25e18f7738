package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/physics2d/internal/core/geometry/vector"
)

// Terminal rasterizes snapshots onto a tcell screen. The top row is a status
// line; the rest shows the world rectangle [min, max] with y pointing up.
type Terminal struct {
	screen   tcell.Screen
	min, max vector.Vector
	status   tcell.Style
}

func NewTerminal(screen tcell.Screen, min, max vector.Vector) *Terminal {
	return &Terminal{
		screen: screen,
		min:    min,
		max:    max,
		status: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// SetBounds changes the visible world rectangle.
func (t *Terminal) SetBounds(min, max vector.Vector) {
	t.min, t.max = min, max
}

func (t *Terminal) Render(snap Snapshot) error {
	t.screen.Clear()
	w, h := t.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		return nil
	}
	sx := (t.max.X - t.min.X) / float64(w)
	sy := (t.max.Y - t.min.Y) / float64(rows)
	if sx <= 0 || sy <= 0 {
		return fmt.Errorf("render: empty world rectangle %v..%v", t.min, t.max)
	}

	for _, shape := range snap.Shapes {
		poly := shape.Polygon()
		if len(poly) < 3 {
			continue
		}
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(
			int32(shape.Color[0]), int32(shape.Color[1]), int32(shape.Color[2])))

		lo, hi := poly.Bounds()
		c0 := clamp(int(math.Floor((lo.X-t.min.X)/sx)), 0, w-1)
		c1 := clamp(int(math.Ceil((hi.X-t.min.X)/sx)), 0, w-1)
		// rows count down from the top of the world
		r0 := clamp(rows-1-int(math.Ceil((hi.Y-t.min.Y)/sy)), 0, rows-1)
		r1 := clamp(rows-1-int(math.Floor((lo.Y-t.min.Y)/sy)), 0, rows-1)

		for r := r0; r <= r1; r++ {
			y := t.min.Y + (float64(rows-1-r)+0.5)*sy
			for c := c0; c <= c1; c++ {
				x := t.min.X + (float64(c)+0.5)*sx
				if poly.Contains(vector.New(x, y)) {
					t.screen.SetContent(c, r+1, ' ', nil, style)
				}
			}
		}
	}

	line := fmt.Sprintf(" %s  tick %d  t=%.1fs  level %d  score %d  %s ",
		snap.Scene, snap.Tick, snap.Elapsed, snap.Level, snap.Score, snap.State)
	col := 0
	for _, r := range line {
		if col >= w {
			break
		}
		t.screen.SetContent(col, 0, r, nil, t.status)
		col++
	}

	t.screen.Show()
	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
