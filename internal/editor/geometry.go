package editor

import "math"

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Overlaps reports whether r and o overlap. Two rectangles overlap unless
// one is entirely to the left, right, above, or below the other. Shared
// edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right() <= o.X || o.Right() <= r.X {
		return false
	}
	if r.Bottom() <= o.Y || o.Bottom() <= r.Y {
		return false
	}
	return true
}

// snapForMode aligns a drag candidate to the grid without disturbing the
// edges the drag does not touch: a move snaps position only, keeping the
// dimensions exactly as they were, and a resize snaps the dragged edges and
// recomputes dimensions from the fixed opposite edges.
func snapForMode(r Rect, mode DragMode, unit float64) Rect {
	if unit <= 0 {
		return r
	}
	snap := func(v float64) float64 { return math.Round(v/unit) * unit }
	if mode == ModeMove {
		r.X = snap(r.X)
		r.Y = snap(r.Y)
		return r
	}
	right, bottom := r.Right(), r.Bottom()
	switch mode {
	case ModeResizeW, ModeResizeNW, ModeResizeSW:
		x := snap(r.X)
		r.Width = right - x
		r.X = x
	case ModeResizeE, ModeResizeNE, ModeResizeSE:
		r.Width = snap(right) - r.X
	}
	switch mode {
	case ModeResizeN, ModeResizeNE, ModeResizeNW:
		y := snap(r.Y)
		r.Height = bottom - y
		r.Y = y
	case ModeResizeS, ModeResizeSE, ModeResizeSW:
		r.Height = snap(bottom) - r.Y
	}
	return r
}

// WithMinSize raises width and height to the given floors. The floor applies
// independently of snapping.
func (r Rect) WithMinSize(minW, minH float64) Rect {
	if r.Width < minW {
		r.Width = minW
	}
	if r.Height < minH {
		r.Height = minH
	}
	return r
}

// ClampedTo fits the rectangle inside a canvas of the given size: x,y >= 0
// and x+width, y+height within the canvas. Rectangles larger than the canvas
// are shrunk to fit.
func (r Rect) ClampedTo(canvasW, canvasH float64) Rect {
	if r.Width > canvasW {
		r.Width = canvasW
	}
	if r.Height > canvasH {
		r.Height = canvasH
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.Right() > canvasW {
		r.X = canvasW - r.Width
	}
	if r.Bottom() > canvasH {
		r.Y = canvasH - r.Height
	}
	return r
}

// DragMode identifies what a drag manipulates: the whole rectangle (move) or
// one of the 8 edge/corner resize handles.
type DragMode int

const (
	ModeMove DragMode = iota
	ModeResizeN
	ModeResizeS
	ModeResizeE
	ModeResizeW
	ModeResizeNE
	ModeResizeNW
	ModeResizeSE
	ModeResizeSW
)

var dragModeNames = map[DragMode]string{
	ModeMove:     "move",
	ModeResizeN:  "resize-n",
	ModeResizeS:  "resize-s",
	ModeResizeE:  "resize-e",
	ModeResizeW:  "resize-w",
	ModeResizeNE: "resize-ne",
	ModeResizeNW: "resize-nw",
	ModeResizeSE: "resize-se",
	ModeResizeSW: "resize-sw",
}

func (m DragMode) String() string {
	if name, ok := dragModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseDragMode maps a wire name like "resize-ne" back to its DragMode.
func ParseDragMode(s string) (DragMode, bool) {
	for m, name := range dragModeNames {
		if name == s {
			return m, true
		}
	}
	return ModeMove, false
}

// IsResize reports whether the mode adjusts dimensions.
func (m DragMode) IsResize() bool { return m != ModeMove }

// applyDelta holds one pure geometry transform per drag mode. Each takes the
// reference rectangle captured at pointer-down plus the pointer delta and
// returns the raw candidate. When a north or west edge moves, the position
// moves by the same delta so the opposite corner stays fixed.
var applyDelta = map[DragMode]func(ref Rect, dx, dy float64) Rect{
	ModeMove: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
	},
	ModeResizeN: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X, Y: r.Y + dy, Width: r.Width, Height: r.Height - dy}
	},
	ModeResizeS: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height + dy}
	},
	ModeResizeE: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X, Y: r.Y, Width: r.Width + dx, Height: r.Height}
	},
	ModeResizeW: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X + dx, Y: r.Y, Width: r.Width - dx, Height: r.Height}
	},
	ModeResizeNE: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X, Y: r.Y + dy, Width: r.Width + dx, Height: r.Height - dy}
	},
	ModeResizeNW: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - dx, Height: r.Height - dy}
	},
	ModeResizeSE: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X, Y: r.Y, Width: r.Width + dx, Height: r.Height + dy}
	},
	ModeResizeSW: func(r Rect, dx, dy float64) Rect {
		return Rect{X: r.X + dx, Y: r.Y, Width: r.Width - dx, Height: r.Height + dy}
	},
}
