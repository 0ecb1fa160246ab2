package editor

import "github.com/google/uuid"

// Arrange lays zones out in a deterministic row-major grid with fixed
// spacing, in the order given. Used for the initial layout and for reset.
func Arrange(zoneIDs []uuid.UUID, cfg Config) map[uuid.UUID]Rect {
	cols := arrangeColumns(cfg)
	out := make(map[uuid.UUID]Rect, len(zoneIDs))
	for i, id := range zoneIDs {
		out[id] = arrangeCell(i, cols, cfg)
	}
	return out
}

// FirstFreeSlot walks the default row-major arrangement and returns the
// first cell that does not overlap any of the existing rectangles. When the
// canvas is full it falls back to the origin; the operator resolves the
// overlap by hand.
func FirstFreeSlot(existing []Rect, cfg Config) Rect {
	cols := arrangeColumns(cfg)
	for i := 0; ; i++ {
		r := arrangeCell(i, cols, cfg)
		if r.Bottom() > cfg.CanvasHeight {
			return Rect{X: 0, Y: 0, Width: cfg.ZoneWidth, Height: cfg.ZoneHeight}
		}
		free := true
		for _, other := range existing {
			if r.Overlaps(other) {
				free = false
				break
			}
		}
		if free {
			return r
		}
	}
}

// arrangeColumns is how many zones fit per row on the canvas.
func arrangeColumns(cfg Config) int {
	cols := int((cfg.CanvasWidth + cfg.Spacing) / (cfg.ZoneWidth + cfg.Spacing))
	if cols < 1 {
		cols = 1
	}
	return cols
}

// arrangeCell returns the rectangle for the i-th cell of the grid.
func arrangeCell(i, cols int, cfg Config) Rect {
	row := i / cols
	col := i % cols
	return Rect{
		X:      float64(col) * (cfg.ZoneWidth + cfg.Spacing),
		Y:      float64(row) * (cfg.ZoneHeight + cfg.Spacing),
		Width:  cfg.ZoneWidth,
		Height: cfg.ZoneHeight,
	}
}
