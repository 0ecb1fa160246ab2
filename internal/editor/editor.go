package editor

import (
	"sort"

	"github.com/google/uuid"
)

// Config carries the canvas and grid settings. The editor never reads
// ambient state; everything it needs arrives here.
type Config struct {
	CanvasWidth  float64
	CanvasHeight float64
	GridSize     float64
	MinWidth     float64
	MinHeight    float64
	SnapToGrid   bool
	// ZoneWidth and ZoneHeight size newly placed and reset zones.
	ZoneWidth  float64
	ZoneHeight float64
	// Spacing separates zones in the default row-major arrangement.
	Spacing float64
}

// DefaultConfig returns the canvas settings the dashboard ships with.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  1200,
		CanvasHeight: 800,
		GridSize:     20,
		MinWidth:     100,
		MinHeight:    80,
		SnapToGrid:   true,
		ZoneWidth:    200,
		ZoneHeight:   150,
		Spacing:      20,
	}
}

// CommitRecord is one zone's geometry at the moment a drag ended. Position
// and dimensions always travel together as a single atomic record.
type CommitRecord struct {
	ZoneID uuid.UUID
	Rect   Rect
}

// LiveListener receives the full live geometry map on every tick that
// produces a valid candidate, for immediate re-render.
type LiveListener func(live map[uuid.UUID]Rect)

// CommitSink receives committed records when a drag ends or the layout is
// reset. Persisting them is the caller's problem; the editor never blocks
// on it.
type CommitSink func(records []CommitRecord)

type dragState struct {
	zoneID uuid.UUID
	mode   DragMode
	ref    Rect // geometry at pointer-down, the interaction's reference frame
	startX float64
	startY float64
}

// Editor owns the live and committed geometry for every zone on the canvas
// and runs the idle -> dragging -> idle interaction state machine. It is
// driven synchronously by pointer events; only one zone can be dragged at a
// time. All methods must be called from a single goroutine.
type Editor struct {
	cfg       Config
	live      map[uuid.UUID]Rect
	committed map[uuid.UUID]Rect
	drag      *dragState
	onLive    LiveListener
	onCommit  CommitSink
}

// New creates an editor over an empty canvas.
func New(cfg Config, onLive LiveListener, onCommit CommitSink) *Editor {
	return &Editor{
		cfg:       cfg,
		live:      make(map[uuid.UUID]Rect),
		committed: make(map[uuid.UUID]Rect),
		onLive:    onLive,
		onCommit:  onCommit,
	}
}

// Load replaces both the live and committed state with persisted geometry.
func (e *Editor) Load(geometry map[uuid.UUID]Rect) {
	e.live = make(map[uuid.UUID]Rect, len(geometry))
	e.committed = make(map[uuid.UUID]Rect, len(geometry))
	for id, r := range geometry {
		e.live[id] = r
		e.committed[id] = r
	}
	e.drag = nil
}

// SetSnap toggles grid snapping for subsequent pointer-moves.
func (e *Editor) SetSnap(on bool) { e.cfg.SnapToGrid = on }

// Snap reports whether grid snapping is active.
func (e *Editor) Snap() bool { return e.cfg.SnapToGrid }

// Live returns a copy of the in-progress geometry map.
func (e *Editor) Live() map[uuid.UUID]Rect { return copyRects(e.live) }

// Committed returns a copy of the last committed geometry map.
func (e *Editor) Committed() map[uuid.UUID]Rect { return copyRects(e.committed) }

// Dragging reports the zone currently being dragged, if any.
func (e *Editor) Dragging() (uuid.UUID, bool) {
	if e.drag == nil {
		return uuid.Nil, false
	}
	return e.drag.zoneID, true
}

// EnsureZone gives a zone a default, non-overlapping grid position if it has
// none yet, committing the new entry. Returns the zone's committed geometry.
func (e *Editor) EnsureZone(zoneID uuid.UUID) Rect {
	if r, ok := e.committed[zoneID]; ok {
		return r
	}
	r := e.firstFreeSlot()
	e.committed[zoneID] = r
	e.live[zoneID] = r
	if e.onCommit != nil {
		e.onCommit([]CommitRecord{{ZoneID: zoneID, Rect: r}})
	}
	return r
}

// RemoveZone drops a zone's geometry from both maps. A drag in progress for
// that zone is abandoned without committing.
func (e *Editor) RemoveZone(zoneID uuid.UUID) {
	if e.drag != nil && e.drag.zoneID == zoneID {
		e.drag = nil
	}
	delete(e.live, zoneID)
	delete(e.committed, zoneID)
}

// PointerDown starts a drag over a zone or one of its resize handles. It is
// ignored when another drag is already active or the zone is unknown.
func (e *Editor) PointerDown(zoneID uuid.UUID, mode DragMode, x, y float64) bool {
	if e.drag != nil {
		return false
	}
	ref, ok := e.live[zoneID]
	if !ok {
		return false
	}
	e.drag = &dragState{zoneID: zoneID, mode: mode, ref: ref, startX: x, startY: y}
	return true
}

// PointerMove advances the active drag. The resulting geometry becomes the
// new live value; a tick that cannot produce a valid non-colliding rectangle
// leaves the live geometry untouched. No error is ever raised here.
func (e *Editor) PointerMove(x, y float64) {
	d := e.drag
	if d == nil {
		return
	}
	cand, ok := e.resolve(d, x-d.startX, y-d.startY)
	if !ok {
		return
	}
	next := copyRects(e.live)
	next[d.zoneID] = cand
	e.live = next
	if e.onLive != nil {
		e.onLive(copyRects(e.live))
	}
}

// PointerUp ends the drag and commits the dragged zone's live geometry. This
// is the only transition from live to committed state. The pointer may be
// anywhere, including outside the canvas; the last valid live geometry wins.
func (e *Editor) PointerUp() {
	d := e.drag
	if d == nil {
		return
	}
	e.drag = nil
	r := e.live[d.zoneID]
	e.committed[d.zoneID] = r
	if e.onCommit != nil {
		e.onCommit([]CommitRecord{{ZoneID: d.zoneID, Rect: r}})
	}
}

// PointerLeave ends the drag exactly like PointerUp; leaving the canvas must
// not lose the user's last valid geometry.
func (e *Editor) PointerLeave() { e.PointerUp() }

// ResetLayout rearranges every zone into a deterministic row-major grid and
// commits all of them as one atomic batch. Zones are ordered by id so the
// arrangement is stable across calls.
func (e *Editor) ResetLayout() {
	ids := make([]uuid.UUID, 0, len(e.committed))
	for id := range e.committed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	arranged := Arrange(ids, e.cfg)
	records := make([]CommitRecord, 0, len(ids))
	for _, id := range ids {
		r := arranged[id]
		e.committed[id] = r
		e.live[id] = r
		records = append(records, CommitRecord{ZoneID: id, Rect: r})
	}
	e.drag = nil
	if e.onLive != nil {
		e.onLive(copyRects(e.live))
	}
	if e.onCommit != nil && len(records) > 0 {
		e.onCommit(records)
	}
}

// resolve turns a pointer delta into the candidate geometry for the dragged
// zone, applying snapping, collision avoidance and canvas clamping. ok is
// false when no valid geometry exists for this tick.
func (e *Editor) resolve(d *dragState, dx, dy float64) (Rect, bool) {
	cand := applyDelta[d.mode](d.ref, dx, dy)

	if e.cfg.SnapToGrid {
		cand = snapForMode(cand, d.mode, e.cfg.GridSize)
	}
	cand = cand.WithMinSize(e.cfg.MinWidth, e.cfg.MinHeight)

	if d.mode.IsResize() {
		// Clamp each axis independently against its nearest obstruction
		// (committed neighbors to the right / below) and the canvas edge.
		maxW, maxH := e.maxDimensionsAt(d.zoneID, d.ref, cand)
		if cand.Width > maxW {
			cand.Width = maxW
		}
		if cand.Height > maxH {
			cand.Height = maxH
		}
		cand = cand.WithMinSize(e.cfg.MinWidth, e.cfg.MinHeight)
	}

	cand = cand.ClampedTo(e.cfg.CanvasWidth, e.cfg.CanvasHeight)

	if e.collides(d.zoneID, cand) {
		return Rect{}, false
	}
	return cand, true
}

// collides checks the candidate against every other zone's committed
// rectangle.
func (e *Editor) collides(zoneID uuid.UUID, cand Rect) bool {
	for id, other := range e.committed {
		if id == zoneID {
			continue
		}
		if cand.Overlaps(other) {
			return true
		}
	}
	return false
}

// maxDimensionsAt computes the largest width and height the zone may take at
// the candidate position: the distance to the nearest committed neighbor to
// the right (width) / below (height), or to the canvas edge, whichever is
// smaller. A neighbor obstructs an axis only when it sits in that edge's
// path before the drag grows the other axis, so the spans are taken from the
// reference rectangle; diagonal neighbors are left to the collision check.
func (e *Editor) maxDimensionsAt(zoneID uuid.UUID, ref, cand Rect) (maxW, maxH float64) {
	maxW = e.cfg.CanvasWidth - cand.X
	maxH = e.cfg.CanvasHeight - cand.Y
	for id, other := range e.committed {
		if id == zoneID {
			continue
		}
		// Neighbor to the right, level with the zone at pointer-down.
		if other.X >= cand.X && ref.Y < other.Bottom() && other.Y < ref.Bottom() {
			if w := other.X - cand.X; w < maxW {
				maxW = w
			}
		}
		// Neighbor below, within the zone's horizontal span at pointer-down.
		if other.Y >= cand.Y && ref.X < other.Right() && other.X < ref.Right() {
			if h := other.Y - cand.Y; h < maxH {
				maxH = h
			}
		}
	}
	return maxW, maxH
}

func (e *Editor) firstFreeSlot() Rect {
	existing := make([]Rect, 0, len(e.committed))
	for _, r := range e.committed {
		existing = append(existing, r)
	}
	return FirstFreeSlot(existing, e.cfg)
}

func copyRects(m map[uuid.UUID]Rect) map[uuid.UUID]Rect {
	out := make(map[uuid.UUID]Rect, len(m))
	for id, r := range m {
		out[id] = r
	}
	return out
}
