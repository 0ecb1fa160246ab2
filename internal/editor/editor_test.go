package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
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

// recorder captures every live tick and commit batch an editor emits.
type recorder struct {
	liveTicks []map[uuid.UUID]Rect
	commits   [][]CommitRecord
}

func (r *recorder) live(m map[uuid.UUID]Rect) { r.liveTicks = append(r.liveTicks, m) }
func (r *recorder) commit(b []CommitRecord)   { r.commits = append(r.commits, b) }

func newTestEditor(t *testing.T, zones map[uuid.UUID]Rect) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := New(testConfig(), rec.live, rec.commit)
	e.Load(zones)
	return e, rec
}

func TestMoveDragCommitsOnPointerUp(t *testing.T) {
	zoneA := uuid.New()
	e, rec := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	require.True(t, e.PointerDown(zoneA, ModeMove, 50, 50))
	e.PointerMove(130, 90)

	assert.Equal(t, Rect{X: 80, Y: 40, Width: 200, Height: 150}, e.Live()[zoneA])
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, e.Committed()[zoneA], "committed unchanged until pointer-up")

	e.PointerUp()
	assert.Equal(t, Rect{X: 80, Y: 40, Width: 200, Height: 150}, e.Committed()[zoneA])
	require.Len(t, rec.commits, 1)
	require.Len(t, rec.commits[0], 1)
	assert.Equal(t, zoneA, rec.commits[0][0].ZoneID)
	assert.Equal(t, Rect{X: 80, Y: 40, Width: 200, Height: 150}, rec.commits[0][0].Rect)

	_, dragging := e.Dragging()
	assert.False(t, dragging)
}

func TestMoveIntoNeighborIsRejected(t *testing.T) {
	zoneA := uuid.New()
	zoneB := uuid.New()
	e, rec := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
		zoneB: {X: 300, Y: 0, Width: 200, Height: 150},
	})

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))

	// Landing on top of B produces no valid geometry; the tick is dropped.
	e.PointerMove(300, 0)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, e.Live()[zoneA])
	assert.Empty(t, rec.liveTicks)

	// A later tick to free space succeeds, and pointer-up commits that one.
	e.PointerMove(80, 0)
	assert.Equal(t, Rect{X: 80, Y: 0, Width: 200, Height: 150}, e.Live()[zoneA])
	require.Len(t, rec.liveTicks, 1)

	e.PointerUp()
	assert.Equal(t, Rect{X: 80, Y: 0, Width: 200, Height: 150}, e.Committed()[zoneA])
	assert.Equal(t, Rect{X: 300, Y: 0, Width: 200, Height: 150}, e.Committed()[zoneB])
	assert.False(t, e.Committed()[zoneA].Overlaps(e.Committed()[zoneB]))
}

func TestNorthWestResizeSnapsAndKeepsCornerFixed(t *testing.T) {
	zoneA := uuid.New()
	start := Rect{X: 100, Y: 100, Width: 200, Height: 150}
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{zoneA: start})

	require.True(t, e.PointerDown(zoneA, ModeResizeNW, 100, 100))
	e.PointerMove(80, 80) // drag the NW handle up-left by 20,20

	got := e.Live()[zoneA]
	assert.Equal(t, Rect{X: 80, Y: 80, Width: 220, Height: 170}, got)
	assert.Equal(t, start.Right(), got.Right(), "SE corner must stay fixed")
	assert.Equal(t, start.Bottom(), got.Bottom(), "SE corner must stay fixed")

	e.PointerUp()
	assert.Equal(t, got, e.Committed()[zoneA])
}

func TestMoveKeepsOffGridDimensions(t *testing.T) {
	zoneA := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 210, Height: 130},
	})

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	e.PointerMove(47, 33)
	assert.Equal(t, Rect{X: 40, Y: 40, Width: 210, Height: 130}, e.Live()[zoneA], "snapped move must not resize")

	e.PointerUp()
	assert.Equal(t, Rect{X: 40, Y: 40, Width: 210, Height: 130}, e.Committed()[zoneA])
}

func TestSouthResizeIgnoresNeighborInSameColumn(t *testing.T) {
	zoneA := uuid.New()
	zoneB := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
		zoneB: {X: 0, Y: 200, Width: 200, Height: 150},
	})

	// Growing A southwards stops at B's top edge and leaves the width alone.
	require.True(t, e.PointerDown(zoneA, ModeResizeS, 0, 150))
	e.PointerMove(0, 250)

	got := e.Live()[zoneA]
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 200}, got)
	assert.Equal(t, 200.0, got.Width, "south resize must not change width")
	assert.False(t, got.Overlaps(e.Committed()[zoneB]))
}

func TestResizeRespectsMinimumSize(t *testing.T) {
	zoneA := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 100, Y: 100, Width: 200, Height: 150},
	})

	require.True(t, e.PointerDown(zoneA, ModeResizeSE, 300, 250))
	e.PointerMove(0, 0) // shrink far below the floor

	got := e.Live()[zoneA]
	assert.Equal(t, 100.0, got.Width)
	assert.Equal(t, 80.0, got.Height)
}

func TestResizeClampsAgainstNeighborAndCanvas(t *testing.T) {
	zoneA := uuid.New()
	zoneB := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
		zoneB: {X: 300, Y: 0, Width: 200, Height: 150},
	})

	// Growing A eastwards stops at B's left edge; shared edges are legal.
	require.True(t, e.PointerDown(zoneA, ModeResizeE, 200, 0))
	e.PointerMove(800, 0)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 300, Height: 150}, e.Live()[zoneA])
	e.PointerUp()

	// Growing B southwards with nothing below stops at the canvas edge.
	require.True(t, e.PointerDown(zoneB, ModeResizeS, 0, 150))
	e.PointerMove(0, 5000)
	got := e.Live()[zoneB]
	assert.Equal(t, 800.0, got.Bottom())
}

func TestMoveClampsToCanvas(t *testing.T) {
	zoneA := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	e.PointerMove(5000, 5000)

	got := e.Live()[zoneA]
	assert.Equal(t, Rect{X: 1000, Y: 650, Width: 200, Height: 150}, got)
	assert.LessOrEqual(t, got.Right(), 1200.0)
	assert.LessOrEqual(t, got.Bottom(), 800.0)
}

func TestSnapToggle(t *testing.T) {
	zoneA := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	e.SetSnap(false)
	assert.False(t, e.Snap())

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	e.PointerMove(33, 17)
	assert.Equal(t, Rect{X: 33, Y: 17, Width: 200, Height: 150}, e.Live()[zoneA])
	e.PointerUp()

	e.SetSnap(true)
	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	e.PointerMove(11, 7)
	assert.Equal(t, Rect{X: 40, Y: 20, Width: 200, Height: 150}, e.Live()[zoneA])
	e.PointerUp()
}

func TestPointerDownRejectsSecondDragAndUnknownZone(t *testing.T) {
	zoneA := uuid.New()
	e, _ := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	assert.False(t, e.PointerDown(uuid.New(), ModeMove, 0, 0), "unknown zone")

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	assert.False(t, e.PointerDown(zoneA, ModeResizeE, 0, 0), "drag already active")

	id, dragging := e.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, zoneA, id)
}

func TestPointerLeaveCommitsLikePointerUp(t *testing.T) {
	zoneA := uuid.New()
	e, rec := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	e.PointerMove(100, 100)
	e.PointerLeave()

	assert.Equal(t, Rect{X: 100, Y: 100, Width: 200, Height: 150}, e.Committed()[zoneA])
	require.Len(t, rec.commits, 1)

	_, dragging := e.Dragging()
	assert.False(t, dragging)
}

func TestPointerEventsWithoutDragAreNoOps(t *testing.T) {
	zoneA := uuid.New()
	e, rec := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	e.PointerMove(500, 500)
	e.PointerUp()
	e.PointerLeave()

	assert.Empty(t, rec.liveTicks)
	assert.Empty(t, rec.commits)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, e.Committed()[zoneA])
}

func TestEnsureZonePlacesWithoutOverlap(t *testing.T) {
	e, rec := newTestEditor(t, nil)

	first := uuid.New()
	second := uuid.New()

	r1 := e.EnsureZone(first)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, r1)

	r2 := e.EnsureZone(second)
	assert.Equal(t, Rect{X: 220, Y: 0, Width: 200, Height: 150}, r2)
	assert.False(t, r1.Overlaps(r2))

	// Ensuring an existing zone returns its geometry without committing again.
	assert.Equal(t, r1, e.EnsureZone(first))
	assert.Len(t, rec.commits, 2)
}

func TestRemoveZoneAbandonsActiveDrag(t *testing.T) {
	zoneA := uuid.New()
	e, rec := newTestEditor(t, map[uuid.UUID]Rect{
		zoneA: {X: 0, Y: 0, Width: 200, Height: 150},
	})

	require.True(t, e.PointerDown(zoneA, ModeMove, 0, 0))
	e.PointerMove(100, 0)
	e.RemoveZone(zoneA)

	assert.NotContains(t, e.Live(), zoneA)
	assert.NotContains(t, e.Committed(), zoneA)
	assert.Empty(t, rec.commits, "removal must not commit the abandoned drag")

	e.PointerUp()
	assert.Empty(t, rec.commits)
}

func TestResetLayoutIsDeterministicAndAtomic(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	scattered := map[uuid.UUID]Rect{}
	for i, id := range ids {
		scattered[id] = Rect{X: float64(i * 37), Y: float64(i * 53), Width: 200, Height: 150}
	}

	e, rec := newTestEditor(t, scattered)
	e.ResetLayout()

	require.Len(t, rec.commits, 1, "reset commits a single atomic batch")
	assert.Len(t, rec.commits[0], len(ids))

	first := e.Committed()
	for idA, ra := range first {
		assert.GreaterOrEqual(t, ra.X, 0.0)
		assert.GreaterOrEqual(t, ra.Y, 0.0)
		assert.LessOrEqual(t, ra.Right(), 1200.0)
		assert.LessOrEqual(t, ra.Bottom(), 800.0)
		for idB, rb := range first {
			if idA == idB {
				continue
			}
			assert.False(t, ra.Overlaps(rb), "reset layout must not overlap")
		}
	}

	// Same ids always land in the same cells.
	e.ResetLayout()
	assert.Equal(t, first, e.Committed())

	// Live state follows committed state after reset.
	assert.Equal(t, e.Committed(), e.Live())
}

func TestArrangeRowMajor(t *testing.T) {
	cfg := testConfig()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	arranged := Arrange(ids, cfg)
	require.Len(t, arranged, len(ids))

	// 1200/220 fits 5 per row, so the 6th wraps to the second row.
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, arranged[ids[0]])
	assert.Equal(t, Rect{X: 220, Y: 0, Width: 200, Height: 150}, arranged[ids[1]])
	assert.Equal(t, Rect{X: 880, Y: 0, Width: 200, Height: 150}, arranged[ids[4]])
	assert.Equal(t, Rect{X: 0, Y: 170, Width: 200, Height: 150}, arranged[ids[5]])
}

func TestFirstFreeSlotSkipsOccupiedCells(t *testing.T) {
	cfg := testConfig()

	got := FirstFreeSlot(nil, cfg)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, got)

	existing := []Rect{
		{X: 0, Y: 0, Width: 200, Height: 150},
		{X: 220, Y: 0, Width: 200, Height: 150},
	}
	got = FirstFreeSlot(existing, cfg)
	assert.Equal(t, Rect{X: 440, Y: 0, Width: 200, Height: 150}, got)
	for _, r := range existing {
		assert.False(t, got.Overlaps(r))
	}
}

func TestFirstFreeSlotFullCanvasFallsBackToOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.CanvasWidth = 220
	cfg.CanvasHeight = 160 // exactly one cell fits

	existing := []Rect{{X: 0, Y: 0, Width: 200, Height: 150}}
	got := FirstFreeSlot(existing, cfg)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 150}, got)
}
