package masonry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRowSpan(t *testing.T) {
	tests := []struct {
		name             string
		height, row, gap float64
		want             int
	}{
		{"typical", 100, 10, 16, 5},
		{"exact fit", 36, 10, 16, 2},
		{"zero height", 0, 10, 16, 1},
		{"negative height", -250, 10, 16, 1},
		{"no gap", 95, 10, 0, 10},
		{"degenerate unit", 300, 0, 0, 1},
		{"negative unit", 300, -10, 5, 1},
		{"nan height", math.NaN(), 10, 16, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRowSpan(tt.height, tt.row, tt.gap))
		})
	}
}

func TestComputeRowSpanMonotonic(t *testing.T) {
	grids := [][2]float64{{10, 16}, {1, 0}, {8, 4}, {20, 1.5}, {0.5, 0.25}}
	for _, g := range grids {
		prev := 0
		for h := -50.0; h <= 3000; h += 0.75 {
			span := ComputeRowSpan(h, g[0], g[1])
			require.GreaterOrEqual(t, span, 1, "row=%v gap=%v h=%v", g[0], g[1], h)
			require.GreaterOrEqual(t, span, prev, "row=%v gap=%v h=%v", g[0], g[1], h)
			prev = span
		}
	}
}

func TestColumnMeasurer(t *testing.T) {
	m := DefaultMeasurer()

	assert.Equal(t, 1, m.Columns(400))
	assert.Equal(t, 2, m.Columns(640))
	assert.Equal(t, 2, m.Columns(1023))
	assert.Equal(t, 3, m.Columns(1920))

	assert.InDelta(t, 368, m.ColumnWidth(400), 1e-9)
	assert.InDelta(t, 376, m.ColumnWidth(800), 1e-9)
	// capped at the container max width
	assert.InDelta(t, m.ColumnWidth(1280), m.ColumnWidth(2560), 1e-9)

	assert.InDelta(t, 736, m.RenderedHeight(Viewport{Width: 400}, 1000, 2000), 1e-9)
	assert.Zero(t, m.RenderedHeight(Viewport{Width: 400}, 0, 2000))
	assert.Zero(t, m.RenderedHeight(Viewport{Width: 10}, 1000, 2000))
}

func TestEngineWithoutContainerIsNoop(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetCells([]string{"1"})
	e.MarkLoaded("1", 100, 100)

	assert.False(t, e.RecomputeCell("1"))
	assert.Zero(t, e.RecomputeAll())
	assert.Zero(t, e.Resize(Viewport{Width: 800}))

	c, ok := e.Cell("1")
	require.True(t, ok)
	assert.Equal(t, 1, c.Span)
}

func TestEngineSkipsUnloadedCells(t *testing.T) {
	e := NewEngine(&Container{RowHeight: 10, RowGap: 16, Viewport: Viewport{Width: 400}}, nil)
	e.SetCells([]string{"a", "b"})

	assert.False(t, e.RecomputeCell("a"))
	assert.False(t, e.RecomputeCell("missing"))

	require.True(t, e.MarkLoaded("a", 1000, 2000))
	require.True(t, e.RecomputeCell("a"))

	a, _ := e.Cell("a")
	assert.Equal(t, 29, a.Span)
	assert.InDelta(t, 736, a.Height, 1e-9)
}

func TestEngineLoadedWithZeroSizeKeepsSpan(t *testing.T) {
	e := NewEngine(&Container{RowHeight: 10, RowGap: 16, Viewport: Viewport{Width: 400}}, nil)
	e.SetCells([]string{"a"})
	e.MarkLoaded("a", 0, 0)

	assert.False(t, e.RecomputeCell("a"))
	a, _ := e.Cell("a")
	assert.Equal(t, 1, a.Span)
}

func TestResizeRecomputesOnlyLoadedCells(t *testing.T) {
	e := NewEngine(&Container{RowHeight: 10, RowGap: 16, Viewport: Viewport{Width: 400}}, nil)
	e.SetCells([]string{"a", "b", "c"})
	e.MarkLoaded("a", 1000, 2000)
	e.MarkLoaded("c", 1000, 1000)
	e.RecomputeAll()

	a, _ := e.Cell("a")
	b, _ := e.Cell("b")
	require.Equal(t, 29, a.Span)

	assert.Equal(t, 2, e.Resize(Viewport{Width: 800}))
	assert.Equal(t, 30, a.Span)
	assert.Equal(t, &Cell{Key: "b", Span: 1}, b)
}

func TestSetCellsKeepsOrderAndState(t *testing.T) {
	e := NewEngine(&Container{RowHeight: 10, RowGap: 16, Viewport: Viewport{Width: 400}}, nil)
	e.SetCells([]string{"a", "b"})
	e.MarkLoaded("b", 1000, 2000)
	e.RecomputeCell("b")

	e.SetCells([]string{"c", "b"})
	cells := e.Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, "c", cells[0].Key)
	assert.Equal(t, "b", cells[1].Key)
	assert.Equal(t, 29, cells[1].Span)
	_, ok := e.Cell("a")
	assert.False(t, ok)
}
