// Package masonry computes grid row-spans so variable height cells pack without gaps.
package masonry

import "math"

// Viewport is the browser window size in CSS pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Container describes the CSS grid the cells live in.
type Container struct {
	RowHeight float64
	RowGap    float64
	Viewport  Viewport
}

// ComputeRowSpan returns how many grid rows a cell of the given height occupies.
// The result is always at least 1.
func ComputeRowSpan(cellHeightPx, rowHeightPx, rowGapPx float64) int {
	unit := rowHeightPx + rowGapPx
	if unit <= 0 || math.IsNaN(cellHeightPx) || math.IsNaN(unit) {
		return 1
	}
	span := math.Ceil((cellHeightPx + rowGapPx) / unit)
	if span < 1 || math.IsNaN(span) {
		return 1
	}
	if span > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(span)
}

// Cell is the layout state of one rendered item.
type Cell struct {
	Key           string  `json:"key"`
	Loaded        bool    `json:"loaded"`
	NaturalWidth  float64 `json:"-"`
	NaturalHeight float64 `json:"-"`
	Height        float64 `json:"height"`
	Span          int     `json:"span"`
}

// Engine keeps the cells of one grid, in item order.
// A nil container turns every operation into a no-op.
type Engine struct {
	container *Container
	measurer  Measurer
	cells     []*Cell
	index     map[string]*Cell
}

// NewEngine creates an engine. container may be nil until the grid mounts.
func NewEngine(container *Container, measurer Measurer) *Engine {
	if measurer == nil {
		measurer = DefaultMeasurer()
	}
	return &Engine{
		container: container,
		measurer:  measurer,
		index:     make(map[string]*Cell),
	}
}

// Attach sets the grid container once it exists.
func (e *Engine) Attach(container *Container) {
	e.container = container
}

// Container returns the attached container, or nil.
func (e *Engine) Container() *Container {
	return e.container
}

// SetCells replaces the cell list, keeping layout state for keys that survive.
func (e *Engine) SetCells(keys []string) {
	cells := make([]*Cell, 0, len(keys))
	index := make(map[string]*Cell, len(keys))
	for _, key := range keys {
		c, ok := e.index[key]
		if !ok {
			c = &Cell{Key: key, Span: 1}
		}
		cells = append(cells, c)
		index[key] = c
	}
	e.cells = cells
	e.index = index
}

// Cell returns the cell for key.
func (e *Engine) Cell(key string) (*Cell, bool) {
	c, ok := e.index[key]
	return c, ok
}

// Cells returns the cells in grid order.
func (e *Engine) Cells() []*Cell {
	return e.cells
}

// MarkLoaded records that the cell's image decoded with the given natural size.
func (e *Engine) MarkLoaded(key string, naturalWidth, naturalHeight float64) bool {
	c, ok := e.index[key]
	if !ok {
		return false
	}
	c.Loaded = true
	c.NaturalWidth = naturalWidth
	c.NaturalHeight = naturalHeight
	return true
}

// RecomputeCell measures one cell and writes its span. Cells whose image has not
// produced a rendered height yet keep their current span.
func (e *Engine) RecomputeCell(key string) bool {
	if e.container == nil {
		return false
	}
	c, ok := e.index[key]
	if !ok || !c.Loaded {
		return false
	}
	h := e.measurer.RenderedHeight(e.container.Viewport, c.NaturalWidth, c.NaturalHeight)
	if h <= 0 {
		return false
	}
	c.Height = h
	c.Span = ComputeRowSpan(h, e.container.RowHeight, e.container.RowGap)
	return true
}

// RecomputeAll recomputes every cell and returns how many spans were written.
func (e *Engine) RecomputeAll() int {
	if e.container == nil {
		return 0
	}
	n := 0
	for _, c := range e.cells {
		if e.RecomputeCell(c.Key) {
			n++
		}
	}
	return n
}

// Resize applies a new viewport and recomputes all cells.
func (e *Engine) Resize(vp Viewport) int {
	if e.container == nil {
		return 0
	}
	e.container.Viewport = vp
	return e.RecomputeAll()
}
