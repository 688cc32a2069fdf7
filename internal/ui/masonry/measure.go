package masonry

// Measurer turns a cell's natural image size into its rendered height for a viewport.
// A result of zero or less means "not measurable yet".
type Measurer interface {
	RenderedHeight(vp Viewport, naturalWidth, naturalHeight float64) float64
}

// ColumnMeasurer sizes images to the width of a responsive column layout.
type ColumnMeasurer struct {
	// Breakpoints are ascending min-widths; the column count is 1 plus the number reached.
	Breakpoints []float64
	MaxWidth    float64
	Padding     float64
	ColumnGap   float64
}

// DefaultMeasurer mirrors the gallery CSS: 1, 2 or 3 columns at 640/1024px inside a
// 1152px wide container with 16px gaps.
func DefaultMeasurer() ColumnMeasurer {
	return ColumnMeasurer{
		Breakpoints: []float64{640, 1024},
		MaxWidth:    1152,
		Padding:     16,
		ColumnGap:   16,
	}
}

// Columns returns the column count at the given viewport width.
func (m ColumnMeasurer) Columns(width float64) int {
	cols := 1
	for _, bp := range m.Breakpoints {
		if width >= bp {
			cols++
		}
	}
	return cols
}

// ColumnWidth returns the rendered width of one column.
func (m ColumnMeasurer) ColumnWidth(width float64) float64 {
	inner := width
	if m.MaxWidth > 0 && inner > m.MaxWidth {
		inner = m.MaxWidth
	}
	inner -= 2 * m.Padding
	cols := m.Columns(width)
	inner -= float64(cols-1) * m.ColumnGap
	if inner <= 0 {
		return 0
	}
	return inner / float64(cols)
}

func (m ColumnMeasurer) RenderedHeight(vp Viewport, naturalWidth, naturalHeight float64) float64 {
	if naturalWidth <= 0 || naturalHeight <= 0 {
		return 0
	}
	return m.ColumnWidth(vp.Width) * naturalHeight / naturalWidth
}
