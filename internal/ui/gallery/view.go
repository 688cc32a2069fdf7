package gallery

import (
	"strconv"

	"github.com/Maxito7/heey_portfolio/internal/ui/hero"
	"github.com/Maxito7/heey_portfolio/internal/ui/masonry"
	"github.com/Maxito7/heey_portfolio/internal/ui/modal"
)

// CellView is one rendered grid cell. Placeholder cells have no item.
type CellView struct {
	Key          string  `json:"key"`
	ItemID       int     `json:"item_id,omitempty"`
	Title        string  `json:"title,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	HasVideo     bool    `json:"has_video,omitempty"`
	Loaded       bool    `json:"loaded"`
	Span         int     `json:"span"`
	Height       float64 `json:"height,omitempty"`
}

type GridView struct {
	Loading   bool       `json:"loading"`
	Sample    bool       `json:"sample"`
	RowHeight float64    `json:"row_height"`
	RowGap    float64    `json:"row_gap"`
	Cells     []CellView `json:"cells"`
}

// View is everything the browser needs to render the page.
type View struct {
	ID           string     `json:"id"`
	BodyOverflow string     `json:"body_overflow"`
	Grid         GridView   `json:"grid"`
	Modal        modal.View `json:"modal"`
	Hero         hero.View  `json:"hero"`
}

// View renders the grid. While loading it is a fixed set of skeleton cells.
func (g *Grid) View() GridView {
	v := GridView{
		Loading:   g.loading,
		Sample:    g.sample,
		RowHeight: g.opts.RowHeight,
		RowGap:    g.opts.RowGap,
	}
	if g.loading {
		v.Cells = make([]CellView, PlaceholderCount)
		for i := range v.Cells {
			h := PlaceholderHeight(i)
			v.Cells[i] = CellView{
				Key:    placeholderKey(i),
				Height: h,
				Span:   g.placeholderSpan(h),
			}
		}
		return v
	}

	v.Cells = make([]CellView, 0, len(g.items))
	for _, item := range g.items {
		key := cellKey(item.ID)
		cv := CellView{
			Key:          key,
			ItemID:       item.ID,
			Title:        item.Title,
			ThumbnailURL: g.thumbnailURL(item.ID),
			HasVideo:     item.HasVideo(),
			Span:         1,
		}
		if cell, ok := g.engine.Cell(key); ok {
			cv.Loaded = cell.Loaded
			cv.Height = cell.Height
			cv.Span = cell.Span
		}
		v.Cells = append(v.Cells, cv)
	}
	return v
}

func (g *Grid) placeholderSpan(h float64) int {
	return masonry.ComputeRowSpan(h, g.opts.RowHeight, g.opts.RowGap)
}

func (p *Page) View() View {
	return View{
		ID:           p.ID,
		BodyOverflow: p.scroll.Overflow(),
		Grid:         p.grid.View(),
		Modal:        p.modal.View(),
		Hero:         p.hero.View(),
	}
}

func placeholderKey(i int) string {
	return "placeholder-" + strconv.Itoa(i)
}
