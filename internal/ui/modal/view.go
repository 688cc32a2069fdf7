package modal

import "github.com/Maxito7/heey_portfolio/internal/ui/zoom"

// ZoomView is the image transform to render.
type ZoomView struct {
	Enabled    bool        `json:"enabled"`
	Zoomed     bool        `json:"zoomed"`
	Scale      float64     `json:"scale"`
	Origin     zoom.Origin `json:"origin"`
	ResetEpoch uint64      `json:"reset_epoch"`
}

// View is the declarative modal state handed to the renderer.
type View struct {
	Phase         Phase    `json:"phase"`
	Visible       bool     `json:"visible"`
	Shown         bool     `json:"shown"`
	LayoutFlushes int      `json:"layout_flushes"`
	FrozenSize    *Size    `json:"frozen_size,omitempty"`
	Content       *Content `json:"content,omitempty"`
	Loading       bool     `json:"loading"`
	Zoom          ZoomView `json:"zoom"`
}

func (c *Controller) View() View {
	v := View{
		Phase:         c.phase,
		Visible:       c.visible,
		Shown:         c.shown,
		LayoutFlushes: c.flushes,
		Loading:       c.loading,
		Zoom: ZoomView{
			Enabled:    c.zoom.Enabled(),
			Zoomed:     c.zoom.Zoomed(),
			Scale:      c.zoom.Scale(),
			Origin:     c.zoom.Origin(),
			ResetEpoch: c.zoom.ResetEpoch(),
		},
	}
	if c.frozen != nil {
		f := *c.frozen
		v.FrozenSize = &f
	}
	if c.content != nil {
		content := *c.content
		v.Content = &content
	}
	return v
}
