package gallery

import (
	"errors"
	"fmt"

	"github.com/Maxito7/heey_portfolio/internal/ui/masonry"
	"github.com/Maxito7/heey_portfolio/internal/ui/modal"
	"github.com/Maxito7/heey_portfolio/internal/ui/zoom"
)

var (
	ErrUnmounted    = errors.New("page is not mounted")
	ErrUnknownEvent = errors.New("unknown event type")
	ErrInvalidEvent = errors.New("invalid event")
)

// EventType names a browser event forwarded to the page.
type EventType string

const (
	EventThumbnailLoaded EventType = "thumbnail_loaded"
	EventThumbnailError  EventType = "thumbnail_error"
	EventResize          EventType = "resize"
	EventCellClick       EventType = "cell_click"
	EventClose           EventType = "close"
	EventModalClick      EventType = "modal_click"
	EventKeyDown         EventType = "keydown"
	EventDialogSize      EventType = "dialog_size"
	EventImageLoaded     EventType = "image_loaded"
	EventVideoError      EventType = "video_error"
	EventHoverEnter      EventType = "hover_enter"
	EventHoverMove       EventType = "hover_move"
	EventHoverLeave      EventType = "hover_leave"
	EventTap             EventType = "tap"
	EventHeroGoto        EventType = "hero_goto"
)

// Event is one browser event. Which fields matter depends on Type.
type Event struct {
	Type EventType `json:"type"`

	ItemID        int     `json:"item_id,omitempty"`
	NaturalWidth  float64 `json:"natural_width,omitempty"`
	NaturalHeight float64 `json:"natural_height,omitempty"`

	Viewport *masonry.Viewport `json:"viewport,omitempty"`
	Dialog   *modal.Size       `json:"dialog,omitempty"`
	Target   modal.Target      `json:"target,omitempty"`
	Key      string            `json:"key,omitempty"`

	X   float64    `json:"x,omitempty"`
	Y   float64    `json:"y,omitempty"`
	Box *zoom.Rect `json:"box,omitempty"`

	Slide  int    `json:"slide,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Validate checks that the fields the event type needs are present.
func (e Event) Validate() error {
	switch e.Type {
	case EventThumbnailLoaded, EventThumbnailError, EventCellClick, EventImageLoaded, EventVideoError:
		if e.ItemID == 0 {
			return fmt.Errorf("%w: %s needs item_id", ErrInvalidEvent, e.Type)
		}
	case EventResize:
		if e.Viewport == nil || e.Viewport.Width <= 0 {
			return fmt.Errorf("%w: resize needs a viewport", ErrInvalidEvent)
		}
	case EventDialogSize:
		if e.Dialog == nil {
			return fmt.Errorf("%w: dialog_size needs dialog", ErrInvalidEvent)
		}
	case EventHoverEnter, EventHoverMove, EventTap:
		if e.Box == nil {
			return fmt.Errorf("%w: %s needs the image box", ErrInvalidEvent, e.Type)
		}
	case EventClose, EventModalClick, EventKeyDown, EventHoverLeave, EventHeroGoto:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	return nil
}
