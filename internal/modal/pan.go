package modal

import (
	"math"

	"github.com/ziadkadry99/folio/internal/dom"
)

// Viewport is the scroll state of the diagram viewport.
type Viewport struct {
	ScrollLeft    float64
	ScrollTop     float64
	ClientWidth   float64
	ClientHeight  float64
	ContentWidth  float64
	ContentHeight float64
}

// MaxScroll returns the largest reachable scroll offsets.
func (v Viewport) MaxScroll() (left, top float64) {
	return math.Max(0, v.ContentWidth-v.ClientWidth), math.Max(0, v.ContentHeight-v.ClientHeight)
}

func (v *Viewport) clamp() {
	maxLeft, maxTop := v.MaxScroll()
	v.ScrollLeft = math.Min(maxLeft, math.Max(0, v.ScrollLeft))
	v.ScrollTop = math.Min(maxTop, math.Max(0, v.ScrollTop))
}

// ScrollTo moves the viewport, clamped to the canvas.
func (v *Viewport) ScrollTo(left, top float64) {
	v.ScrollLeft, v.ScrollTop = left, top
	v.clamp()
}

type panState struct {
	active    bool
	startX    float64
	startY    float64
	startLeft float64
	startTop  float64
}

// View returns the viewport scroll state.
func (c *Controller) View() Viewport { return c.view }

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool { return c.pan.active }

// PointerDown starts a drag when the diagram is zoomed past 100% and the
// primary button is pressed inside the viewport.
func (c *Controller) PointerDown(ev *dom.Event) {
	if !c.CanPan() || c.viewport == nil {
		return
	}
	if ev.Button != 0 || !dom.Contains(c.viewport, ev.Target) {
		return
	}
	c.pan = panState{
		active:    true,
		startX:    ev.ClientX,
		startY:    ev.ClientY,
		startLeft: c.view.ScrollLeft,
		startTop:  c.view.ScrollTop,
	}
	dom.AddClass(c.viewport, "is-panning")
	ev.PreventDefault()
}

// PointerMove scrolls against the drag so the content follows the pointer.
func (c *Controller) PointerMove(ev *dom.Event) {
	if !c.pan.active || c.viewport == nil {
		return
	}
	dx := ev.ClientX - c.pan.startX
	dy := ev.ClientY - c.pan.startY
	c.view.ScrollTo(c.pan.startLeft-dx, c.pan.startTop-dy)
	ev.PreventDefault()
}

// PointerLeave ends the drag if no button is still held.
func (c *Controller) PointerLeave(ev *dom.Event) {
	if c.pan.active && ev.Buttons&1 == 0 {
		c.EndPan()
	}
}

// EndPan stops any drag in progress.
func (c *Controller) EndPan() {
	if !c.pan.active {
		return
	}
	c.pan.active = false
	if c.viewport != nil {
		dom.RemoveClass(c.viewport, "is-panning")
	}
}
