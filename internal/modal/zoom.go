package modal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ziadkadry99/folio/internal/dom"
)

// ClampZoom bounds z to [ZoomMin, ZoomMax].
func ClampZoom(z float64) float64 {
	return math.Min(ZoomMax, math.Max(ZoomMin, z))
}

// ZoomLabel formats a zoom factor as a rounded percentage.
func ZoomLabel(z float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(z*100)))
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.zoom }

// BaseSize returns the diagram's unzoomed canvas size.
func (c *Controller) BaseSize() (width, height float64) { return c.baseW, c.baseH }

// SetZoom clamps z and applies it. It does nothing unless the viewer is open,
// and reports whether the zoom changed.
func (c *Controller) SetZoom(z float64) bool {
	if c.state != Open {
		return false
	}
	z = ClampZoom(z)
	if math.Abs(z-c.zoom) < 0.0001 {
		return false
	}
	c.zoom = z
	c.applyZoom()
	return true
}

// ZoomIn steps the zoom up.
func (c *Controller) ZoomIn() bool { return c.SetZoom(c.zoom + ZoomStep) }

// ZoomOut steps the zoom down.
func (c *Controller) ZoomOut() bool { return c.SetZoom(c.zoom - ZoomStep) }

// ResetZoom returns to 100% and re-centers the view.
func (c *Controller) ResetZoom() {
	if c.state != Open {
		return
	}
	c.zoom = 1
	c.applyZoom()
	c.scheduleCenter()
}

// applyZoom sizes the canvas to base*zoom. The svg keeps its base width and
// height attributes and fills the canvas, so the vector output rescales.
func (c *Controller) applyZoom() {
	if c.svg == nil || c.canvas == nil || c.viewport == nil {
		return
	}
	w := math.Max(1, math.Round(c.baseW*c.zoom))
	h := math.Max(1, math.Round(c.baseH*c.zoom))
	dom.SetStyle(c.canvas, "width", formatPx(w)+"px")
	dom.SetStyle(c.canvas, "height", formatPx(h)+"px")
	dom.SetStyle(c.svg, "max-width", "none")
	dom.SetStyle(c.svg, "width", "100%")
	dom.SetStyle(c.svg, "height", "100%")
	dom.SetAttr(c.svg, "width", formatPx(c.baseW))
	dom.SetAttr(c.svg, "height", formatPx(c.baseH))

	box := c.layout.Box(c.viewport)
	c.view.ClientWidth, c.view.ClientHeight = box.Width, box.Height
	c.view.ContentWidth, c.view.ContentHeight = w, h
	c.view.clamp()

	if c.zoom > panThreshold {
		dom.AddClass(c.viewport, "can-pan")
	} else {
		c.EndPan()
		dom.RemoveClass(c.viewport, "can-pan")
	}

	if c.zoomValue != nil {
		dom.SetText(c.zoomValue, ZoomLabel(c.zoom))
	}
}

// CanPan reports whether the viewport accepts drag panning.
func (c *Controller) CanPan() bool {
	return c.state == Open && c.svg != nil && c.zoom > panThreshold
}

// HandleWheel zooms on a wheel event over the diagram while Ctrl or Cmd is
// held. Plain wheel input is left to the page.
func (c *Controller) HandleWheel(ev *dom.Event) {
	if c.state != Open || c.svg == nil || c.viewport == nil {
		return
	}
	if !ev.CtrlKey && !ev.MetaKey {
		return
	}
	if !dom.Contains(c.viewport, ev.Target) {
		return
	}
	ev.PreventDefault()
	if ev.DeltaY < 0 {
		c.ZoomIn()
		return
	}
	c.ZoomOut()
}

// scheduleCenter centers the view now-ish and once more a frame later, after
// layout has settled.
func (c *Controller) scheduleCenter() {
	c.sched.RequestAnimationFrame(func() {
		c.Center()
		c.sched.RequestAnimationFrame(c.Center)
	})
}

// Center scrolls the viewport to the horizontal middle of the canvas.
func (c *Controller) Center() {
	if c.viewport == nil {
		return
	}
	maxLeft := c.view.ContentWidth - c.view.ClientWidth
	if maxLeft > 0 {
		c.view.ScrollLeft = math.Floor(maxLeft / 2)
	} else {
		c.view.ScrollLeft = 0
	}
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
