package modal

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/video"
)

// PreviewHint is shown over a hover preview.
const PreviewHint = "HOVER PREVIEW · CLICK PLAY"

// bindPreview marks target as having a preview and mounts the muted player
// the first time the container is hovered, focused or touched.
func (c *Controller) bindPreview(target *html.Node, videoID string) {
	if c.page.QueryIn(target, ".youtube-hover-preview") != nil {
		return
	}
	dom.AddClass(target, "has-youtube-preview")

	mount := func(*dom.Event) { MountPreview(c.page, target, videoID) }
	c.page.On(target, "mouseenter", mount)
	c.page.On(target, "focusin", mount)
	c.page.Once(target, "touchstart", mount)
}

// MountPreview adds the preview player to target unless it already has one.
// It reports whether a player was mounted.
func MountPreview(page *dom.Document, target *html.Node, videoID string) bool {
	if videoID == "" || page.QueryIn(target, ".youtube-hover-preview") != nil {
		return false
	}

	frame := dom.Element("iframe", "youtube-hover-frame")
	dom.SetAttr(frame, "title", "Linked YouTube Preview")
	dom.SetAttr(frame, "loading", "lazy")
	dom.SetAttr(frame, "tabindex", "-1")
	dom.SetAttr(frame, "referrerpolicy", "strict-origin-when-cross-origin")
	dom.SetAttr(frame, "allow", "autoplay; encrypted-media; picture-in-picture; fullscreen")
	dom.SetAttr(frame, "allowfullscreen", "")
	dom.SetAttr(frame, "src", video.EmbedURL(videoID, video.HoverPreview))

	preview := dom.Element("div", "youtube-hover-preview")
	dom.SetAttr(preview, "aria-hidden", "true")
	dom.Append(preview, frame, dom.TextElement("span", "youtube-hover-hint", PreviewHint))
	dom.Append(target, preview)
	return true
}
