package modal

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

func zoomControls() *html.Node {
	controls := dom.Element("div", "mermaid-modal-controls")
	for _, b := range []struct{ action, label, text string }{
		{"out", "Zoom out", "-"},
		{"reset", "Reset zoom", "RESET"},
		{"in", "Zoom in", "+"},
	} {
		button := dom.TextElement("button", "mermaid-zoom-btn", b.text)
		dom.SetAttr(button, "type", "button")
		dom.SetAttr(button, "data-mermaid-zoom", b.action)
		dom.SetAttr(button, "aria-label", b.label)
		dom.Append(controls, button)
	}
	value := dom.TextElement("span", "mermaid-zoom-value", "100%")
	dom.SetAttr(value, "aria-live", "polite")
	dom.Append(controls, value)
	return controls
}

func paneHeader(left, right string) *html.Node {
	header := dom.Element("div", "mermaid-modal-panel-header")
	dom.Append(header, dom.TextElement("span", "", left), dom.TextElement("span", "", right))
	return header
}

func diagramPane(viewport *html.Node) *html.Node {
	pane := dom.Element("section", "mermaid-modal-panel mermaid-modal-panel-diagram mermaid-modal-diagram-pane")
	body := dom.Element("div", "mermaid-modal-panel-body mermaid-modal-panel-body-diagram")
	dom.Append(body, viewport)
	dom.Append(pane, paneHeader("DIAGRAM", "CTRL/CMD + WHEEL TO ZOOM"), body)
	return pane
}

func videoPane(src string) *html.Node {
	frame := dom.Element("iframe", "mermaid-modal-video")
	dom.SetAttr(frame, "title", "Linked YouTube Video")
	dom.SetAttr(frame, "loading", "eager")
	dom.SetAttr(frame, "referrerpolicy", "strict-origin-when-cross-origin")
	dom.SetAttr(frame, "allow", "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share")
	dom.SetAttr(frame, "allowfullscreen", "")
	dom.SetAttr(frame, "src", src)

	wrap := dom.Element("div", "mermaid-modal-video-wrap")
	dom.Append(wrap, frame)
	body := dom.Element("div", "mermaid-modal-panel-body mermaid-modal-panel-body-video")
	dom.Append(body, wrap)

	pane := dom.Element("section", "mermaid-modal-panel mermaid-modal-panel-video mermaid-modal-video-pane")
	dom.Append(pane, paneHeader("YOUTUBE", "LINKED PLAYBACK"), body)
	return pane
}
