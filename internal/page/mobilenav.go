package page

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

// MobileBreakpoint is the viewport width above which the menu is always
// closed.
const MobileBreakpoint = 768

// MobileNav drives the collapsible header menu on narrow screens.
type MobileNav struct {
	nav    *html.Node
	toggle *html.Node
	open   bool
}

// SetupMobileNav binds the menu toggle. It returns nil when the page has no
// navigation or toggle.
func SetupMobileNav(page *dom.Document, layout dom.Layout) *MobileNav {
	nav := page.ByID("header-nav")
	toggle := page.Query(".nav-toggle")
	if nav == nil || toggle == nil {
		return nil
	}
	m := &MobileNav{nav: nav, toggle: toggle}

	page.On(toggle, "click", func(ev *dom.Event) {
		ev.StopPropagation()
		if m.open {
			m.Close()
		} else {
			m.Open()
		}
	})
	page.On(nav, "click", func(ev *dom.Event) {
		if dom.HasClass(ev.Target, "nav-item") || dom.HasClass(ev.Target, "nav-sub-item") {
			m.Close()
		}
	})
	page.On(page.Root(), "click", func(ev *dom.Event) {
		if !dom.Contains(nav, ev.Target) && !dom.Contains(toggle, ev.Target) {
			m.Close()
		}
	})
	page.On(page.Root(), "keydown", func(ev *dom.Event) {
		if ev.Key == "Escape" {
			m.Close()
		}
	})
	page.OnWindow("resize", func(*dom.Event) {
		if layout.ViewportWidth() > MobileBreakpoint {
			m.Close()
		}
	})
	return m
}

// IsOpen reports whether the menu is expanded.
func (m *MobileNav) IsOpen() bool { return m.open }

// Open expands the menu.
func (m *MobileNav) Open() {
	m.open = true
	dom.AddClass(m.nav, "is-open")
	dom.AddClass(m.toggle, "is-open")
	dom.SetAttr(m.toggle, "aria-expanded", "true")
}

// Close collapses the menu.
func (m *MobileNav) Close() {
	m.open = false
	dom.RemoveClass(m.nav, "is-open")
	dom.RemoveClass(m.toggle, "is-open")
	dom.SetAttr(m.toggle, "aria-expanded", "false")
}
