package page

import (
	"fmt"
	"time"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

// UptimeID is the element showing time since load.
const UptimeID = "uptime"

// Uptime is the cosmetic clock in the status bar.
type Uptime struct {
	el    *html.Node
	start time.Time
	now   func() time.Time
}

// StartUptime shows 00:00:00 and ticks once a second. It returns nil when the
// page has no uptime element.
func StartUptime(page *dom.Document, sched dom.Scheduler, now func() time.Time) *Uptime {
	el := page.ByID(UptimeID)
	if el == nil {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	u := &Uptime{el: el, start: now(), now: now}
	u.tick()
	sched.SetInterval(u.tick, time.Second)
	return u
}

func (u *Uptime) tick() {
	dom.SetText(u.el, FormatUptime(u.now().Sub(u.start)))
}

// Text returns the displayed value.
func (u *Uptime) Text() string { return dom.Text(u.el) }

// FormatUptime renders d as HH:MM:SS, truncated to whole seconds.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
