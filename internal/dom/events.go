package dom

import "golang.org/x/net/html"

// Event is a browser-style input event dispatched through the headless tree.
type Event struct {
	Type string

	// Target is the node the event was dispatched at; CurrentTarget is the node
	// whose listener is running.
	Target        *html.Node
	CurrentTarget *html.Node

	Key     string
	CtrlKey bool
	MetaKey bool

	Button  int
	Buttons int
	ClientX float64
	ClientY float64
	DeltaY  float64

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event's default action as suppressed.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles a dispatched event.
type Listener func(*Event)

type binding struct {
	fn   Listener
	once bool
	done bool
}

// nonBubbling lists event types delivered only to their target.
var nonBubbling = map[string]bool{
	"mouseenter":   true,
	"mouseleave":   true,
	"pointerenter": true,
	"pointerleave": true,
	"focus":        true,
	"blur":         true,
}

// On registers fn for events of type typ reaching n.
func (d *Document) On(n *html.Node, typ string, fn Listener) {
	d.bind(n, typ, &binding{fn: fn})
}

// Once registers fn to run for the first matching event only.
func (d *Document) Once(n *html.Node, typ string, fn Listener) {
	d.bind(n, typ, &binding{fn: fn, once: true})
}

func (d *Document) bind(n *html.Node, typ string, b *binding) {
	if n == nil {
		return
	}
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]*binding)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], b)
}

// Dispatch delivers ev to target and, for bubbling types, to each ancestor up
// to the document node. It returns false if a listener prevented the default.
func (d *Document) Dispatch(target *html.Node, ev *Event) bool {
	if target == nil || ev == nil {
		return true
	}
	ev.Target = target
	for cur := target; cur != nil; cur = cur.Parent {
		d.invoke(d.listeners[cur][ev.Type], cur, ev)
		if ev.stopped || nonBubbling[ev.Type] {
			break
		}
	}
	return !ev.defaultPrevented
}

// OnWindow registers fn for window-level events such as scroll and resize.
func (d *Document) OnWindow(typ string, fn Listener) {
	d.window[typ] = append(d.window[typ], &binding{fn: fn})
}

// DispatchWindow delivers a window-level event.
func (d *Document) DispatchWindow(ev *Event) bool {
	if ev == nil {
		return true
	}
	d.invoke(d.window[ev.Type], nil, ev)
	return !ev.defaultPrevented
}

func (d *Document) invoke(bindings []*binding, current *html.Node, ev *Event) {
	for _, b := range bindings {
		if b.done {
			continue
		}
		if b.once {
			b.done = true
		}
		ev.CurrentTarget = current
		b.fn(ev)
	}
}
