package analytics

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Event is a structured tracking event in the data-layer shape expected by
// tag managers.
type Event struct {
	Event       string `json:"event"`
	ContentType string `json:"content_type"`
	ItemID      string `json:"item_id"`
	LinkLabel   string `json:"link_label"`
	LinkURL     string `json:"link_url"`
}

// ProjectLink builds the event emitted when a project link is followed.
func ProjectLink(projectTitle, label, href string) Event {
	if projectTitle == "" {
		projectTitle = "unknown_project"
	}
	return Event{
		Event:       "select_content",
		ContentType: "project_link",
		ItemID:      projectTitle,
		LinkLabel:   label,
		LinkURL:     href,
	}
}

// JSON returns the event encoded for a data attribute.
func (e Event) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Sink receives tracking events.
type Sink interface {
	Push(Event) error
}

// DataLayer is an in-memory Sink that records events in push order.
type DataLayer struct {
	mu     sync.Mutex
	events []Event
}

// NewDataLayer returns an empty DataLayer.
func NewDataLayer() *DataLayer {
	return &DataLayer{}
}

func (d *DataLayer) Push(e Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (d *DataLayer) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Event(nil), d.events...)
}

// Emit pushes e to sink without letting a missing or failing sink escape to
// the caller. Failures are logged.
func Emit(sink Sink, e Event, logger *zap.Logger) {
	if sink == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("analytics sink panicked", zap.String("event", e.Event), zap.String("panic", fmt.Sprint(r)))
		}
	}()
	if err := sink.Push(e); err != nil {
		logger.Warn("analytics push failed", zap.String("event", e.Event), zap.Error(err))
	}
}
