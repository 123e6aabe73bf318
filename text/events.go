package text

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
)

// ErrMalformedEvent is returned for event records that cannot be decoded or
// replayed.
var ErrMalformedEvent = errors.New("malformed event")

// EventKind identifies an ingestion signal
type EventKind string

const (
	KindRun  EventKind = "run"
	KindLine EventKind = "line"
	KindPage EventKind = "page"
)

// Event is one record of an ingestion stream: a character run, a line break
// or a page end. Streams are stored as JSON lines, one event per line:
//
//	{"kind":"run","text":"Intro","font":"Times-Bold","size":14,"page":1,"boxes":[[72,80,60,74],...]}
//	{"kind":"line"}
//	{"kind":"page"}
//
// Each box is [xMin, xMax, yMin, yMax]. A run may give a single "bounds" box
// instead of per-character boxes.
type Event struct {
	Kind   EventKind    `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Font   string       `json:"font,omitempty"`
	Size   float64      `json:"size,omitempty"`
	Page   int          `json:"page,omitempty"`
	Boxes  [][4]float64 `json:"boxes,omitempty"`
	Bounds *[4]float64  `json:"bounds,omitempty"`
}

// RunEvent converts a run into its event record
func RunEvent(r Run) Event {
	e := Event{Kind: KindRun, Text: r.Text, Font: r.Font, Size: r.Size, Page: r.Page}
	for _, b := range r.Boxes {
		e.Boxes = append(e.Boxes, [4]float64{b.XMin, b.XMax, b.YMin, b.YMax})
	}
	if len(r.Boxes) == 0 {
		e.Bounds = &[4]float64{r.Bounds.XMin, r.Bounds.XMax, r.Bounds.YMin, r.Bounds.YMax}
	}
	return e
}

// ToRun converts a run event back into a Run
func (e Event) ToRun() Run {
	r := Run{Text: e.Text, Font: e.Font, Size: e.Size, Page: e.Page}
	for _, b := range e.Boxes {
		r.Boxes = append(r.Boxes, model.NewBox(e.Page, b[0], b[1], b[2], b[3]))
	}
	if e.Bounds != nil {
		r.Bounds = model.NewBox(e.Page, e.Bounds[0], e.Bounds[1], e.Bounds[2], e.Bounds[3])
	}
	return r
}

func (e Event) validate() error {
	switch e.Kind {
	case KindLine, KindPage:
		return nil
	case KindRun:
		if len(e.Boxes) == 0 && e.Bounds == nil && e.Text != "" {
			return errors.New("run without boxes or bounds")
		}
		return nil
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
}

// DecodeEvents reads a JSON lines event stream. Blank lines are skipped.
func DecodeEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", n, ErrMalformedEvent, err)
		}
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", n, ErrMalformedEvent, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}

// EncodeEvents writes events as JSON lines
func EncodeEvents(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	for i, e := range events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to encode event %d: %w", i, err)
		}
	}
	return nil
}

// Replay feeds events into a new Builder and returns the resulting document.
func Replay(name string, events []Event) (*layout.Document, error) {
	b := NewBuilder(name)
	for i, e := range events {
		switch e.Kind {
		case KindRun:
			if err := b.AddRun(e.ToRun()); err != nil {
				return nil, fmt.Errorf("event %d: %w: %w", i, ErrMalformedEvent, err)
			}
		case KindLine:
			b.LineBreak()
		case KindPage:
			b.PageEnd()
		default:
			return nil, fmt.Errorf("event %d: %w: unknown kind %q", i, ErrMalformedEvent, e.Kind)
		}
	}
	return b.Document(), nil
}
