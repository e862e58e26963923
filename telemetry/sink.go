// Package telemetry carries UI and service events to an injectable sink so
// production builds can silence or redirect them without touching call sites.
package telemetry

import (
	"sync"

	"github.com/rs/zerolog"
)

// Fields are the structured attributes of an event
type Fields map[string]interface{}

// Sink receives named events
type Sink interface {
	Emit(event string, fields Fields)
}

// Nop discards every event
type Nop struct{}

func (Nop) Emit(string, Fields) {}

// ZerologSink writes events as debug-level log entries
type ZerologSink struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewZerologSink returns a sink logging through logger at the given level
func NewZerologSink(logger zerolog.Logger, level zerolog.Level) *ZerologSink {
	return &ZerologSink{logger: logger.With().Str("component", "telemetry").Logger(), level: level}
}

func (s *ZerologSink) Emit(event string, fields Fields) {
	s.logger.WithLevel(s.level).Fields(map[string]interface{}(fields)).Str("event", event).Send()
}

// Event is one recorded emission
type Event struct {
	Name   string
	Fields Fields
}

// Recorder keeps events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(event string, fields Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Name: event, Fields: fields})
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the recorded event names in order
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// OrNop returns s, or Nop when s is nil
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	return s
}
