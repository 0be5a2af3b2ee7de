// Package scheduler decides when note events trigger an alias sync run.
//
// Events arrive on a channel and are handled by a single loop, so pipeline
// runs never overlap. Open events run the pipeline immediately. Modify
// events arm one shared debounce timer; a new modify event replaces the
// pending one, whichever note it came from, and when the timer fires the
// run is skipped unless the note is still the active one.
package scheduler

import (
	"context"
	"time"

	"github.com/emcrae/magpie/internal/config"
	"github.com/emcrae/magpie/internal/pipeline"
	"github.com/emcrae/magpie/internal/vault"
)

// EventKind identifies the two inbound event types.
type EventKind int

const (
	// NoteOpened fires when a note comes into focus.
	NoteOpened EventKind = iota

	// NoteModified fires when a note's content changes.
	NoteModified
)

// Event is one inbound note event.
type Event struct {
	Kind EventKind
	Note vault.Note
}

// Runner runs the sync pipeline for one note.
type Runner interface {
	Process(n vault.Note) error
}

// Scheduler owns the debounce state between events.
type Scheduler struct {
	host   pipeline.Host
	runner Runner
	store  *config.Store
	events chan Event
}

// New creates a Scheduler. host supplies the active-note gate and logging;
// store supplies the debounce window at arm time.
func New(host pipeline.Host, runner Runner, store *config.Store) *Scheduler {
	return &Scheduler{
		host:   host,
		runner: runner,
		store:  store,
		events: make(chan Event, 64),
	}
}

// Events returns the channel event producers send on.
func (s *Scheduler) Events() chan<- Event {
	return s.events
}

// Run consumes events until ctx is cancelled. It must be called once; the
// debounce timer lives entirely inside this loop.
func (s *Scheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	// The note the pending timer was armed for; nil when idle.
	var pending *vault.Note

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-s.events:
			switch ev.Kind {
			case NoteOpened:
				if !ev.Note.IsMarkdown() {
					continue
				}
				s.run(ev.Note)

			case NoteModified:
				// Cancel-and-replace: one timer system-wide, last
				// modify wins.
				if pending != nil && !timer.Stop() {
					<-timer.C
				}
				note := ev.Note
				pending = &note
				timer.Reset(s.store.Current().Debounce)
			}

		case <-timer.C:
			note := pending
			pending = nil
			if note == nil {
				continue
			}
			if !note.IsMarkdown() {
				continue
			}
			active, ok := s.host.ActiveNote()
			if !ok || active.ID != note.ID {
				s.host.Logf("skipping sync of %s: no longer the active note", note.ID)
				continue
			}
			s.run(*note)
		}
	}
}

func (s *Scheduler) run(n vault.Note) {
	if err := s.runner.Process(n); err != nil {
		s.host.Logf("sync of %s failed: %v", n.ID, err)
	}
}
