package history

import (
	"github.com/sirupsen/logrus"

	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

// Synchronizer keeps the session store and the native history agreeing on
// which screen is current. Store-driven changes push entries; native
// back/forward events apply entries to the store with the push suppressed,
// which is what prevents the two layers from feeding each other forever.
type Synchronizer struct {
	store  *session.Store
	native Native
	logger *logrus.Entry

	// degraded is set after a native call fails. In-app navigation keeps
	// working; native back/forward no longer tracks it.
	degraded bool
}

// Attach wires a synchronizer between the store and the native history.
// It replaces (not pushes) the current native entry with the baseline
// {default screen, index 0} so that backing out of the very first screen has
// a well-defined target, then starts mirroring store events.
//
// Attach must run before the traffic logger is registered on the store so
// that pushes happen before analytics scheduling.
func Attach(store *session.Store, native Native) *Synchronizer {
	s := &Synchronizer{
		store:  store,
		native: native,
		logger: logging.NewLogger("history"),
	}

	native.Subscribe(s.onNativeEvent)

	baseline := Entry{
		Screen:    screen.Default,
		Index:     0,
		FullRoute: fullRoute(screen.Default, ""),
	}
	if err := native.Replace(baseline, label(screen.Default), screen.Default.Fragment()); err != nil {
		s.degraded = true
		s.logger.WithError(err).Warn("native history unavailable, continuing in-memory only")
	}

	store.Observe(s.onStoreEvent)
	return s
}

// Degraded reports whether the native layer has failed and the synchronizer
// is operating the store purely in-memory.
func (s *Synchronizer) Degraded() bool {
	return s.degraded
}

// onStoreEvent mirrors genuine forward navigations into native history.
// Pop-caused events are ignored here; pushing on a pop would start an
// infinite synchronization loop between the native history and the store.
func (s *Synchronizer) onStoreEvent(ev session.Event) {
	switch ev.Cause {
	case session.CauseNavigate, session.CauseReset:
	default:
		return
	}

	entry := Entry{
		Screen:    ev.State.Current,
		Index:     ev.State.HistoryIndex,
		SubRoute:  ev.State.SubRoute,
		FullRoute: fullRoute(ev.State.Current, ev.State.SubRoute),
	}
	if err := s.native.Push(entry, label(entry.Screen), entry.Screen.Fragment()); err != nil {
		if !s.degraded {
			s.degraded = true
			s.logger.WithError(err).Warn("native history push failed, continuing in-memory only")
		}
		return
	}
	s.degraded = false
}

// onNativeEvent applies a native back/forward signal to the store. A nil
// entry forces the default screen and drops filter-only customer fields.
func (s *Synchronizer) onNativeEvent(entry *Entry) {
	if entry == nil {
		s.store.ApplyHistoryBaseline()
		return
	}
	s.store.ApplyHistoryEntry(entry.Screen, entry.SubRoute, entry.Index)
}

// label is the human-visible title attached to a history entry.
func label(id screen.ID) string {
	return "Showroom · " + string(id)
}
