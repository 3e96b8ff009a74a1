package history

import "sync"

// Memory is an in-process Native implementation: the kiosk shell's own
// back/forward stack. Position -1 sits before the journey's first entry and
// delivers a nil entry, the same signal a browser sends when the visitor
// backs past the app's baseline.
type Memory struct {
	mu      sync.Mutex
	stack   []slot
	pos     int
	handler Handler
}

type slot struct {
	entry    Entry
	label    string
	fragment string
}

// NewMemory creates an empty in-memory history.
func NewMemory() *Memory {
	return &Memory{pos: -1}
}

// Push truncates any forward entries and appends a new current entry.
func (m *Memory) Push(entry Entry, label, fragment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stack = append(m.stack[:m.pos+1], slot{entry: entry, label: label, fragment: fragment})
	m.pos = len(m.stack) - 1
	return nil
}

// Replace overwrites the current entry, or seeds the stack when empty.
func (m *Memory) Replace(entry Entry, label, fragment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := slot{entry: entry, label: label, fragment: fragment}
	if m.pos < 0 || len(m.stack) == 0 {
		m.stack = append(m.stack[:0], s)
		m.pos = 0
		return nil
	}
	m.stack[m.pos] = s
	return nil
}

// Subscribe registers the back/forward event handler.
func (m *Memory) Subscribe(h Handler) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

// Back moves one entry backwards and delivers it to the handler. Backing
// past the first entry delivers nil. Returns false when already past the
// beginning.
func (m *Memory) Back() bool {
	m.mu.Lock()
	if m.pos < 0 {
		m.mu.Unlock()
		return false
	}
	m.pos--
	h := m.handler
	var entry *Entry
	if m.pos >= 0 {
		e := m.stack[m.pos].entry
		entry = &e
	}
	m.mu.Unlock()

	if h != nil {
		h(entry)
	}
	return true
}

// Forward moves one entry forwards and delivers it to the handler. Returns
// false when already at the newest entry.
func (m *Memory) Forward() bool {
	m.mu.Lock()
	if m.pos >= len(m.stack)-1 {
		m.mu.Unlock()
		return false
	}
	m.pos++
	e := m.stack[m.pos].entry
	h := m.handler
	m.mu.Unlock()

	if h != nil {
		h(&e)
	}
	return true
}

// Current returns the active entry and its fragment, if any.
func (m *Memory) Current() (Entry, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos < 0 || m.pos >= len(m.stack) {
		return Entry{}, "", false
	}
	s := m.stack[m.pos]
	return s.entry, s.fragment, true
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack)
}
