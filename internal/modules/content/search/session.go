package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the trailing-edge delay between the last keystroke and
// the commit of a text query.
const DefaultDebounce = 300 * time.Millisecond

// Session tracks one user's interactive search state. Text input is
// debounced: SetQuery records a draft and commits it only after the
// debounce window passes without another keystroke. Category selection and
// ClearFilters commit immediately.
//
// The onChange callback fires with the committed filter after every commit.
// It runs on the timer goroutine for debounced commits, so callers that
// touch shared state must synchronize.
type Session struct {
	mu       sync.Mutex
	debounce time.Duration
	draft    string
	filter   Filter
	dropdown bool
	timer    *time.Timer
	gen      uint64
	onChange func(Filter)
}

// NewSession returns a session with the given change callback. A zero or
// negative debounce falls back to DefaultDebounce.
func NewSession(debounce time.Duration, onChange func(Filter)) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Session{debounce: debounce, onChange: onChange}
}

// Filter returns the committed filter.
func (s *Session) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Draft returns the in-flight query text, which may be ahead of the
// committed filter while the debounce window is open.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// DropdownOpen reports whether the category dropdown is showing.
func (s *Session) DropdownOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropdown
}

// SetDropdownOpen shows or hides the category dropdown.
func (s *Session) SetDropdownOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropdown = open
}

// SetQuery records a keystroke. Each call restarts the debounce window;
// only the value present when the window finally closes is committed.
// Restarting bumps the generation, so a previous timer that already fired
// but has not committed yet finds itself stale and backs off. Stop alone
// cannot cover that window.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() { s.commitDraft(gen) })
}

func (s *Session) commitDraft(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.filter.Query = s.draft
	s.timer = nil
	committed := s.filter
	s.mu.Unlock()

	s.notify(committed)
}

// ToggleCategory selects slug, or clears the selection when slug is
// already selected. Selection is single-valued and commits immediately.
func (s *Session) ToggleCategory(slug string) {
	s.mu.Lock()
	if s.filter.Category == slug {
		s.filter.Category = ""
	} else {
		s.filter.Category = slug
	}
	s.dropdown = false
	committed := s.filter
	s.mu.Unlock()

	s.notify(committed)
}

// ClearFilters resets query and category in one commit, cancels any
// pending debounced commit, and closes the dropdown.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.draft = ""
	s.filter = Filter{}
	s.dropdown = false
	committed := s.filter
	s.mu.Unlock()

	s.notify(committed)
}

func (s *Session) notify(f Filter) {
	if s.onChange != nil {
		s.onChange(f)
	}
}
