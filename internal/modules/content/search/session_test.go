package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects committed filters from a session callback.
type recorder struct {
	mu      sync.Mutex
	commits []Filter
}

func (r *recorder) record(f Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, f)
}

func (r *recorder) snapshot() []Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Filter, len(r.commits))
	copy(out, r.commits)
	return out
}

func (r *recorder) waitFor(t *testing.T, n int) []Filter {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d commits, have %d", n, len(r.snapshot()))
	return nil
}

func TestDebounceCommitsOnceWithFinalValue(t *testing.T) {
	rec := &recorder{}
	s := NewSession(30*time.Millisecond, rec.record)

	// A burst of keystrokes inside the window.
	for _, q := range []string{"r", "ri", "riv", "rive", "river"} {
		s.SetQuery(q)
		time.Sleep(5 * time.Millisecond)
	}

	commits := rec.waitFor(t, 1)
	// Give a late straggler commit a chance to show up before asserting.
	time.Sleep(60 * time.Millisecond)
	commits = rec.snapshot()

	require.Len(t, commits, 1)
	assert.Equal(t, "river", commits[0].Query)
	assert.Equal(t, "river", s.Filter().Query)
}

func TestFiredTimerSupersededByNewKeystrokeCommitsOnce(t *testing.T) {
	rec := &recorder{}
	s := NewSession(time.Hour, rec.record)

	// The first window's timer fires right as the second keystroke lands.
	// Its callback runs with a superseded generation and must back off;
	// only the live window commits.
	s.SetQuery("riv")
	s.SetQuery("river")
	s.commitDraft(1)

	assert.Empty(t, rec.snapshot())
	assert.Equal(t, "", s.Filter().Query)

	s.commitDraft(2)
	commits := rec.snapshot()
	require.Len(t, commits, 1)
	assert.Equal(t, "river", commits[0].Query)
}

func TestFiredTimerSupersededByClearDoesNotCommit(t *testing.T) {
	rec := &recorder{}
	s := NewSession(time.Hour, rec.record)

	s.SetQuery("river")
	s.ClearFilters()
	s.commitDraft(1)

	assert.Equal(t, Filter{}, s.Filter())
	commits := rec.snapshot()
	require.Len(t, commits, 1)
	assert.Equal(t, Filter{}, commits[0])
}

func TestDraftLeadsCommittedFilter(t *testing.T) {
	s := NewSession(time.Hour, nil)
	s.SetQuery("riv")

	assert.Equal(t, "riv", s.Draft())
	assert.Equal(t, "", s.Filter().Query)
}

func TestToggleCategorySelectsAndClears(t *testing.T) {
	rec := &recorder{}
	s := NewSession(DefaultDebounce, rec.record)

	s.ToggleCategory("poetry")
	assert.Equal(t, "poetry", s.Filter().Category)

	s.ToggleCategory("essays")
	assert.Equal(t, "essays", s.Filter().Category)

	// Re-selecting the active category clears it.
	s.ToggleCategory("essays")
	assert.Equal(t, "", s.Filter().Category)

	commits := rec.snapshot()
	require.Len(t, commits, 3)
	assert.Equal(t, "", commits[2].Category)
}

func TestToggleCategoryClosesDropdown(t *testing.T) {
	s := NewSession(DefaultDebounce, nil)
	s.SetDropdownOpen(true)
	s.ToggleCategory("poetry")
	assert.False(t, s.DropdownOpen())
}

func TestClearFiltersCancelsPendingCommit(t *testing.T) {
	rec := &recorder{}
	s := NewSession(50*time.Millisecond, rec.record)

	s.ToggleCategory("poetry")
	s.SetQuery("river")
	s.SetDropdownOpen(true)
	s.ClearFilters()

	// Wait past the debounce window: the cancelled draft must not land.
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, Filter{}, s.Filter())
	assert.Equal(t, "", s.Draft())
	assert.False(t, s.DropdownOpen())

	commits := rec.snapshot()
	require.Len(t, commits, 2)
	assert.Equal(t, Filter{Category: "poetry"}, commits[0])
	assert.Equal(t, Filter{}, commits[1])
}

func TestDebouncedQueryKeepsCategory(t *testing.T) {
	rec := &recorder{}
	s := NewSession(20*time.Millisecond, rec.record)

	s.ToggleCategory("poetry")
	s.SetQuery("river")

	commits := rec.waitFor(t, 2)
	assert.Equal(t, Filter{Query: "river", Category: "poetry"}, commits[len(commits)-1])
}
