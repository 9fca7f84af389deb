package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownQuery reports a library lookup for a name that was never added.
var ErrUnknownQuery = errors.New("unknown named query")

// Library holds named queries for the lifetime of the process. Names map
// to raw query text, adding an existing name replaces its text. Nothing is
// persisted anywhere.
type Library struct {
	mu      sync.RWMutex
	queries map[string]string
}

func NewLibrary() *Library {
	return &Library{queries: make(map[string]string)}
}

// Add stores text under name, replacing any previous text.
func (l *Library) Add(name, text string) error {
	if name == "" {
		return fmt.Errorf("query name cannot be empty")
	}
	if text == "" {
		return fmt.Errorf("query %q has no text", name)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries[name] = text
	return nil
}

// Remove drops name from the library, reporting whether it existed.
func (l *Library) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.queries[name]
	delete(l.queries, name)
	return ok
}

// Get returns the text stored under name.
func (l *Library) Get(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	text, ok := l.queries[name]
	return text, ok
}

// Names returns every stored name in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.queries))
	for name := range l.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named query through runner.
func (l *Library) Run(ctx context.Context, runner *Runner, database, name string) (*Result, error) {
	text, ok := l.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
	return runner.Execute(ctx, database, text)
}
