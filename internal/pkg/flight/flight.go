// Package flight provides a keyed single-flight guard: concurrent callers
// asking for the same operation share one execution instead of issuing
// duplicates. The API client uses it so that a burst of 401s triggers
// exactly one token refresh.
package flight

import "sync"

type call struct {
	done chan struct{}
	val  interface{}
	err  error
}

// Group deduplicates in-flight operations by key.
// The zero value is not usable; call NewGroup.
type Group struct {
	mu    sync.Mutex
	calls map[string]*call
}

func NewGroup() *Group {
	return &Group{
		calls: make(map[string]*call),
	}
}

// Do executes fn under key, unless an execution for key is already in
// flight, in which case the caller blocks and receives that execution's
// result. The key is cleared once the execution finishes, so a later
// call starts fresh.
func (g *Group) Do(key string, fn func() (interface{}, error)) (interface{}, error) {
	g.mu.Lock()
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err
	}

	c := &call{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(c.done)

	return c.val, c.err
}
