package brain

import (
	"sort"
	"time"
)

// Atom is the metadata kept for one rendered node of the graph.
type Atom struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Alias       string    `json:"alias,omitempty"`
	Shortcut    string    `json:"shortcut,omitempty"`
	Sharability float64   `json:"sharability"`
	Weight      float64   `json:"weight"`
	Priority    *float64  `json:"priority,omitempty"`
	Created     time.Time `json:"created,omitempty"`
	Types       []string  `json:"types,omitempty"` // inferred by the server
}

// AtomCache maps atom ids to the metadata of the atoms rendered in a view.
type AtomCache map[string]Atom

func (c AtomCache) Get(id string) (Atom, bool) {
	a, ok := c[id]
	return a, ok
}

// Put stores or replaces atoms by id. Atoms without an id are skipped.
func (c AtomCache) Put(atoms ...Atom) {
	for _, a := range atoms {
		if a.ID == "" {
			continue
		}
		c[a.ID] = a
	}
}

func (c AtomCache) Len() int {
	return len(c)
}

func (c AtomCache) Reset() {
	for id := range c {
		delete(c, id)
	}
}

// IDs returns the cached ids in sorted order.
func (c AtomCache) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c AtomCache) clone() AtomCache {
	out := make(AtomCache, len(c))
	for id, a := range c {
		if a.Types != nil {
			a.Types = append([]string(nil), a.Types...)
		}
		if a.Priority != nil {
			p := *a.Priority
			a.Priority = &p
		}
		out[id] = a
	}
	return out
}
