package pipeline

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mealpick-core/server/internal/agent/model"
)

// Entry is one specialist finding on the blackboard.
type Entry struct {
	Role       model.Role
	Content    string
	Degraded   bool
	Incomplete bool
}

// Blackboard is the shared finding store of a single run. Each key is
// write-once; a second write to the same key is a programming error and is
// rejected rather than overwritten.
type Blackboard struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
}

func NewBlackboard() *Blackboard {
	return &Blackboard{entries: make(map[string]Entry)}
}

// Write records a finding under key. Writing the same key twice fails.
func (b *Blackboard) Write(key string, e Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.entries[key]; exists {
		return fmt.Errorf("blackboard key %q already written", key)
	}
	b.entries[key] = e
	b.order = append(b.order, key)
	return nil
}

// Read returns the entry under key, if any.
func (b *Blackboard) Read(key string) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[key]
	return e, ok
}

// Entries returns all findings in write order.
func (b *Blackboard) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entry, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.entries[key])
	}
	return out
}

// RenderFor formats the findings a task is allowed to read, for inclusion in
// its system prompt. Degraded findings are skipped; incomplete ones are
// labelled so downstream roles can weigh them.
func (b *Blackboard) RenderFor(reads []model.Role) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	for _, role := range reads {
		e, ok := b.entries[string(role)]
		if !ok || e.Degraded {
			continue
		}
		label := string(e.Role)
		if e.Incomplete {
			label += " (partial, some lookups failed)"
		}
		fmt.Fprintf(&sb, "[%s]\n%s\n\n", label, e.Content)
	}
	return strings.TrimSpace(sb.String())
}

// RenderAll formats every finding for the final aggregation prompt.
func (b *Blackboard) RenderAll() string {
	b.mu.RLock()
	reads := make([]model.Role, 0, len(b.order))
	for _, key := range b.order {
		reads = append(reads, b.entries[key].Role)
	}
	b.mu.RUnlock()
	return b.RenderFor(reads)
}
