package board

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is the default EntityStore: a concurrency-safe in-memory
// mapping of categories and widgets, starting from the built-in seed.
// Mutations are applied atomically under one lock; orphan collection after
// a detach happens inside the same critical section, so subscribers never
// observe a dangling widget record.
type MemoryStore struct {
	mu         sync.RWMutex
	categories []Category
	widgets    map[string]Widget
	subMu      sync.RWMutex
	subs       map[int]chan BoardEvent
	next       int
}

// NewMemoryStore creates a store preloaded with the seed state.
func NewMemoryStore() *MemoryStore {
	seed := SeedSnapshot()
	return &MemoryStore{
		categories: seed.Categories,
		widgets:    seed.Widgets,
		subs:       make(map[int]chan BoardEvent),
	}
}

// Snapshot returns a deep copy of the full store state.
func (s *MemoryStore) Snapshot(context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *MemoryStore) snapshotLocked() Snapshot {
	out := Snapshot{
		Categories: make([]Category, len(s.categories)),
		Widgets:    make(map[string]Widget, len(s.widgets)),
	}
	for i, cat := range s.categories {
		out.Categories[i] = cat.Clone()
	}
	for id, w := range s.widgets {
		out.Widgets[id] = w.Clone()
	}
	return out
}

// AddWidget writes the widget record and appends its id to the category's
// ordered widget list. An id already present in the list keeps a single
// membership; the record is refreshed either way.
func (s *MemoryStore) AddWidget(_ context.Context, widget Widget, categoryID string) error {
	if widget.ID == "" {
		return fmt.Errorf("board: widget id is required")
	}
	s.mu.Lock()
	idx := s.categoryIndex(categoryID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("board: category %s not found", categoryID)
	}
	s.widgets[widget.ID] = widget.Clone()
	if !contains(s.categories[idx].Widgets, widget.ID) {
		s.categories[idx].Widgets = append(s.categories[idx].Widgets, widget.ID)
	}
	s.mu.Unlock()
	s.publish(BoardEvent{CategoryID: categoryID, Widget: widget, Reason: "add"})
	return nil
}

// RemoveWidget detaches the id from the category's list. When no category
// references the id afterwards, the widget record is purged in the same
// operation. Detaching an id the category does not hold is a silent no-op.
func (s *MemoryStore) RemoveWidget(_ context.Context, widgetID, categoryID string) error {
	s.mu.Lock()
	idx := s.categoryIndex(categoryID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("board: category %s not found", categoryID)
	}
	before := len(s.categories[idx].Widgets)
	s.categories[idx].Widgets = remove(s.categories[idx].Widgets, widgetID)
	detached := len(s.categories[idx].Widgets) != before
	var removed Widget
	if detached {
		referenced := false
		for _, cat := range s.categories {
			if contains(cat.Widgets, widgetID) {
				referenced = true
				break
			}
		}
		if !referenced {
			removed = s.widgets[widgetID]
			delete(s.widgets, widgetID)
		}
	}
	s.mu.Unlock()
	if detached {
		if removed.ID == "" {
			removed = Widget{ID: widgetID}
		}
		s.publish(BoardEvent{CategoryID: categoryID, Widget: removed, Reason: "remove"})
	}
	return nil
}

// AddCategory appends a category record.
func (s *MemoryStore) AddCategory(_ context.Context, category Category) error {
	if category.ID == "" {
		return fmt.Errorf("board: category id is required")
	}
	s.mu.Lock()
	if s.categoryIndex(category.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("board: category %s already exists", category.ID)
	}
	if category.Widgets == nil {
		category.Widgets = []string{}
	}
	s.categories = append(s.categories, category.Clone())
	s.mu.Unlock()
	s.publish(BoardEvent{CategoryID: category.ID, Reason: "category"})
	return nil
}

// Reset restores the built-in seed state.
func (s *MemoryStore) Reset(context.Context) error {
	seed := SeedSnapshot()
	s.mu.Lock()
	s.categories = seed.Categories
	s.widgets = seed.Widgets
	s.mu.Unlock()
	s.publish(BoardEvent{Reason: "reset"})
	return nil
}

// Subscribe returns a channel of store change events and a cancel func.
// Slow subscribers drop events rather than block mutations.
func (s *MemoryStore) Subscribe() (<-chan BoardEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.next
	s.next++
	ch := make(chan BoardEvent, 8)
	s.subs[id] = ch
	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *MemoryStore) publish(event BoardEvent) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (s *MemoryStore) categoryIndex(id string) int {
	for i, cat := range s.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
