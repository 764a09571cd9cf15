// Package catalog manages the ordered table of category descriptors that
// drives the landing grid. The catalog is loaded once from a YAML file (or
// the built-in default table), is immutable from the components' point of
// view, and emits change events consumed by the development server when the
// file is edited during a serve session.
package catalog

import (
	"sync"
	"time"

	"github.com/conneroisu/docgrid/internal/types"
)

// Catalog holds the ordered category descriptors keyed by slug. Insertion
// order is significant: it determines the visual order of the rendered grid.
type Catalog struct {
	heading  string
	intro    string
	order    []string
	entries  map[string]*types.CategoryDescriptor
	mutex    sync.RWMutex
	watchers []chan types.CatalogEvent
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		order:    make([]string, 0),
		entries:  make(map[string]*types.CategoryDescriptor),
		watchers: make([]chan types.CatalogEvent, 0),
	}
}

// SetHeader sets the section heading and intro copy rendered above the grid.
func (c *Catalog) SetHeader(heading, intro string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.heading = heading
	c.intro = intro
}

// Register adds or updates a descriptor. New slugs append to the end of the
// render order; existing slugs keep their position.
func (c *Catalog) Register(descriptor *types.CategoryDescriptor) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	eventType := types.EventTypeAdded
	if _, exists := c.entries[descriptor.Slug]; exists {
		eventType = types.EventTypeUpdated
	} else {
		c.order = append(c.order, descriptor.Slug)
	}

	c.entries[descriptor.Slug] = descriptor

	c.notify(types.CatalogEvent{
		Type:      eventType,
		Category:  descriptor,
		Timestamp: time.Now(),
	})
}

// Get retrieves a descriptor by slug
func (c *Catalog) Get(slug string) (*types.CategoryDescriptor, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	descriptor, exists := c.entries[slug]
	return descriptor, exists
}

// All returns value copies of every descriptor in render order. Callers
// cannot mutate catalog state through the returned slice.
func (c *Catalog) All() []types.CategoryDescriptor {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make([]types.CategoryDescriptor, 0, len(c.order))
	for _, slug := range c.order {
		if descriptor, exists := c.entries[slug]; exists {
			result = append(result, *descriptor)
		}
	}
	return result
}

// Section returns the header copy and ordered descriptor table as a single
// immutable value ready for rendering.
func (c *Catalog) Section() types.Section {
	c.mutex.RLock()
	heading, intro := c.heading, c.intro
	c.mutex.RUnlock()

	return types.Section{
		Heading:    heading,
		Intro:      intro,
		Categories: c.All(),
	}
}

// Remove removes a descriptor from the catalog
func (c *Catalog) Remove(slug string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	descriptor, exists := c.entries[slug]
	if !exists {
		return
	}

	delete(c.entries, slug)
	for i, s := range c.order {
		if s == slug {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	c.notify(types.CatalogEvent{
		Type:      types.EventTypeRemoved,
		Category:  descriptor,
		Timestamp: time.Now(),
	})
}

// Replace swaps the entire catalog contents for a freshly loaded section,
// emitting added/updated/removed events for the difference. The dev server
// uses this when the catalog file changes on disk.
func (c *Catalog) Replace(section types.Section) {
	c.mutex.Lock()

	c.heading = section.Heading
	c.intro = section.Intro

	old := c.entries
	c.order = make([]string, 0, len(section.Categories))
	c.entries = make(map[string]*types.CategoryDescriptor, len(section.Categories))

	events := make([]types.CatalogEvent, 0, len(section.Categories))
	now := time.Now()

	for i := range section.Categories {
		descriptor := section.Categories[i]
		c.order = append(c.order, descriptor.Slug)
		c.entries[descriptor.Slug] = &descriptor

		eventType := types.EventTypeAdded
		if _, existed := old[descriptor.Slug]; existed {
			eventType = types.EventTypeUpdated
		}
		events = append(events, types.CatalogEvent{
			Type:      eventType,
			Category:  &descriptor,
			Timestamp: now,
		})
	}

	for slug, descriptor := range old {
		if _, kept := c.entries[slug]; !kept {
			events = append(events, types.CatalogEvent{
				Type:      types.EventTypeRemoved,
				Category:  descriptor,
				Timestamp: now,
			})
		}
	}

	for _, event := range events {
		c.notify(event)
	}
	c.mutex.Unlock()
}

// Watch returns a channel that receives catalog events
func (c *Catalog) Watch() <-chan types.CatalogEvent {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ch := make(chan types.CatalogEvent, 100)
	c.watchers = append(c.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (c *Catalog) UnWatch(ch <-chan types.CatalogEvent) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i, watcher := range c.watchers {
		if watcher == ch {
			close(watcher)
			c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered descriptors
func (c *Catalog) Count() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// notify sends an event to all watchers without blocking. Callers must hold
// the write lock.
func (c *Catalog) notify(event types.CatalogEvent) {
	for _, watcher := range c.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
