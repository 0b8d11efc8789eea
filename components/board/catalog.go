package board

import (
	"fmt"
	"sync"
)

// Template is a catalog-defined preset that produces a specific widget
// title (and optionally a default chart payload) when added to a category.
type Template struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// TemplateDefault is the widget type and payload applied when a template is
// first materialized. It is never re-applied to existing widgets.
type TemplateDefault struct {
	Type WidgetType
	Data *ChartData
}

// CatalogHook lets packages register template packs during init().
type CatalogHook func(c *Catalog) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CatalogHook
)

// RegisterCatalogHook registers a hook executed against new catalogs.
func RegisterCatalogHook(h CatalogHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Catalog is the registry of selectable widget templates, grouped by
// category type. Reads vastly outnumber writes; registration normally
// happens once at startup.
type Catalog struct {
	mu       sync.RWMutex
	groups   map[CategoryType][]Template
	order    []CategoryType
	defaults map[string]TemplateDefault
	byID     map[string]Template
	byLabel  map[string]Template
}

// NewCatalog builds a catalog with the built-in templates and applies
// global hooks.
func NewCatalog() *Catalog {
	c := &Catalog{
		groups:   map[CategoryType][]Template{},
		defaults: map[string]TemplateDefault{},
		byID:     map[string]Template{},
		byLabel:  map[string]Template{},
	}
	for _, entry := range defaultTemplates {
		_ = c.Register(entry.group, entry.template, entry.def)
	}
	_ = c.ApplyHooks()
	return c
}

// ApplyHooks executes registered catalog hooks.
func (c *Catalog) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a template under a category type group. The default may be
// nil; materialization then falls back to a donut widget with no payload.
func (c *Catalog) Register(group CategoryType, tpl Template, def *TemplateDefault) error {
	if tpl.ID == "" {
		return fmt.Errorf("board: template id is required")
	}
	if tpl.Label == "" {
		return fmt.Errorf("board: template %s label is required", tpl.ID)
	}
	if group == "" || group == CategoryGeneral {
		return fmt.Errorf("board: template %s requires a typed group", tpl.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[tpl.ID]; ok {
		return fmt.Errorf("board: template %s already registered", tpl.ID)
	}
	if _, ok := c.groups[group]; !ok {
		c.order = append(c.order, group)
	}
	c.groups[group] = append(c.groups[group], tpl)
	c.byID[tpl.ID] = tpl
	c.byLabel[tpl.Label] = tpl
	if def != nil {
		c.defaults[tpl.ID] = TemplateDefault{Type: def.Type, Data: def.Data.Clone()}
	}
	return nil
}

// Groups returns the category types that have templates, in registration
// order.
func (c *Catalog) Groups() []CategoryType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CategoryType, len(c.order))
	copy(out, c.order)
	return out
}

// Templates returns the templates registered under a category type.
func (c *Catalog) Templates(group CategoryType) []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	src := c.groups[group]
	out := make([]Template, len(src))
	copy(out, src)
	return out
}

// HasTemplates reports whether any template is registered for the type.
func (c *Catalog) HasTemplates(group CategoryType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.groups[group]) > 0
}

// Template fetches a template by id.
func (c *Catalog) Template(id string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tpl, ok := c.byID[id]
	return tpl, ok
}

// TemplateByLabel resolves a template by exact label match.
func (c *Catalog) TemplateByLabel(label string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tpl, ok := c.byLabel[label]
	return tpl, ok
}

// Default returns the creation-time widget type and payload for a template.
// Templates without a registered default produce a donut widget with no
// payload.
func (c *Catalog) Default(id string) TemplateDefault {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if def, ok := c.defaults[id]; ok {
		return TemplateDefault{Type: def.Type, Data: def.Data.Clone()}
	}
	return TemplateDefault{Type: WidgetDonut}
}

// TemplateFor maps a store widget back to the template that produced it.
// The persisted template id wins; exact label match covers legacy records.
// Custom widgets and widgets whose title matches no label resolve to
// nothing and stay invisible to reconciliation.
func (c *Catalog) TemplateFor(w Widget) (Template, bool) {
	if w.TemplateID != "" {
		if tpl, ok := c.Template(w.TemplateID); ok {
			return tpl, true
		}
	}
	return c.TemplateByLabel(w.Title)
}
