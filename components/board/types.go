package board

import "context"

// WidgetType identifies how a widget renders its payload.
type WidgetType string

const (
	WidgetDonut WidgetType = "donut"
	WidgetBar   WidgetType = "bar"
	WidgetLine  WidgetType = "line"
	WidgetGauge WidgetType = "gauge"
	WidgetText  WidgetType = "text"
)

// WidgetTypes lists every renderable widget type, in the order the
// custom-widget form presents them.
func WidgetTypes() []WidgetType {
	return []WidgetType{WidgetDonut, WidgetBar, WidgetLine, WidgetGauge, WidgetText}
}

// CategoryType classifies a category and scopes which catalog templates
// the editor offers for it. It is set at creation time and never mutated.
type CategoryType string

const (
	CategoryCSPM    CategoryType = "CSPM"
	CategoryCWPP    CategoryType = "CWPP"
	CategoryImage   CategoryType = "Image"
	CategoryTicket  CategoryType = "Ticket"
	CategoryGeneral CategoryType = "General"
)

// Widget is a single board card, either chart-backed or text-backed.
// TemplateID records which catalog template produced the widget; it is the
// primary reconciliation key, with exact-label match as the fallback for
// untagged records.
type Widget struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Type       WidgetType `json:"type" yaml:"type"`
	TemplateID string     `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Data       *ChartData `json:"data,omitempty" yaml:"data,omitempty"`
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
}

// Clone returns a deep copy so stored widgets never alias caller payloads.
func (w Widget) Clone() Widget {
	w.Data = w.Data.Clone()
	return w
}

// Category is a named, ordered grouping of widget ids.
type Category struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Type    CategoryType `json:"type" yaml:"type"`
	Widgets []string     `json:"widgets" yaml:"widgets"`
}

// Clone returns a deep copy of the category record.
func (c Category) Clone() Category {
	ids := make([]string, len(c.Widgets))
	copy(ids, c.Widgets)
	c.Widgets = ids
	return c
}

// ChartData is the structured payload attached to chart widgets. Exactly one
// variant is set, matching the widget type; bar and line widgets currently
// carry no payload at all.
type ChartData struct {
	Donut *DonutData `json:"donut,omitempty" yaml:"donut,omitempty"`
	Gauge *GaugeData `json:"gauge,omitempty" yaml:"gauge,omitempty"`
}

// Clone deep-copies the payload.
func (d *ChartData) Clone() *ChartData {
	if d == nil {
		return nil
	}
	out := &ChartData{}
	if d.Donut != nil {
		segments := make([]Segment, len(d.Donut.Segments))
		copy(segments, d.Donut.Segments)
		out.Donut = &DonutData{Segments: segments, Total: d.Donut.Total}
	}
	if d.Gauge != nil {
		gauge := *d.Gauge
		out.Gauge = &gauge
	}
	return out
}

// DonutData carries named segment counts plus their total.
type DonutData struct {
	Segments []Segment `json:"segments" yaml:"segments"`
	Total    int       `json:"total" yaml:"total"`
}

// Segment is one labeled slice of a donut chart.
type Segment struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}

// GaugeData summarizes severity counts for scan gauges. The boolean flags
// keep the distinction between vulnerability and image gauges.
type GaugeData struct {
	Critical        int  `json:"critical" yaml:"critical"`
	High            int  `json:"high" yaml:"high"`
	Medium          int  `json:"medium,omitempty" yaml:"medium,omitempty"`
	Low             int  `json:"low,omitempty" yaml:"low,omitempty"`
	Total           int  `json:"total" yaml:"total"`
	Vulnerabilities bool `json:"vulnerabilities,omitempty" yaml:"vulnerabilities,omitempty"`
	Images          bool `json:"images,omitempty" yaml:"images,omitempty"`
}

// Snapshot is a full read of the entity store.
type Snapshot struct {
	Categories []Category        `json:"categories"`
	Widgets    map[string]Widget `json:"widgets"`
}

// Category returns the category with the given id.
func (s Snapshot) Category(id string) (Category, bool) {
	for _, cat := range s.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// EntityStore holds the shared category/widget mappings. Implementations
// guarantee each mutation is atomic; orphan collection after a detach happens
// under the same critical section as the detach itself.
type EntityStore interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	// AddWidget writes the widget record and appends its id to the
	// category's ordered list. Re-attaching an id already present in the
	// list only refreshes the record; callers still must not attach the
	// same id twice without an intervening detach.
	AddWidget(ctx context.Context, widget Widget, categoryID string) error
	// RemoveWidget detaches the id from the category's list and purges the
	// widget record once no category references it.
	RemoveWidget(ctx context.Context, widgetID, categoryID string) error
	AddCategory(ctx context.Context, category Category) error
	// Reset restores the built-in seed state.
	Reset(ctx context.Context) error
}

// BoardEvent describes store changes that transports might care about.
type BoardEvent struct {
	CategoryID string `json:"category_id,omitempty"`
	Widget     Widget `json:"widget,omitempty"`
	Reason     string `json:"reason"`
}

// RefreshHook notifies transports (REST/WebSocket) about board changes.
type RefreshHook interface {
	BoardUpdated(ctx context.Context, event BoardEvent) error
}

// IDGenerator mints identifiers for newly created entities.
type IDGenerator interface {
	WidgetID() string
	CategoryID() string
}
