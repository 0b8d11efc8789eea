package board

type templateEntry struct {
	group    CategoryType
	template Template
	def      *TemplateDefault
}

// The built-in catalog. Template ids are stable; labels double as widget
// titles at creation time, which is why the inverse lookup in the session
// can fall back to exact label match for untagged records.
var defaultTemplates = []templateEntry{
	{
		group:    CategoryCSPM,
		template: Template{ID: "cloud-accounts", Label: "Cloud Accounts"},
		def: &TemplateDefault{
			Type: WidgetDonut,
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "connected", Value: 2},
					{Label: "notConnected", Value: 2},
				},
				Total: 4,
			}},
		},
	},
	{
		group:    CategoryCSPM,
		template: Template{ID: "cloud-account-risk", Label: "Cloud Account Risk Assessment"},
		def: &TemplateDefault{
			Type: WidgetDonut,
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "passed", Value: 7753},
					{Label: "failed", Value: 1689},
					{Label: "warning", Value: 681},
					{Label: "notAvailable", Value: 36},
				},
				Total: 9659,
			}},
		},
	},
	{
		group:    CategoryCSPM,
		template: Template{ID: "compliance-posture", Label: "Compliance Posture"},
	},
	{
		group:    CategoryCSPM,
		template: Template{ID: "security-assessment", Label: "Security Assessment"},
	},
	{
		group:    CategoryCWPP,
		template: Template{ID: "namespace-alerts", Label: "Top 5 Namespace Specific Alerts"},
		def:      &TemplateDefault{Type: WidgetBar},
	},
	{
		group:    CategoryCWPP,
		template: Template{ID: "workload-alerts", Label: "Workload Alerts"},
		def:      &TemplateDefault{Type: WidgetLine},
	},
	{
		group:    CategoryCWPP,
		template: Template{ID: "runtime-alerts", Label: "Runtime Alerts"},
	},
	{
		group:    CategoryCWPP,
		template: Template{ID: "cluster-overview", Label: "Cluster Overview"},
	},
	{
		group:    CategoryImage,
		template: Template{ID: "image-risk", Label: "Image Risk Assessment"},
		def: &TemplateDefault{
			Type: WidgetGauge,
			Data: &ChartData{Gauge: &GaugeData{
				Critical:        9,
				High:            150,
				Medium:          460,
				Low:             851,
				Total:           1470,
				Vulnerabilities: true,
			}},
		},
	},
	{
		group:    CategoryImage,
		template: Template{ID: "image-security", Label: "Image Security Issues"},
		def: &TemplateDefault{
			Type: WidgetGauge,
			Data: &ChartData{Gauge: &GaugeData{
				Critical: 2,
				High:     2,
				Total:    2,
				Images:   true,
			}},
		},
	},
	{
		group:    CategoryImage,
		template: Template{ID: "scan-results", Label: "Scan Results"},
	},
	{
		group:    CategoryImage,
		template: Template{ID: "vulnerabilities", Label: "Vulnerabilities"},
	},
	{
		group:    CategoryTicket,
		template: Template{ID: "ticket-summary", Label: "Ticket Summary"},
		def: &TemplateDefault{
			Type: WidgetDonut,
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "open", Value: 24},
					{Label: "inProgress", Value: 18},
					{Label: "resolved", Value: 42},
					{Label: "closed", Value: 16},
				},
				Total: 100,
			}},
		},
	},
	{
		group:    CategoryTicket,
		template: Template{ID: "open-tickets", Label: "Open Tickets"},
		def: &TemplateDefault{
			Type: WidgetDonut,
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "critical", Value: 5},
					{Label: "high", Value: 8},
					{Label: "medium", Value: 7},
					{Label: "low", Value: 4},
				},
				Total: 24,
			}},
		},
	},
	{
		group:    CategoryTicket,
		template: Template{ID: "ticket-resolution", Label: "Ticket Resolution Time"},
		def:      &TemplateDefault{Type: WidgetBar},
	},
	{
		group:    CategoryTicket,
		template: Template{ID: "tickets-category", Label: "Tickets by Category"},
		def:      &TemplateDefault{Type: WidgetBar},
	},
}

// SeedWidgets returns the built-in widget records. Note the seeded
// Image Risk Assessment gauge predates the medium/low counts the catalog
// default now carries; the fixture is kept byte-for-byte stable.
func SeedWidgets() map[string]Widget {
	widgets := []Widget{
		{
			ID:         "widget-1",
			Title:      "Cloud Accounts",
			Type:       WidgetDonut,
			TemplateID: "cloud-accounts",
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "connected", Value: 2},
					{Label: "notConnected", Value: 2},
				},
				Total: 4,
			}},
		},
		{
			ID:         "widget-2",
			Title:      "Cloud Account Risk Assessment",
			Type:       WidgetDonut,
			TemplateID: "cloud-account-risk",
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "passed", Value: 7753},
					{Label: "failed", Value: 1689},
					{Label: "warning", Value: 681},
					{Label: "notAvailable", Value: 36},
				},
				Total: 9659,
			}},
		},
		{
			ID:         "widget-3",
			Title:      "Top 5 Namespace Specific Alerts",
			Type:       WidgetBar,
			TemplateID: "namespace-alerts",
		},
		{
			ID:         "widget-4",
			Title:      "Workload Alerts",
			Type:       WidgetLine,
			TemplateID: "workload-alerts",
		},
		{
			ID:         "widget-5",
			Title:      "Image Risk Assessment",
			Type:       WidgetGauge,
			TemplateID: "image-risk",
			Data: &ChartData{Gauge: &GaugeData{
				Critical:        9,
				High:            150,
				Total:           1470,
				Vulnerabilities: true,
			}},
		},
		{
			ID:         "widget-6",
			Title:      "Image Security Issues",
			Type:       WidgetGauge,
			TemplateID: "image-security",
			Data: &ChartData{Gauge: &GaugeData{
				Critical: 2,
				High:     2,
				Total:    2,
				Images:   true,
			}},
		},
		{
			ID:         "widget-7",
			Title:      "Ticket Summary",
			Type:       WidgetDonut,
			TemplateID: "ticket-summary",
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "open", Value: 24},
					{Label: "inProgress", Value: 18},
					{Label: "resolved", Value: 42},
					{Label: "closed", Value: 16},
				},
				Total: 100,
			}},
		},
		{
			ID:         "widget-8",
			Title:      "Open Tickets",
			Type:       WidgetDonut,
			TemplateID: "open-tickets",
			Data: &ChartData{Donut: &DonutData{
				Segments: []Segment{
					{Label: "critical", Value: 5},
					{Label: "high", Value: 8},
					{Label: "medium", Value: 7},
					{Label: "low", Value: 4},
				},
				Total: 24,
			}},
		},
		{
			ID:         "widget-9",
			Title:      "Ticket Resolution Time",
			Type:       WidgetBar,
			TemplateID: "ticket-resolution",
		},
		{
			ID:         "widget-10",
			Title:      "Tickets by Category",
			Type:       WidgetBar,
			TemplateID: "tickets-category",
		},
	}
	out := make(map[string]Widget, len(widgets))
	for _, w := range widgets {
		out[w.ID] = w
	}
	return out
}

// SeedCategories returns the built-in category records.
func SeedCategories() []Category {
	return []Category{
		{
			ID:      "category-1",
			Name:    "CSPM Executive Dashboard",
			Type:    CategoryCSPM,
			Widgets: []string{"widget-1", "widget-2"},
		},
		{
			ID:      "category-2",
			Name:    "CWPP Dashboard",
			Type:    CategoryCWPP,
			Widgets: []string{"widget-3", "widget-4"},
		},
		{
			ID:      "category-3",
			Name:    "Registry Scan",
			Type:    CategoryImage,
			Widgets: []string{"widget-5", "widget-6"},
		},
		{
			ID:      "category-4",
			Name:    "Ticket Management",
			Type:    CategoryTicket,
			Widgets: []string{"widget-7", "widget-8", "widget-9", "widget-10"},
		},
	}
}

// SeedSnapshot builds the full seed state as a fresh deep copy.
func SeedSnapshot() Snapshot {
	return Snapshot{
		Categories: SeedCategories(),
		Widgets:    SeedWidgets(),
	}
}
