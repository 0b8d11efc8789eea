package board

import (
	"context"
	"strings"
)

// Tab identifies one pane of the editor side panel. Catalog tabs share
// their name with a category type; the custom tab hosts the free-form
// widget builder.
type Tab string

// TabCustom is the custom-widget builder tab.
const TabCustom Tab = "Custom"

// TabForType returns the catalog tab for a category type.
func TabForType(t CategoryType) Tab { return Tab(t) }

// TabDescription returns the descriptive copy shown under a tab header.
func TabDescription(tab Tab) string {
	switch tab {
	case TabCustom:
		return "Create a custom widget with your own title and content."
	case Tab(CategoryCSPM):
		return "Cloud Security Posture Management widgets provide insights into your cloud security status."
	case Tab(CategoryCWPP):
		return "Cloud Workload Protection Platform widgets show metrics related to your workloads and containers."
	case Tab(CategoryImage):
		return "Image scanning widgets display vulnerability and security issues found in container images."
	case Tab(CategoryTicket):
		return "Ticket management widgets help track and manage security and compliance issues."
	}
	return ""
}

// CustomDraft holds the custom-widget form fields.
type CustomDraft struct {
	Title   string     `json:"title"`
	Type    WidgetType `json:"type"`
	Content string     `json:"content"`
}

// OpenRequest describes an editor invocation.
type OpenRequest struct {
	// CategoryID is the invoking category. It fixes the target in the
	// restricted modes and is ignored in the global flow.
	CategoryID string `json:"category_id"`
	// Restriction carries the invoking category's type for the restricted
	// flows; leave empty for the global flow.
	Restriction CategoryType `json:"restriction,omitempty"`
}

// Session is the transient editor state for a single opening: active tab,
// checked templates, search text and the draft forms. It is rebuilt from
// scratch by Service.OpenEditor and discarded on close; nothing here
// touches the store until Confirm.
type Session struct {
	svc         *Service
	mode        Mode
	restriction CategoryType
	categoryID  string

	tab       Tab
	checked   []string
	search    string
	selected  string
	createNew bool
	newName   string
	custom    CustomDraft
	closed    bool
}

// Mode returns the restriction regime resolved at open time.
func (s *Session) Mode() Mode { return s.mode }

// ActiveTab returns the currently selected tab.
func (s *Session) ActiveTab() Tab { return s.tab }

// Tabs lists the tabs this session may show. The typed mode is locked to a
// single tab; every other mode shows all catalog groups plus the custom tab.
func (s *Session) Tabs() []Tab {
	if s.mode == ModeTyped {
		return []Tab{TabForType(s.restriction)}
	}
	groups := s.svc.opts.Catalog.Groups()
	tabs := make([]Tab, 0, len(groups)+1)
	for _, g := range groups {
		tabs = append(tabs, TabForType(g))
	}
	return append(tabs, TabCustom)
}

// ChangeTab switches the active pane and clears the search text. In the
// typed mode any tab other than the locked one is a no-op. In the global
// flow a catalog tab re-resolves the matching target category (cleared when
// none matches); the checked set is kept as is, it is never re-seeded from
// the store within one opening.
func (s *Session) ChangeTab(ctx context.Context, tab Tab) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.mode == ModeTyped && tab != TabForType(s.restriction) {
		return nil
	}
	s.tab = tab
	s.search = ""
	if s.mode == ModeGlobal && tab != TabCustom {
		snap, err := s.svc.opts.Store.Snapshot(ctx)
		if err != nil {
			return err
		}
		s.selected = matchCategory(snap.Categories, CategoryType(tab))
		s.createNew = false
	}
	return nil
}

// Toggle flips a template id in the checked set. Checked order is
// preserved; it becomes the creation order at confirm time.
func (s *Session) Toggle(templateID string) {
	if s.closed {
		return
	}
	for i, id := range s.checked {
		if id == templateID {
			s.checked = append(s.checked[:i], s.checked[i+1:]...)
			return
		}
	}
	s.checked = append(s.checked, templateID)
}

// Checked returns the checked template ids in toggle order.
func (s *Session) Checked() []string {
	out := make([]string, len(s.checked))
	copy(out, s.checked)
	return out
}

// SetChecked replaces the checked set wholesale. Transports that submit the
// final selection in one request use this instead of replaying toggles.
func (s *Session) SetChecked(templateIDs []string) {
	if s.closed {
		return
	}
	s.checked = s.checked[:0]
	seen := map[string]bool{}
	for _, id := range templateIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		s.checked = append(s.checked, id)
	}
}

// IsChecked reports membership in the checked set.
func (s *Session) IsChecked(templateID string) bool {
	for _, id := range s.checked {
		if id == templateID {
			return true
		}
	}
	return false
}

// SetSearch updates the in-panel search text.
func (s *Session) SetSearch(q string) {
	if !s.closed {
		s.search = q
	}
}

// VisibleTemplates returns the active tab's templates filtered by the
// search text (case-insensitive substring over labels). The custom tab has
// no templates.
func (s *Session) VisibleTemplates() []Template {
	if s.tab == TabCustom {
		return nil
	}
	templates := s.svc.opts.Catalog.Templates(CategoryType(s.tab))
	if s.search == "" {
		return templates
	}
	needle := strings.ToLower(s.search)
	out := templates[:0]
	for _, tpl := range templates {
		if strings.Contains(strings.ToLower(tpl.Label), needle) {
			out = append(out, tpl)
		}
	}
	return out
}

// SelectCategory picks an explicit target category (global flow only).
func (s *Session) SelectCategory(categoryID string) {
	if s.closed || s.mode != ModeGlobal {
		return
	}
	s.selected = categoryID
	s.createNew = false
}

// ChooseNewCategory switches the global flow to inline category creation.
func (s *Session) ChooseNewCategory(name string) {
	if s.closed || s.mode != ModeGlobal {
		return
	}
	s.createNew = true
	s.selected = ""
	s.newName = name
}

// SetCustomDraft replaces the custom-widget form fields. A zero type keeps
// the text default.
func (s *Session) SetCustomDraft(draft CustomDraft) {
	if s.closed {
		return
	}
	if draft.Type == "" {
		draft.Type = WidgetText
	}
	s.custom = draft
}

// TargetCategoryID is the effective target: the invoking category in the
// restricted modes, the selected category in the global flow, and empty
// while inline creation is pending.
func (s *Session) TargetCategoryID() string {
	if s.mode == ModeTyped || s.mode == ModeGeneral {
		return s.categoryID
	}
	if s.createNew {
		return ""
	}
	return s.selected
}

// CanConfirm mirrors the confirm-button enablement: it is false whenever
// Confirm would be rejected for a missing target, blank new-category name
// or blank custom title.
func (s *Session) CanConfirm() bool {
	if s.closed {
		return false
	}
	if s.tab == TabCustom && strings.TrimSpace(s.custom.Title) == "" {
		return false
	}
	if s.mode == ModeGlobal {
		if s.createNew {
			return strings.TrimSpace(s.newName) != ""
		}
		return s.selected != ""
	}
	return true
}

// Close discards the session. No partial state survives; a closed session
// rejects every further operation.
func (s *Session) Close() { s.closed = true }

// Closed reports whether the session has been discarded.
func (s *Session) Closed() bool { return s.closed }

// matchCategory returns the first category of the given type.
func matchCategory(categories []Category, t CategoryType) string {
	for _, cat := range categories {
		if cat.Type == t {
			return cat.ID
		}
	}
	return ""
}
