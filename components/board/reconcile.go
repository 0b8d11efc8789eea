package board

import (
	"context"
	"fmt"
	"strings"
)

// Plan is the result of one confirmed reconciliation: the widgets created
// and removed, plus non-fatal warnings for skipped additions.
type Plan struct {
	CategoryID string   `json:"category_id"`
	Added      []Widget `json:"added,omitempty"`
	Removed    []Widget `json:"removed,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Confirm applies the session's selection to the store and closes the
// session. The whole sequence runs as one logical batch: preconditions are
// validated before the first mutation, removals are applied before
// additions, and a duplicate-label conflict skips the single addition with
// a warning while the rest of the batch still lands.
func (s *Service) Confirm(ctx context.Context, sess *Session) (Plan, error) {
	if sess == nil || sess.closed {
		return Plan{}, ErrSessionClosed
	}
	if _, err := s.store(); err != nil {
		return Plan{}, err
	}

	// Validate before any mutation so a failing confirm never leaves a
	// half-created category behind.
	if sess.tab == TabCustom {
		if sess.mode == ModeTyped {
			return Plan{}, ErrCustomRestricted
		}
		if strings.TrimSpace(sess.custom.Title) == "" {
			return Plan{}, ErrBlankTitle
		}
	}

	target, err := s.resolveTarget(ctx, sess)
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	if sess.tab == TabCustom {
		plan, err = s.confirmCustom(ctx, sess, target)
	} else {
		plan, err = s.reconcile(ctx, sess, target)
	}
	if err != nil {
		return Plan{}, err
	}

	s.record(ctx, "board.editor.confirm", map[string]any{
		"category_id": plan.CategoryID,
		"mode":        sess.mode.String(),
		"added":       len(plan.Added),
		"removed":     len(plan.Removed),
		"warnings":    len(plan.Warnings),
	})
	sess.Close()
	return plan, nil
}

// resolveTarget determines the final target category id: the fixed
// category in the restricted modes, otherwise the explicit selection or a
// freshly allocated category when the user opted to create one inline.
func (s *Service) resolveTarget(ctx context.Context, sess *Session) (string, error) {
	if sess.mode == ModeTyped || sess.mode == ModeGeneral {
		if sess.categoryID == "" {
			return "", ErrNoTargetCategory
		}
		return sess.categoryID, nil
	}
	if sess.createNew {
		return s.CreateCategory(ctx, sess.newName)
	}
	if sess.selected == "" {
		return "", ErrNoTargetCategory
	}
	return sess.selected, nil
}

// confirmCustom builds a single widget from the draft and attaches it. No
// diffing happens for custom submissions.
func (s *Service) confirmCustom(ctx context.Context, sess *Session, target string) (Plan, error) {
	widget := Widget{
		ID:      s.opts.IDs.WidgetID(),
		Title:   sess.custom.Title,
		Type:    sess.custom.Type,
		Content: sess.custom.Content,
	}
	if widget.Type == "" {
		widget.Type = WidgetText
	}
	if err := s.AddWidget(ctx, widget, target); err != nil {
		return Plan{}, err
	}
	return Plan{CategoryID: target, Added: []Widget{widget}}, nil
}

// reconcile diffs the checked template set against the target category's
// current templates and applies the delta. The current set is re-derived
// from the store here, not taken from the session's open-time snapshot, so
// changes made elsewhere while the panel was open are honored.
func (s *Service) reconcile(ctx context.Context, sess *Session, target string) (Plan, error) {
	snap, err := s.opts.Store.Snapshot(ctx)
	if err != nil {
		return Plan{}, err
	}
	cat, ok := snap.Category(target)
	if !ok {
		return Plan{}, ErrNoTargetCategory
	}

	// Current template set, in list order, with the widget that backs each
	// template so removals can locate the exact record.
	var current []string
	byTemplate := map[string]Widget{}
	for _, widgetID := range cat.Widgets {
		w, ok := snap.Widgets[widgetID]
		if !ok {
			continue
		}
		tpl, ok := s.opts.Catalog.TemplateFor(w)
		if !ok {
			continue
		}
		if _, dup := byTemplate[tpl.ID]; dup {
			continue
		}
		byTemplate[tpl.ID] = w
		current = append(current, tpl.ID)
	}

	toAdd, toRemove := diffSelection(current, sess.checked)
	removedWidgets := map[string]bool{}
	for _, tplID := range toRemove {
		removedWidgets[byTemplate[tplID].ID] = true
	}

	plan := Plan{CategoryID: target}

	// Removals first, so a replace producing the same label never trips
	// the duplicate guard below.
	for _, tplID := range toRemove {
		w := byTemplate[tplID]
		if err := s.RemoveWidget(ctx, w.ID, target); err != nil {
			return Plan{}, err
		}
		plan.Removed = append(plan.Removed, w)
	}

	// Labels still present in the category after the removals. Two
	// templates may share a label, and the category must never end up
	// with two widgets carrying the same title.
	presentLabels := map[string]bool{}
	for _, widgetID := range cat.Widgets {
		if removedWidgets[widgetID] {
			continue
		}
		if w, ok := snap.Widgets[widgetID]; ok {
			presentLabels[w.Title] = true
		}
	}

	for _, tplID := range toAdd {
		tpl, ok := s.opts.Catalog.Template(tplID)
		if !ok {
			warning := fmt.Sprintf("unknown template %q skipped", tplID)
			plan.Warnings = append(plan.Warnings, warning)
			s.warn(ctx, warning)
			continue
		}
		if presentLabels[tpl.Label] {
			warning := fmt.Sprintf("widget %q already exists, skipping", tpl.Label)
			plan.Warnings = append(plan.Warnings, warning)
			s.warn(ctx, warning)
			continue
		}
		presentLabels[tpl.Label] = true
		def := s.opts.Catalog.Default(tplID)
		widget := Widget{
			ID:         s.opts.IDs.WidgetID(),
			Title:      tpl.Label,
			Type:       def.Type,
			TemplateID: tpl.ID,
			Data:       def.Data,
		}
		if err := s.AddWidget(ctx, widget, target); err != nil {
			return Plan{}, err
		}
		plan.Added = append(plan.Added, widget)
	}

	return plan, nil
}

// diffSelection computes checked−current (additions, in checked order) and
// current−checked (removals, in list order).
func diffSelection(current, checked []string) (toAdd, toRemove []string) {
	currentSet := map[string]bool{}
	for _, id := range current {
		currentSet[id] = true
	}
	checkedSet := map[string]bool{}
	for _, id := range checked {
		checkedSet[id] = true
	}
	for _, id := range checked {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !checkedSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
