package board

import (
	"context"
	"errors"
	"strings"
)

var (
	errMissingStore = errors.New("board: entity store not configured")

	// ErrSessionClosed rejects operations on a discarded editor session.
	ErrSessionClosed = errors.New("board: editor session is closed")
	// ErrNoTargetCategory aborts a confirm that resolves no target.
	ErrNoTargetCategory = errors.New("board: no target category resolved")
	// ErrBlankTitle rejects custom widgets without a title.
	ErrBlankTitle = errors.New("board: custom widget title is required")
	// ErrBlankCategoryName rejects inline category creation without a name.
	ErrBlankCategoryName = errors.New("board: category name is required")
	// ErrCustomRestricted rejects custom submissions from the typed mode.
	ErrCustomRestricted = errors.New("board: custom widgets are not allowed for typed categories")
)

// Options configures the board Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Store       EntityStore
	Catalog     *Catalog
	IDs         IDGenerator
	RefreshHook RefreshHook
	Telemetry   Telemetry
}

// Service orchestrates the widget-selection editor on top of the entity
// store: it opens sessions, reconciles confirmed selections and owns the
// direct add/remove/reset operations the board view dispatches.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Catalog exposes the template catalog backing this service.
func (s *Service) Catalog() *Catalog { return s.opts.Catalog }

// OpenEditor resolves the editor mode and builds a fresh session: tab per
// mode, drafts reset, and the checked set seeded from the effective target
// category. The resolution runs on every open; nothing is memoized across
// openings.
func (s *Service) OpenEditor(ctx context.Context, req OpenRequest) (*Session, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	mode := ResolveMode(s.opts.Catalog, req.Restriction)
	sess := &Session{
		svc:         s,
		mode:        mode,
		restriction: req.Restriction,
		categoryID:  req.CategoryID,
		custom:      CustomDraft{Type: WidgetText},
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeTyped:
		sess.tab = TabForType(req.Restriction)
	case ModeGeneral:
		sess.tab = TabCustom
	default:
		groups := s.opts.Catalog.Groups()
		if len(groups) > 0 {
			sess.tab = TabForType(groups[0])
			sess.selected = matchCategory(snap.Categories, groups[0])
		} else {
			sess.tab = TabCustom
		}
	}

	if target := sess.TargetCategoryID(); target != "" {
		sess.checked = s.templateIDsIn(snap, target)
	}

	s.record(ctx, "board.editor.open", map[string]any{
		"mode":        mode.String(),
		"category_id": req.CategoryID,
	})
	return sess, nil
}

// templateIDsIn maps a category's widgets back to catalog template ids,
// preserving list order and dropping duplicates. Widgets that resolve to no
// template (custom widgets, unlabeled records) are silently excluded.
func (s *Service) templateIDsIn(snap Snapshot, categoryID string) []string {
	cat, ok := snap.Category(categoryID)
	if !ok {
		return nil
	}
	var ids []string
	seen := map[string]bool{}
	for _, widgetID := range cat.Widgets {
		w, ok := snap.Widgets[widgetID]
		if !ok {
			continue
		}
		tpl, ok := s.opts.Catalog.TemplateFor(w)
		if !ok || seen[tpl.ID] {
			continue
		}
		seen[tpl.ID] = true
		ids = append(ids, tpl.ID)
	}
	return ids
}

// AddWidget writes a widget into a category and notifies transports.
func (s *Service) AddWidget(ctx context.Context, widget Widget, categoryID string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if categoryID == "" {
		return ErrNoTargetCategory
	}
	if widget.ID == "" {
		widget.ID = s.opts.IDs.WidgetID()
	}
	if err := store.AddWidget(ctx, widget, categoryID); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.BoardUpdated(ctx, BoardEvent{
		CategoryID: categoryID,
		Widget:     widget,
		Reason:     "add",
	}); err != nil {
		return err
	}
	s.record(ctx, "board.widget.add", map[string]any{
		"category_id": categoryID,
		"widget_id":   widget.ID,
		"template_id": widget.TemplateID,
	})
	return nil
}

// RemoveWidget detaches a widget from a category; the store purges the
// record once nothing references it.
func (s *Service) RemoveWidget(ctx context.Context, widgetID, categoryID string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if widgetID == "" {
		return errors.New("board: widget id is required")
	}
	if err := store.RemoveWidget(ctx, widgetID, categoryID); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.BoardUpdated(ctx, BoardEvent{
		CategoryID: categoryID,
		Widget:     Widget{ID: widgetID},
		Reason:     "remove",
	}); err != nil {
		return err
	}
	s.record(ctx, "board.widget.remove", map[string]any{
		"category_id": categoryID,
		"widget_id":   widgetID,
	})
	return nil
}

// CreateCategory allocates a new General category and returns its id for
// immediate use. A name that trims to empty is rejected without mutation.
func (s *Service) CreateCategory(ctx context.Context, name string) (string, error) {
	store, err := s.store()
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrBlankCategoryName
	}
	category := Category{
		ID:      s.opts.IDs.CategoryID(),
		Name:    name,
		Type:    CategoryGeneral,
		Widgets: []string{},
	}
	if err := store.AddCategory(ctx, category); err != nil {
		return "", err
	}
	if err := s.opts.RefreshHook.BoardUpdated(ctx, BoardEvent{
		CategoryID: category.ID,
		Reason:     "category",
	}); err != nil {
		return "", err
	}
	s.record(ctx, "board.category.create", map[string]any{
		"category_id": category.ID,
		"name":        name,
	})
	return category.ID, nil
}

// ResetBoard restores the built-in seed state.
func (s *Service) ResetBoard(ctx context.Context) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if err := store.Reset(ctx); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.BoardUpdated(ctx, BoardEvent{Reason: "reset"}); err != nil {
		return err
	}
	s.record(ctx, "board.reset", nil)
	return nil
}

// Snapshot reads the full board state.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	store, err := s.store()
	if err != nil {
		return Snapshot{}, err
	}
	return store.Snapshot(ctx)
}

func (s *Service) store() (EntityStore, error) {
	if s.opts.Store == nil {
		return nil, errMissingStore
	}
	return s.opts.Store, nil
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) warn(ctx context.Context, message string) {
	s.record(ctx, "board.editor.warning", map[string]any{"message": message})
}
