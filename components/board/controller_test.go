package board

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestControllerBoardView(t *testing.T) {
	ctx := context.Background()
	controller := NewController(ControllerOptions{
		Service:  NewService(Options{Store: NewMemoryStore()}),
		Renderer: &recordingRenderer{},
	})
	view, err := controller.BoardView(ctx)
	if err != nil {
		t.Fatalf("board view: %v", err)
	}
	if len(view.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(view.Categories))
	}
	first := view.Categories[0]
	if first.Category.ID != "category-1" || len(first.Widgets) != 2 {
		t.Fatalf("unexpected first category view: %#v", first.Category)
	}
	for _, wv := range first.Widgets {
		if wv.HTML == "" {
			t.Fatalf("expected rendered HTML for widget %s", wv.Widget.ID)
		}
	}
}

func TestControllerBoardViewSkipsDanglingWidgetIDs(t *testing.T) {
	ctx := context.Background()
	controller := NewController(ControllerOptions{
		Service: NewService(Options{Store: &fixedSnapshotStore{snap: Snapshot{
			Categories: []Category{
				{ID: "c1", Name: "C1", Type: CategoryGeneral, Widgets: []string{"w1", "ghost"}},
			},
			Widgets: map[string]Widget{
				"w1": {ID: "w1", Title: "Note", Type: WidgetText},
			},
		}}}),
		Renderer: &recordingRenderer{},
	})
	view, err := controller.BoardView(ctx)
	if err != nil {
		t.Fatalf("board view: %v", err)
	}
	if len(view.Categories[0].Widgets) != 1 {
		t.Fatalf("expected dangling id skipped, got %#v", view.Categories[0].Widgets)
	}
}

func TestControllerRenderBoard(t *testing.T) {
	ctx := context.Background()
	renderer := &recordingRenderer{}
	controller := NewController(ControllerOptions{
		Service:  NewService(Options{Store: NewMemoryStore()}),
		Renderer: renderer,
	})
	var buf bytes.Buffer
	if err := controller.RenderBoard(ctx, &buf); err != nil {
		t.Fatalf("render board: %v", err)
	}
	if renderer.name != "board" {
		t.Fatalf("expected board template, got %q", renderer.name)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected page output")
	}
}

func TestControllerRequiresCollaborators(t *testing.T) {
	ctx := context.Background()
	controller := NewController(ControllerOptions{})
	if _, err := controller.BoardView(ctx); err == nil {
		t.Fatalf("expected error without a service")
	}
	controller = NewController(ControllerOptions{
		Service: NewService(Options{Store: NewMemoryStore()}),
	})
	if err := controller.RenderBoard(ctx, io.Discard); err == nil {
		t.Fatalf("expected error without a renderer")
	}
}

type recordingRenderer struct {
	name string
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html>board</html>"))
	}
	return "<html>board</html>", nil
}

type fixedSnapshotStore struct {
	snap Snapshot
}

func (s *fixedSnapshotStore) Snapshot(context.Context) (Snapshot, error) { return s.snap, nil }
func (s *fixedSnapshotStore) AddWidget(context.Context, Widget, string) error {
	return nil
}
func (s *fixedSnapshotStore) RemoveWidget(context.Context, string, string) error { return nil }
func (s *fixedSnapshotStore) AddCategory(context.Context, Category) error        { return nil }
func (s *fixedSnapshotStore) Reset(context.Context) error                        { return nil }
