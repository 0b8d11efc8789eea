package queries

import (
	"context"
	"testing"

	board "github.com/goliatone/go-secboard/components/board"
)

func newBoardService() *board.Service {
	return board.NewService(board.Options{Store: board.NewMemoryStore()})
}

func TestSnapshotQuery(t *testing.T) {
	svc := newBoardService()
	q := NewSnapshotQuery(svc)
	snap, err := q.Query(context.Background(), SnapshotInput{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snap.Categories) != 4 || len(snap.Widgets) != 10 {
		t.Fatalf("unexpected snapshot: %d categories, %d widgets",
			len(snap.Categories), len(snap.Widgets))
	}
}

func TestEditorStateQueryTyped(t *testing.T) {
	svc := newBoardService()
	q := NewEditorStateQuery(svc)
	state, err := q.Query(context.Background(), EditorStateInput{
		CategoryID:  "category-1",
		Restriction: board.CategoryCSPM,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if state.Mode != "typed" {
		t.Fatalf("expected typed mode, got %q", state.Mode)
	}
	if len(state.Tabs) != 1 || state.ActiveTab != board.Tab(board.CategoryCSPM) {
		t.Fatalf("unexpected tabs: %v active=%v", state.Tabs, state.ActiveTab)
	}
	if state.Description == "" {
		t.Fatalf("expected tab description")
	}
	if state.TargetCategoryID != "category-1" {
		t.Fatalf("unexpected target: %q", state.TargetCategoryID)
	}
	if len(state.Checked) != 2 {
		t.Fatalf("expected seeded checked set, got %v", state.Checked)
	}
	if len(state.Templates) != 4 {
		t.Fatalf("expected CSPM templates, got %v", state.Templates)
	}
}

func TestEditorStateQueryGlobal(t *testing.T) {
	svc := newBoardService()
	q := NewEditorStateQuery(svc)
	state, err := q.Query(context.Background(), EditorStateInput{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if state.Mode != "global" {
		t.Fatalf("expected global mode, got %q", state.Mode)
	}
	if len(state.Tabs) != 5 || state.Tabs[len(state.Tabs)-1] != board.TabCustom {
		t.Fatalf("expected all groups plus custom tab, got %v", state.Tabs)
	}
	if state.TargetCategoryID == "" {
		t.Fatalf("expected a matched target category")
	}
}
