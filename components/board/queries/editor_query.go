package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	board "github.com/goliatone/go-secboard/components/board"
)

// EditorStateInput mirrors an editor invocation context.
type EditorStateInput struct {
	CategoryID  string             `json:"category_id"`
	Restriction board.CategoryType `json:"restriction,omitempty"`
}

// EditorState is the initial panel state a UI needs to render the editor
// for one opening.
type EditorState struct {
	Mode             string           `json:"mode"`
	Tabs             []board.Tab      `json:"tabs"`
	ActiveTab        board.Tab        `json:"active_tab"`
	Description      string           `json:"description"`
	Checked          []string         `json:"checked"`
	TargetCategoryID string           `json:"target_category_id"`
	Templates        []board.Template `json:"templates"`
}

type editorService interface {
	OpenEditor(ctx context.Context, req board.OpenRequest) (*board.Session, error)
}

// EditorStateQuery resolves the initial editor state for an invocation.
type EditorStateQuery struct {
	service editorService
}

// NewEditorStateQuery builds the query.
func NewEditorStateQuery(service editorService) *EditorStateQuery {
	return &EditorStateQuery{service: service}
}

var _ gocommand.Querier[EditorStateInput, EditorState] = (*EditorStateQuery)(nil)

// Query opens a throwaway session and reports its state.
func (q *EditorStateQuery) Query(ctx context.Context, input EditorStateInput) (EditorState, error) {
	sess, err := q.service.OpenEditor(ctx, board.OpenRequest{
		CategoryID:  input.CategoryID,
		Restriction: input.Restriction,
	})
	if err != nil {
		return EditorState{}, err
	}
	defer sess.Close()
	return EditorState{
		Mode:             sess.Mode().String(),
		Tabs:             sess.Tabs(),
		ActiveTab:        sess.ActiveTab(),
		Description:      board.TabDescription(sess.ActiveTab()),
		Checked:          sess.Checked(),
		TargetCategoryID: sess.TargetCategoryID(),
		Templates:        sess.VisibleTemplates(),
	}, nil
}
