package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	board "github.com/goliatone/go-secboard/components/board"
	"github.com/goliatone/go-secboard/components/board/commands"
	"github.com/goliatone/go-secboard/components/board/queries"
)

// Executor exposes the board operations transports invoke, backed by
// shared commands/queries.
type Executor interface {
	Confirm(ctx context.Context, input commands.ConfirmSelectionInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	CreateCategory(ctx context.Context, input commands.CreateCategoryInput) error
	Reset(ctx context.Context) error
	Snapshot(ctx context.Context) (board.Snapshot, error)
	EditorState(ctx context.Context, input queries.EditorStateInput) (queries.EditorState, error)
}

// CommandExecutor implements Executor over go-command commanders/queriers.
type CommandExecutor struct {
	ConfirmCommander  gocommand.Commander[commands.ConfirmSelectionInput]
	RemoveCommander   gocommand.Commander[commands.RemoveWidgetInput]
	CategoryCommander gocommand.Commander[commands.CreateCategoryInput]
	ResetCommander    gocommand.Commander[commands.ResetBoardInput]
	SnapshotQuerier   gocommand.Querier[queries.SnapshotInput, board.Snapshot]
	EditorQuerier     gocommand.Querier[queries.EditorStateInput, queries.EditorState]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Confirm(ctx context.Context, input commands.ConfirmSelectionInput) error {
	if e.ConfirmCommander == nil {
		return errors.New("httpapi: confirm commander not configured")
	}
	return e.ConfirmCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	if e.RemoveCommander == nil {
		return errors.New("httpapi: remove commander not configured")
	}
	return e.RemoveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) CreateCategory(ctx context.Context, input commands.CreateCategoryInput) error {
	if e.CategoryCommander == nil {
		return errors.New("httpapi: category commander not configured")
	}
	return e.CategoryCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Reset(ctx context.Context) error {
	if e.ResetCommander == nil {
		return errors.New("httpapi: reset commander not configured")
	}
	return e.ResetCommander.Execute(ctx, commands.ResetBoardInput{})
}

func (e *CommandExecutor) Snapshot(ctx context.Context) (board.Snapshot, error) {
	if e.SnapshotQuerier == nil {
		return board.Snapshot{}, errors.New("httpapi: snapshot querier not configured")
	}
	return e.SnapshotQuerier.Query(ctx, queries.SnapshotInput{})
}

func (e *CommandExecutor) EditorState(ctx context.Context, input queries.EditorStateInput) (queries.EditorState, error) {
	if e.EditorQuerier == nil {
		return queries.EditorState{}, errors.New("httpapi: editor querier not configured")
	}
	return e.EditorQuerier.Query(ctx, input)
}

// Handlers exposes HTTP endpoints backed by an Executor.
type Handlers struct {
	API Executor
}

// HandleSnapshot serves the full board state as JSON.
func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.API.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleEditorState resolves the initial editor panel state. The category
// id and restriction arrive as query parameters.
func (h *Handlers) HandleEditorState(w http.ResponseWriter, r *http.Request) {
	input := queries.EditorStateInput{
		CategoryID:  r.URL.Query().Get("category_id"),
		Restriction: board.CategoryType(r.URL.Query().Get("restriction")),
	}
	state, err := h.API.EditorState(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleConfirmSelection applies a submitted editor selection.
func (h *Handlers) HandleConfirmSelection(w http.ResponseWriter, r *http.Request) {
	var payload commands.ConfirmSelectionInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Confirm(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleRemoveWidget detaches a widget from a category.
func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	input := commands.RemoveWidgetInput{
		WidgetID:   widgetID,
		CategoryID: r.URL.Query().Get("category_id"),
	}
	if err := h.API.Remove(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateCategory allocates a new General category.
func (h *Handlers) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.CreateCategory(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleReset restores the built-in seed state.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// StatusFor maps validation sentinels to client errors; everything else is
// a server failure. Shared by every transport so validation failures report
// the same status regardless of how the request arrived.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrBlankTitle),
		errors.Is(err, board.ErrBlankCategoryName),
		errors.Is(err, board.ErrNoTargetCategory),
		errors.Is(err, board.ErrCustomRestricted):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
