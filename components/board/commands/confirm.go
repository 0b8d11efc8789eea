package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	board "github.com/goliatone/go-secboard/components/board"
)

// ConfirmSelectionInput carries a full editor selection so transports can
// submit open-and-confirm in one request.
type ConfirmSelectionInput struct {
	CategoryID         string             `json:"category_id"`
	Restriction        board.CategoryType `json:"restriction,omitempty"`
	Tab                board.Tab          `json:"tab,omitempty"`
	Checked            []string           `json:"checked,omitempty"`
	SelectedCategoryID string             `json:"selected_category_id,omitempty"`
	CreateCategory     bool               `json:"create_category,omitempty"`
	NewCategoryName    string             `json:"new_category_name,omitempty"`
	Custom             *board.CustomDraft `json:"custom,omitempty"`
}

type confirmService interface {
	OpenEditor(ctx context.Context, req board.OpenRequest) (*board.Session, error)
	Confirm(ctx context.Context, sess *board.Session) (board.Plan, error)
}

// ConfirmSelectionCommand replays a submitted selection onto a fresh
// editor session and confirms it.
type ConfirmSelectionCommand struct {
	service   confirmService
	telemetry Telemetry
}

// NewConfirmSelectionCommand creates a command instance.
func NewConfirmSelectionCommand(service confirmService, telemetry Telemetry) *ConfirmSelectionCommand {
	return &ConfirmSelectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ConfirmSelectionInput] = (*ConfirmSelectionCommand)(nil)

// Execute opens a session, applies the submitted state, and confirms.
func (c *ConfirmSelectionCommand) Execute(ctx context.Context, msg ConfirmSelectionInput) error {
	if c.service == nil {
		return errors.New("confirm command requires service")
	}
	sess, err := c.service.OpenEditor(ctx, board.OpenRequest{
		CategoryID:  msg.CategoryID,
		Restriction: msg.Restriction,
	})
	if err != nil {
		return err
	}
	if msg.Tab != "" {
		if err := sess.ChangeTab(ctx, msg.Tab); err != nil {
			return err
		}
	}
	if msg.SelectedCategoryID != "" {
		sess.SelectCategory(msg.SelectedCategoryID)
	}
	if msg.CreateCategory {
		sess.ChooseNewCategory(msg.NewCategoryName)
	}
	if msg.Custom != nil {
		sess.SetCustomDraft(*msg.Custom)
	}
	if msg.Checked != nil {
		sess.SetChecked(msg.Checked)
	}
	plan, err := c.service.Confirm(ctx, sess)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.selection.confirm", map[string]any{
		"category_id": plan.CategoryID,
		"added":       len(plan.Added),
		"removed":     len(plan.Removed),
		"warnings":    len(plan.Warnings),
	})
	return nil
}
