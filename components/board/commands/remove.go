package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetInput identifies the widget to detach and the category to
// detach it from.
type RemoveWidgetInput struct {
	WidgetID   string `json:"widget_id"`
	CategoryID string `json:"category_id"`
}

type removeService interface {
	RemoveWidget(ctx context.Context, widgetID, categoryID string) error
}

// RemoveWidgetCommand wraps Service.RemoveWidget so transports can detach
// widgets without linking directly against the service.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if err := c.service.RemoveWidget(ctx, msg.WidgetID, msg.CategoryID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.widget.remove", map[string]any{
		"widget_id":   msg.WidgetID,
		"category_id": msg.CategoryID,
	})
	return nil
}
