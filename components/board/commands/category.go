package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// CreateCategoryInput names the category to allocate.
type CreateCategoryInput struct {
	Name string `json:"name"`
}

type categoryService interface {
	CreateCategory(ctx context.Context, name string) (string, error)
}

// CreateCategoryCommand allocates a new General category.
type CreateCategoryCommand struct {
	service   categoryService
	telemetry Telemetry
}

// NewCreateCategoryCommand builds a command instance.
func NewCreateCategoryCommand(service categoryService, telemetry Telemetry) *CreateCategoryCommand {
	return &CreateCategoryCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateCategoryInput] = (*CreateCategoryCommand)(nil)

// Execute allocates the category.
func (c *CreateCategoryCommand) Execute(ctx context.Context, msg CreateCategoryInput) error {
	if c.service == nil {
		return errors.New("category command requires service")
	}
	id, err := c.service.CreateCategory(ctx, msg.Name)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.category.create", map[string]any{
		"category_id": id,
		"name":        msg.Name,
	})
	return nil
}
