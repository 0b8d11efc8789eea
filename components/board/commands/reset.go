package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ResetBoardInput controls reset behavior. It carries no fields today but
// keeps the command signature stable.
type ResetBoardInput struct{}

type resetService interface {
	ResetBoard(ctx context.Context) error
}

// ResetBoardCommand restores the built-in seed state.
type ResetBoardCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetBoardCommand builds a command instance.
func NewResetBoardCommand(service resetService, telemetry Telemetry) *ResetBoardCommand {
	return &ResetBoardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetBoardInput] = (*ResetBoardCommand)(nil)

// Execute resets the board.
func (c *ResetBoardCommand) Execute(ctx context.Context, _ ResetBoardInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	if err := c.service.ResetBoard(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.reset", nil)
	return nil
}
