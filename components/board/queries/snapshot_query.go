package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	board "github.com/goliatone/go-secboard/components/board"
)

// SnapshotInput requests a full board read. It carries no fields today.
type SnapshotInput struct{}

type snapshotService interface {
	Snapshot(ctx context.Context) (board.Snapshot, error)
}

// SnapshotQuery fetches the full board state.
type SnapshotQuery struct {
	service snapshotService
}

// NewSnapshotQuery builds the query.
func NewSnapshotQuery(service snapshotService) *SnapshotQuery {
	return &SnapshotQuery{service: service}
}

var _ gocommand.Querier[SnapshotInput, board.Snapshot] = (*SnapshotQuery)(nil)

// Query reads the store.
func (q *SnapshotQuery) Query(ctx context.Context, _ SnapshotInput) (board.Snapshot, error) {
	return q.service.Snapshot(ctx)
}
