package board

import "github.com/google/uuid"

// UUIDGenerator mints `widget-`/`category-` prefixed ids from a random
// UUID fragment. Eight hex characters keep the ids short while staying
// collision-safe for a single board.
type UUIDGenerator struct{}

// WidgetID returns a fresh widget identifier.
func (UUIDGenerator) WidgetID() string { return "widget-" + uuid.NewString()[:8] }

// CategoryID returns a fresh category identifier.
func (UUIDGenerator) CategoryID() string { return "category-" + uuid.NewString()[:8] }
