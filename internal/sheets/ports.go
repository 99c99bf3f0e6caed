package sheets

import (
	"context"

	"dailyoffice/internal/core"
)

// Ports for inbound data adapters.
type (
	// TableReader loads the whole dataset as a header plus rows. An error
	// means the source itself is unusable; bad individual rows are left for
	// the parser to judge.
	TableReader interface {
		ReadTable(ctx context.Context) (core.Table, error)
	}
)
