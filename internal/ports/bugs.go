package ports

import (
	"context"

	"getatoms/internal/types"
)

// BugSourcePort fetches bug records and their attachments. Both calls
// return an empty result, not an error, when nothing matches.
type BugSourcePort interface {
	Bugs(ctx context.Context, query types.BugQuery) ([]types.Bug, error)
	// Attachments fetches the attachments of all bugIDs in one call,
	// keyed by bug id.
	Attachments(ctx context.Context, bugIDs []int) (map[int][]types.Attachment, error)
}
