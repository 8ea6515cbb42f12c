package sql

import (
	"context"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

// Prune deletes terminal jobs matching the provided state and time
// filter.
//
// Only terminal states are allowed:
//
//   - job.StateCompleted
//   - job.StateDead
//
// An empty state targets both. A non-terminal state yields
// queuectl.ErrBadState. If before is non-nil, only jobs with
// updated_at <= *before are deleted.
//
// Prune returns the number of deleted rows. It never touches pending,
// processing or failed jobs and does not interact with leases.
func (s *Store) Prune(ctx context.Context, state job.State, before *time.Time) (int64, error) {
	if state != "" && !state.Terminal() {
		return 0, queuectl.ErrBadState
	}
	query := s.db.NewDelete().Model((*jobModel)(nil))
	if state != "" {
		query.Where("state = ?", state)
	} else {
		query.Where("state IN (?, ?)", job.StateCompleted, job.StateDead)
	}
	if before != nil {
		query.Where("updated_at <= ?", before)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
