package workspace

import (
	"github.com/sift-db/sift/internal/db"
)

// QueryExecutingMsg indicates a query has started.
type QueryExecutingMsg struct {
	SQL string
	Seq int
}

// QueryCompletedMsg indicates a query has finished. Seq identifies the
// execution; stale completions are discarded.
type QueryCompletedMsg struct {
	Seq     int
	SQL     string
	Outcome *db.Outcome
	Err     error
}

// toastExpiredMsg clears a transient status message.
type toastExpiredMsg struct {
	id int
}
