package scorecarddb

import "errors"

// ErrNotFound is the repository-layer signal for a missing score record.
// The service layer decides whether that is a domain failure.
var ErrNotFound = errors.New("score record not found")
