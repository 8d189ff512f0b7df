package snapshot

import "errors"

var (
	ErrSnapshotNotFound = errors.New("stats snapshot not found")
)
