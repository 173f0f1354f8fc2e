package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrNotLive is returned when a moderation action targets a row in the wrong
// state, such as restoring a cost that was never deleted.
var ErrNotLive = errors.New("record not in expected state")
