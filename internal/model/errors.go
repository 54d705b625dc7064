package model

import "errors"

// ErrNotFound is returned by stores when a session id does not resolve to a
// stored session. Malformed ids are reported the same way.
var ErrNotFound = errors.New("record not found")
