package repositories

import "errors"

// ErrNotFound is wrapped by every repository lookup or mutation that matches
// no row. Handlers classify misses with errors.Is against this sentinel.
var ErrNotFound = errors.New("not found")
