// Package idgen produces identifiers for projects and tasks.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/xid"
)

// Func returns a new identifier on every call.
type Func func() string

// New returns a globally unique, time-sortable identifier.
func New() string {
	return xid.New().String()
}

// Sequence returns a generator yielding prefix1, prefix2, ...
// Useful where identifiers must be predictable, such as tests and demos.
func Sequence(prefix string) Func {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}
